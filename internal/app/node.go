package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yaac/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/yaac/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/yaac/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/yaac/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/yaac/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/yaac/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/yaac/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			fs.LocatorNodeID,
			fs.WalkerNodeID,
			cas.NodeID,
			metrics.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	locator, err := graft.Dep[ports.SourceLocator](ctx)
	if err != nil {
		return nil, err
	}

	walker, err := graft.Dep[*fs.Walker](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[*cas.Store](ctx)
	if err != nil {
		return nil, err
	}

	recorder, err := graft.Dep[*metrics.PrometheusRecorder](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, locator, walker, store, recorder, watchers), nil
}
