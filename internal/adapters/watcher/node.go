package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yaac/internal/adapters/logger"
	"go.trai.ch/yaac/internal/core/ports"
)

// NodeID is the unique identifier for the file watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher"

// Factory creates watchers on demand. Only watch and serve need one, so the
// fsnotify backend is not opened for other commands.
type Factory func() (ports.Watcher, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (Factory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return func() (ports.Watcher, error) {
				return NewWatcher(log)
			}, nil
		},
	})
}
