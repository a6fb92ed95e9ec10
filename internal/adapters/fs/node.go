package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/yaac/internal/core/ports"
)

const (
	// LocatorNodeID is the unique identifier for the source locator Graft node.
	LocatorNodeID graft.ID = "adapter.fs.locator"
	// WalkerNodeID is the unique identifier for the asset walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
)

func init() {
	graft.Register(graft.Node[ports.SourceLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceLocator, error) {
			return NewLocator(), nil
		},
	})

	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})
}
