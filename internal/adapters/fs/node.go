package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sho/internal/core/ports"
)

const (
	// ListerNodeID is the unique identifier for the model lister Graft node.
	ListerNodeID graft.ID = "adapter.fs.lister"
	// StaterNodeID is the unique identifier for the stater Graft node.
	StaterNodeID graft.ID = "adapter.fs.stater"
)

func init() {
	graft.Register(graft.Node[ports.ModelLister]{
		ID:        ListerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ModelLister, error) {
			return NewLister(), nil
		},
	})

	graft.Register(graft.Node[ports.Stater]{
		ID:        StaterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Stater, error) {
			return NewStater(), nil
		},
	})
}
