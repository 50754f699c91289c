package notes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sho/internal/core/ports"
)

// NodeID is the unique identifier for the notes store Graft node.
const NodeID graft.ID = "adapter.notes"

func init() {
	graft.Register(graft.Node[ports.NotesStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.NotesStore, error) {
			return NewStore(), nil
		},
	})
}
