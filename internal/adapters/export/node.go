package export

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sho/internal/adapters/logger"
	"go.trai.ch/sho/internal/core/ports"
)

// NodeID is the unique identifier for the exporter Graft node.
const NodeID graft.ID = "adapter.export"

func init() {
	graft.Register(graft.Node[*Exporter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (*Exporter, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewExporter(log), nil
		},
	})
}
