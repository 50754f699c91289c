package extractor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sho/internal/adapters/logger"
	"go.trai.ch/sho/internal/core/ports"
)

// NodeID is the unique identifier for the default metric extractor Graft node.
const NodeID graft.ID = "adapter.extractor"

func init() {
	graft.Register(graft.Node[ports.MetricExtractor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.MetricExtractor, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewPDB(log), nil
		},
	})
}
