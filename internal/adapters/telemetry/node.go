package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wheelhouse/internal/adapters/telemetry/linear"
	"go.trai.ch/wheelhouse/internal/core/ports"
)

// NodeID is the unique identifier for the console telemetry Graft node.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{linear.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			console, err := graft.Dep[*linear.Renderer](ctx)
			if err != nil {
				return nil, err
			}
			return console, nil
		},
	})
}
