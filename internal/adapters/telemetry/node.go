package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
)

const (
	// BridgeNodeID is the unique identifier for the request bridge Graft node.
	BridgeNodeID graft.ID = "adapter.telemetry"
	// ProviderNodeID is the unique identifier for the tracer provider Graft node.
	ProviderNodeID graft.ID = "adapter.tracer_provider"
)

func init() {
	graft.Register(graft.Node[*Bridge]{
		ID:        BridgeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Bridge, error) {
			return NewBridge(), nil
		},
	})

	graft.Register(graft.Node[trace.TracerProvider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{BridgeNodeID},
		Run: func(ctx context.Context) (trace.TracerProvider, error) {
			b, err := graft.Dep[*Bridge](ctx)
			if err != nil {
				return nil, err
			}
			return NewProvider(b), nil
		},
	})
}
