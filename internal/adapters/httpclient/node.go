package httpclient

import (
	"context"

	"github.com/grindlemire/graft"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/smartmate/internal/adapters/config"
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
)

// NodeID is the unique identifier for the HTTP transport Graft node.
const NodeID graft.ID = "adapter.httpclient"

func init() {
	graft.Register(graft.Node[ports.Transport]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, telemetry.ProviderNodeID},
		Run: func(ctx context.Context) (ports.Transport, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			tp, err := graft.Dep[trace.TracerProvider](ctx)
			if err != nil {
				return nil, err
			}

			return New(cfg.API, WithTracerProvider(tp))
		},
	})
}
