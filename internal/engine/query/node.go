package query

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smartmate/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smartmate/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
)

// NodeID is the unique identifier for the query client Graft node.
const NodeID graft.ID = "engine.query"

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SettingsNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Client, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewClient(OptionsFrom(*cfg, log)), nil
		},
	})
}
