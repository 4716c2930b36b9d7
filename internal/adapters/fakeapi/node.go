package fakeapi

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smartmate/internal/adapters/config"
	"go.trai.ch/smartmate/internal/adapters/logger"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
)

// NodeID is the unique identifier for the reference backend Graft node.
const NodeID graft.ID = "adapter.fakeapi"

func init() {
	graft.Register(graft.Node[*Server]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Server, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(WithPrefix(cfg.API.Prefix), WithLogger(log)), nil
		},
	})
}
