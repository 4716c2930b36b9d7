package api

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smartmate/internal/adapters/config"
	"go.trai.ch/smartmate/internal/adapters/endpoints"
	"go.trai.ch/smartmate/internal/adapters/httpclient"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
)

const (
	// TasksNodeID is the unique identifier for the task service Graft node.
	TasksNodeID graft.ID = "adapter.api.tasks"
	// UsersNodeID is the unique identifier for the user service Graft node.
	UsersNodeID graft.ID = "adapter.api.users"
)

func init() {
	graft.Register(graft.Node[ports.TaskService]{
		ID:        TasksNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpclient.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.TaskService, error) {
			transport, err := graft.Dep[ports.Transport](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return NewTaskService(transport, endpoints.New(cfg.API.Prefix)), nil
		},
	})

	graft.Register(graft.Node[ports.UserService]{
		ID:        UsersNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpclient.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.UserService, error) {
			transport, err := graft.Dep[ports.Transport](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return NewUserService(transport, endpoints.New(cfg.API.Prefix)), nil
		},
	})
}
