package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/smartmate/internal/adapters/api"       //nolint:depguard // Wired in app layer
	"go.trai.ch/smartmate/internal/adapters/fakeapi"   //nolint:depguard // Wired in app layer
	"go.trai.ch/smartmate/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/smartmate/internal/adapters/notify"    //nolint:depguard // Wired in app layer
	"go.trai.ch/smartmate/internal/adapters/prefs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/smartmate/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/smartmate/internal/engine/query"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			api.TasksNodeID,
			api.UsersNodeID,
			query.NodeID,
			prefs.NodeID,
			notify.NodeID,
			logger.NodeID,
			telemetry.BridgeNodeID,
			fakeapi.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	tasks, err := graft.Dep[ports.TaskService](ctx)
	if err != nil {
		return nil, err
	}

	users, err := graft.Dep[ports.UserService](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[*query.Client](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.PreferenceStore](ctx)
	if err != nil {
		return nil, err
	}

	notifier, err := graft.Dep[ports.Notifier](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	bridge, err := graft.Dep[*telemetry.Bridge](ctx)
	if err != nil {
		return nil, err
	}

	backend, err := graft.Dep[*fakeapi.Server](ctx)
	if err != nil {
		return nil, err
	}

	return New(tasks, users, cache, store, notifier, log, bridge, backend), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
