package ports

import (
	"context"

	"go.trai.ch/smartmate/internal/core/domain"
)

// TaskService performs CRUD operations on tasks.
//
//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks
type TaskService interface {
	GetAll(ctx context.Context) ([]domain.Task, error)
	Get(ctx context.Context, id string) (domain.Task, error)
	Create(ctx context.Context, in domain.TaskInput) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// UserService performs CRUD operations on users.
type UserService interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, in domain.UserInput) (domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)
	Delete(ctx context.Context, id string) error
}
