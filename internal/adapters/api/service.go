// Package api implements the resource services on top of ports.Transport.
package api

import (
	"context"
	"strings"
	"unicode"

	"go.trai.ch/smartmate/internal/adapters/endpoints"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/zerr"
)

// Patch is a partial update payload.
type Patch interface {
	Empty() bool
}

// Service performs CRUD on one REST resource. It keeps no state; errors from
// the transport are returned unchanged.
type Service[T, In any, P Patch] struct {
	resource  string
	transport ports.Transport
	registry  endpoints.Registry
}

// NewService creates a Service for resource.
func NewService[T, In any, P Patch](resource string, t ports.Transport, r endpoints.Registry) *Service[T, In, P] {
	return &Service[T, In, P]{
		resource:  resource,
		transport: t,
		registry:  r,
	}
}

// NewTaskService creates the service for /tasks.
func NewTaskService(t ports.Transport, r endpoints.Registry) *Service[domain.Task, domain.TaskInput, domain.TaskPatch] {
	return NewService[domain.Task, domain.TaskInput, domain.TaskPatch](domain.ResourceTasks, t, r)
}

// NewUserService creates the service for /users.
func NewUserService(t ports.Transport, r endpoints.Registry) *Service[domain.User, domain.UserInput, domain.UserPatch] {
	return NewService[domain.User, domain.UserInput, domain.UserPatch](domain.ResourceUsers, t, r)
}

// Resource returns the resource name the service is bound to.
func (s *Service[T, In, P]) Resource() string {
	return s.resource
}

// GetAll returns every record. An empty collection is an empty, non-nil slice.
func (s *Service[T, In, P]) GetAll(ctx context.Context) ([]T, error) {
	var out []T
	if err := s.transport.Get(ctx, s.registry.URL(s.resource, endpoints.List, ""), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Get returns a single record.
func (s *Service[T, In, P]) Get(ctx context.Context, id string) (T, error) {
	var out T
	if err := validateID(id); err != nil {
		return out, err
	}
	err := s.transport.Get(ctx, s.registry.URL(s.resource, endpoints.Get, id), &out)
	return out, err
}

// Create sends in and returns the record as stored by the server, including its id.
func (s *Service[T, In, P]) Create(ctx context.Context, in In) (T, error) {
	var out T
	err := s.transport.Post(ctx, s.registry.URL(s.resource, endpoints.Create, ""), in, &out)
	return out, err
}

// Update applies patch to the record and returns the server's copy.
func (s *Service[T, In, P]) Update(ctx context.Context, id string, patch P) (T, error) {
	var out T
	if err := validateID(id); err != nil {
		return out, err
	}
	if patch.Empty() {
		return out, zerr.With(zerr.Wrap(domain.ErrEmptyPatch, "update "+s.resource), "id", id)
	}
	err := s.transport.Put(ctx, s.registry.URL(s.resource, endpoints.Update, id), patch, &out)
	return out, err
}

// Delete removes the record.
func (s *Service[T, In, P]) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return s.transport.Delete(ctx, s.registry.URL(s.resource, endpoints.Delete, id))
}

func validateID(id string) error {
	if id == "" || strings.ContainsAny(id, "/?#") || strings.IndexFunc(id, unicode.IsSpace) >= 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidID, "validate id"), "id", id)
	}
	return nil
}

var (
	_ ports.TaskService = (*Service[domain.Task, domain.TaskInput, domain.TaskPatch])(nil)
	_ ports.UserService = (*Service[domain.User, domain.UserInput, domain.UserPatch])(nil)
)
