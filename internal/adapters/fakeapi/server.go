// Package fakeapi is an in-memory reference implementation of the REST
// backend. It serves /tasks and /users and is used by `smartmate serve` and
// by integration tests.
package fakeapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Server holds the in-memory tables and serves them over HTTP.
type Server struct {
	prefix string
	logger ports.Logger
	now    func() time.Time
	newID  func() string

	tasks *collection[domain.Task]
	users *collection[domain.User]
}

// Option configures a Server.
type Option func(*Server)

// WithPrefix mounts the resources under prefix, e.g. "/api/v1".
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = "/" + strings.Trim(prefix, "/")
		if s.prefix == "/" {
			s.prefix = ""
		}
	}
}

// WithLogger logs every request and server lifecycle events.
func WithLogger(l ports.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithIDs overrides id generation.
func WithIDs(newID func() string) Option {
	return func(s *Server) { s.newID = newID }
}

// New creates an empty Server.
func New(opts ...Option) *Server {
	s := &Server{
		now:   time.Now,
		newID: uuid.NewString,
		tasks: newCollection[domain.Task](),
		users: newCollection[domain.User](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedTasks inserts tasks as if they had been created, assigning missing ids.
func (s *Server) SeedTasks(tasks ...domain.Task) {
	for _, t := range tasks {
		if t.ID == "" {
			t.ID = s.newID()
		}
		now := s.now().UTC()
		if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		if t.UpdatedAt.IsZero() {
			t.UpdatedAt = t.CreatedAt
		}
		s.tasks.insert(t.ID, t)
	}
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+s.prefix+"/tasks", s.listTasks)
	mux.HandleFunc("POST "+s.prefix+"/tasks", s.createTask)
	mux.HandleFunc("GET "+s.prefix+"/tasks/{id}", s.getTask)
	mux.HandleFunc("PUT "+s.prefix+"/tasks/{id}", s.updateTask)
	mux.HandleFunc("DELETE "+s.prefix+"/tasks/{id}", s.deleteTask)

	mux.HandleFunc("GET "+s.prefix+"/users", s.listUsers)
	mux.HandleFunc("POST "+s.prefix+"/users", s.createUser)
	mux.HandleFunc("GET "+s.prefix+"/users/{id}", s.getUser)
	mux.HandleFunc("PUT "+s.prefix+"/users/{id}", s.updateUser)
	mux.HandleFunc("DELETE "+s.prefix+"/users/{id}", s.deleteUser)

	return s.logRequests(mux)
}

// Serve accepts connections on ln until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.With(errors.Join(domain.ErrServerFailed, err), "addr", ln.Addr().String())
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrServerFailed, err), "addr", addr)
	}
	if s.logger != nil {
		s.logger.Info("serving reference API on http://" + ln.Addr().String() + s.prefix)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) listTasks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tasks.list())
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	t, ok := s.tasks.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "task not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in domain.TaskInput
	if !decode(w, r, &in) {
		return
	}
	if err := validateTaskInput(&in); err != nil {
		writeValidation(w, err)
		return
	}

	now := s.now().UTC()
	t := domain.Task{
		ID:        s.newID(),
		Title:     in.Title,
		Completed: in.Completed,
		Priority:  in.Priority,
		DueDate:   in.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.tasks.insert(t.ID, t)
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var patch domain.TaskPatch
	if !decode(w, r, &patch) {
		return
	}
	if err := validateTaskPatch(&patch); err != nil {
		writeValidation(w, err)
		return
	}

	t, ok := s.tasks.update(r.PathValue("id"), func(t domain.Task) domain.Task {
		t = t.Apply(patch)
		t.UpdatedAt = s.now().UTC()
		return t
	})
	if !ok {
		writeError(w, http.StatusNotFound, "task not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if !s.tasks.remove(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "task not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listUsers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.users.list())
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.users.get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in domain.UserInput
	if !decode(w, r, &in) {
		return
	}
	if err := validateUserInput(&in); err != nil {
		writeValidation(w, err)
		return
	}

	now := s.now().UTC()
	u := domain.User{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users.insert(u.ID, u)
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch domain.UserPatch
	if !decode(w, r, &patch) {
		return
	}
	if err := validateUserPatch(&patch); err != nil {
		writeValidation(w, err)
		return
	}

	u, ok := s.users.update(r.PathValue("id"), func(u domain.User) domain.User {
		u = u.Apply(patch)
		u.UpdatedAt = s.now().UTC()
		return u
	})
	if !ok {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.users.remove(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, "user not found", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
