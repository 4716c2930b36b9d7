// Package app implements the application layer for smartmate.
package app

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smartmate/internal/adapters/detector"
	"go.trai.ch/smartmate/internal/adapters/fakeapi"
	"go.trai.ch/smartmate/internal/adapters/linear"
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/core/ports"
	"go.trai.ch/smartmate/internal/engine/query"
)

type taskUpdate struct {
	ID    string
	Patch domain.TaskPatch
}

// App represents the main application logic.
type App struct {
	tasks    ports.TaskService
	users    ports.UserService
	cache    *query.Client
	prefs    ports.PreferenceStore
	notifier ports.Notifier
	logger   ports.Logger
	bridge   *telemetry.Bridge
	backend  *fakeapi.Server

	createTask *query.Mutation[domain.TaskInput, domain.Task]
	updateTask *query.Mutation[taskUpdate, domain.Task]
	deleteTask *query.Mutation[string, struct{}]

	renderer       *linear.Renderer
	stderr         io.Writer
	teaOptions     []tea.ProgramOption
	autoMode       func() detector.OutputMode
	darkBackground func() bool
}

// New creates a new App instance.
func New(
	tasks ports.TaskService,
	users ports.UserService,
	cache *query.Client,
	prefs ports.PreferenceStore,
	notifier ports.Notifier,
	log ports.Logger,
	bridge *telemetry.Bridge,
	backend *fakeapi.Server,
) *App {
	a := &App{
		tasks:          tasks,
		users:          users,
		cache:          cache,
		prefs:          prefs,
		notifier:       notifier,
		logger:         log,
		bridge:         bridge,
		backend:        backend,
		renderer:       linear.NewRenderer(os.Stdout, os.Stderr),
		stderr:         os.Stderr,
		autoMode:       detector.DetectEnvironment,
		darkBackground: lipgloss.HasDarkBackground,
	}
	a.initMutations()
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// WithOutput redirects listings to stdout and progress to stderr.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.renderer = linear.NewRenderer(stdout, stderr)
	a.stderr = stderr
	return a
}

// WithEnvironment overrides output mode detection and the terminal
// background used to resolve the system theme.
func (a *App) WithEnvironment(mode detector.OutputMode, darkBackground bool) *App {
	a.autoMode = func() detector.OutputMode { return mode }
	a.darkBackground = func() bool { return darkBackground }
	return a
}

// SetJSONLogs switches the logger to JSON lines when it supports it.
func (a *App) SetJSONLogs(enable bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(enable)
	}
}

// Close cancels in-flight requests and stops cache timers.
func (a *App) Close() {
	a.cache.Close()
}

// Serve runs the reference backend on addr until ctx is done.
func (a *App) Serve(ctx context.Context, addr string) error {
	return a.backend.ListenAndServe(ctx, addr)
}

// ListUsers fetches and prints the user list.
func (a *App) ListUsers(ctx context.Context) error {
	q := query.Use(a.cache, UsersKey(), a.users.GetAll)
	defer q.Close()

	st, err := q.Wait(ctx)
	if err != nil {
		return err
	}
	a.renderer.Users(st)
	if st.Err != nil {
		return errors.Join(domain.ErrListFailed, st.Err)
	}
	return nil
}
