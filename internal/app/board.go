package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/smartmate/internal/adapters/detector"
	"go.trai.ch/smartmate/internal/adapters/tui"
	"go.trai.ch/smartmate/internal/engine/query"
	"golang.org/x/sync/errgroup"
)

var _ tui.Actions = (*App)(nil)

// BoardOptions configuration for the Board method.
type BoardOptions struct {
	OutputMode string
}

// Board runs the interactive task board. Without a terminal it prints the
// task list instead.
func (a *App) Board(ctx context.Context, opts BoardOptions) error {
	requested, err := detector.ParseMode(opts.OutputMode)
	if err != nil {
		return err
	}
	if detector.ResolveMode(a.autoMode(), requested) != detector.ModeTUI {
		a.logger.Info("no interactive terminal, printing tasks")
		return a.ListTasks(ctx, ListOptions{})
	}

	q := query.Use(a.cache, TasksKey(), a.tasks.GetAll)
	defer q.Close()

	model := tui.NewModel(a.stderr, a, a.AppliedTheme()).WithContext(ctx)
	optsTea := append([]tea.ProgramOption{tea.WithContext(ctx)}, a.teaOptions...)
	board := tui.NewBoard(&model, optsTea...)

	// Toasts and request events belong to the board while it runs.
	restore := a.notifier.Redirect(board.Toast)
	defer restore()
	unsubscribe := a.bridge.Subscribe(board.Request)
	defer unsubscribe()

	boardCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(boardCtx)

	// Board Routine
	g.Go(func() error {
		defer stop()
		if err := board.Start(gctx); err != nil {
			return err
		}
		err := board.Wait()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	// Query Routine
	g.Go(func() error {
		board.Tasks(q.State())
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-q.Changes():
				board.Tasks(q.State())
			}
		}
	})

	// Preference Routine
	g.Go(func() error {
		err := a.prefs.Watch(gctx, func() {
			board.Theme(a.AppliedTheme())
		})
		if err != nil {
			a.logger.Warn("theme changes will not be picked up: " + err.Error())
		}
		return nil
	})

	return g.Wait()
}
