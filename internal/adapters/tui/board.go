package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/engine/query"
)

// Board runs the task board as a Bubble Tea program.
type Board struct {
	program *tea.Program
	model   *Model
	errCh   chan error
}

// NewBoard creates a board around model.
func NewBoard(model *Model, opts ...tea.ProgramOption) *Board {
	return &Board{
		program: tea.NewProgram(model, opts...),
		model:   model,
		errCh:   make(chan error, 1),
	}
}

// Start launches the program in a background goroutine.
func (b *Board) Start(_ context.Context) error {
	go func() {
		_, err := b.program.Run()
		b.errCh <- err
	}()
	return nil
}

// Stop signals the program to quit.
func (b *Board) Stop() error {
	b.program.Quit()
	return nil
}

// Wait blocks until the program has terminated.
func (b *Board) Wait() error {
	return <-b.errCh
}

// Tasks forwards a task list state.
func (b *Board) Tasks(st query.State[[]domain.Task]) {
	b.program.Send(MsgTasks{State: st})
}

// Toast forwards a notification.
func (b *Board) Toast(n domain.Notification) {
	b.program.Send(MsgToast{Notification: n})
}

// Request forwards a finished request.
func (b *Board) Request(ev telemetry.RequestEvent) {
	b.program.Send(MsgRequest{Event: ev})
}

// Theme forwards a theme change.
func (b *Board) Theme(t domain.Theme) {
	b.program.Send(MsgTheme{Theme: t})
}

// Program returns the underlying tea.Program for testing.
func (b *Board) Program() *tea.Program {
	return b.program
}
