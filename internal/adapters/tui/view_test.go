package tui_test

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/adapters/tui"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/engine/query"
)

func TestView_Loading(t *testing.T) {
	m := tui.NewModel(io.Discard, &fakeActions{}, domain.ThemeDark)

	assert.Contains(t, m.View(), "Loading tasks...")
}

func TestView_TaskList(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	m := tui.NewModel(io.Discard, &fakeActions{}, domain.ThemeDark).WithClock(func() time.Time { return now })
	tasks := sampleTasks()
	tasks[2].DueDate = &due
	model, _ := updateModel(&m, tui.MsgTasks{State: query.State[[]domain.Task]{
		Data:    tasks,
		HasData: true,
		Status:  domain.StatusSuccess,
	}})

	output := model.View()

	assert.Contains(t, output, "TASKS")
	assert.Contains(t, output, "2 open / 3")
	assert.Contains(t, output, "Write outline")
	assert.Contains(t, output, "Review notes")
	assert.Contains(t, output, "[high]")
	assert.Contains(t, output, "due 2026-03-01")
	assert.Contains(t, output, "○") // Open
	assert.Contains(t, output, "✓") // Done
	assert.Contains(t, output, "!") // Overdue
	assert.Contains(t, output, ">")
}

func TestView_Empty(t *testing.T) {
	m := tui.NewModel(io.Discard, &fakeActions{}, domain.ThemeLight)
	model, _ := updateModel(&m, tui.MsgTasks{State: query.State[[]domain.Task]{
		Data:    []domain.Task{},
		HasData: true,
		Status:  domain.StatusSuccess,
	}})

	assert.Contains(t, model.View(), "No tasks.")
}

func TestView_ErrorWithoutData(t *testing.T) {
	m := tui.NewModel(io.Discard, &fakeActions{}, domain.ThemeDark)
	model, _ := updateModel(&m, tui.MsgTasks{State: query.State[[]domain.Task]{
		Err:    errors.New("connection refused"),
		Status: domain.StatusError,
	}})

	output := model.View()
	assert.Contains(t, output, "failed to load tasks: connection refused")
	assert.NotContains(t, output, "Loading tasks...")
}

func TestView_StatusBar(t *testing.T) {
	t.Run("Error over stale data", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tui.MsgTasks{State: query.State[[]domain.Task]{
			Data:    sampleTasks(),
			HasData: true,
			Err:     errors.New("timeout"),
			Status:  domain.StatusError,
		}})

		output := m.View()
		assert.Contains(t, output, "Write outline")
		assert.Contains(t, output, "failed to load tasks: timeout")
	})

	t.Run("Refreshing", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tui.MsgTasks{State: query.State[[]domain.Task]{
			Data:       sampleTasks(),
			HasData:    true,
			Status:     domain.StatusLoading,
			IsFetching: true,
		}})

		assert.Contains(t, m.View(), "Refreshing...")
	})

	t.Run("Toast wins", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tui.MsgRequest{Event: telemetry.RequestEvent{Method: "GET", Path: "/tasks", StatusCode: 200}})
		m, _ = updateModel(m, tui.MsgToast{Notification: domain.Notification{Level: domain.LevelError, Message: "could not delete task 1"}})

		output := m.View()
		assert.Contains(t, output, "✗ could not delete task 1")
		assert.NotContains(t, output, "GET /tasks")
	})

	t.Run("Last request", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tui.MsgRequest{Event: telemetry.RequestEvent{
			Method:     "PUT",
			Path:       "/tasks/1",
			StatusCode: 404,
			Duration:   12 * time.Millisecond,
			Err:        "resource not found",
		}})

		assert.Contains(t, m.View(), "PUT /tasks/1 404 12ms")
	})
}
