package tui_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/adapters/tui"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/engine/query"
)

type fakeActions struct {
	mu       sync.Mutex
	toggled  []string
	deleted  []string
	refetch  int
	theme    domain.Theme
	themeErr error
}

func (f *fakeActions) ToggleTask(_ context.Context, t domain.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggled = append(f.toggled, t.ID)
	return nil
}

func (f *fakeActions) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeActions) RefetchTasks(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refetch++
	return nil
}

func (f *fakeActions) ToggleTheme() (domain.Theme, error) {
	return f.theme, f.themeErr
}

func sampleTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "Write outline", Priority: domain.PriorityHigh},
		{ID: "2", Title: "Review notes", Priority: domain.PriorityMedium, Completed: true},
		{ID: "3", Title: "Book room", Priority: domain.PriorityLow},
	}
}

func newLoadedModel(t *testing.T, actions tui.Actions) *tui.Model {
	t.Helper()
	m := tui.NewModel(io.Discard, actions, domain.ThemeDark)
	model := &m
	model, _ = updateModel(model, tui.MsgTasks{State: query.State[[]domain.Task]{
		Data:    sampleTasks(),
		HasData: true,
		Status:  domain.StatusSuccess,
	}})
	return model
}

func updateModel(m *tui.Model, msg tea.Msg) (*tui.Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(*tui.Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Update(t *testing.T) {
	t.Run("Initial state is loading", func(t *testing.T) {
		m := tui.NewModel(io.Discard, &fakeActions{}, domain.ThemeDark)
		assert.True(t, m.Loading)
		assert.False(t, m.HasData)
	})

	t.Run("Task state replaces the list", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		assert.False(t, m.Loading)
		assert.True(t, m.HasData)
		assert.Len(t, m.Tasks, 3)
	})

	t.Run("Error keeps stale data visible", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		loadErr := errors.New("boom")

		m, _ = updateModel(m, tui.MsgTasks{State: query.State[[]domain.Task]{
			Data:    sampleTasks(),
			HasData: true,
			Err:     loadErr,
			Status:  domain.StatusError,
		}})

		assert.Len(t, m.Tasks, 3)
		assert.Equal(t, loadErr, m.Err)
		assert.False(t, m.Loading)
	})

	t.Run("Revalidation sets fetching", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})

		m, _ = updateModel(m, tui.MsgTasks{State: query.State[[]domain.Task]{
			Data:       sampleTasks(),
			HasData:    true,
			Status:     domain.StatusLoading,
			IsLoading:  true,
			IsFetching: true,
		}})

		assert.True(t, m.Fetching)
		assert.False(t, m.Loading)
	})

	t.Run("Shrinking list clamps selection", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m.SelectedIdx = 2

		m, _ = updateModel(m, tui.MsgTasks{State: query.State[[]domain.Task]{
			Data:    sampleTasks()[:1],
			HasData: true,
			Status:  domain.StatusSuccess,
		}})

		assert.Equal(t, 0, m.SelectedIdx)
	})

	t.Run("Window size", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tea.WindowSizeMsg{Width: 80, Height: 24})
		assert.Equal(t, 80, m.Width)
		assert.Equal(t, 24, m.Height)
	})

	t.Run("Theme message switches theme", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tui.MsgTheme{Theme: domain.ThemeLight})
		assert.Equal(t, domain.ThemeLight, m.Theme)
	})

	t.Run("Request message is kept", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})
		m, _ = updateModel(m, tui.MsgRequest{Event: telemetry.RequestEvent{Method: "GET", Path: "/tasks", StatusCode: 200}})
		require.NotNil(t, m.LastRequest)
		assert.Equal(t, "/tasks", m.LastRequest.Path)
	})
}

func TestModel_Keys(t *testing.T) {
	t.Run("Navigation", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})

		m, _ = updateModel(m, runes("j"))
		assert.Equal(t, 1, m.SelectedIdx)

		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 2, m.SelectedIdx)

		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyDown})
		assert.Equal(t, 2, m.SelectedIdx, "selection stops at the last task")

		m, _ = updateModel(m, runes("k"))
		assert.Equal(t, 1, m.SelectedIdx)

		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyUp})
		m, _ = updateModel(m, tea.KeyMsg{Type: tea.KeyUp})
		assert.Equal(t, 0, m.SelectedIdx, "selection stops at the first task")
	})

	t.Run("Space toggles the selected task", func(t *testing.T) {
		actions := &fakeActions{}
		m := newLoadedModel(t, actions)
		m.SelectedIdx = 1

		_, cmd := updateModel(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
		require.NotNil(t, cmd)
		assert.Nil(t, cmd())

		assert.Equal(t, []string{"2"}, actions.toggled)
	})

	t.Run("d deletes the selected task", func(t *testing.T) {
		actions := &fakeActions{}
		m := newLoadedModel(t, actions)

		_, cmd := updateModel(m, runes("d"))
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, []string{"1"}, actions.deleted)
	})

	t.Run("Mutating keys do nothing on an empty list", func(t *testing.T) {
		m := tui.NewModel(io.Discard, &fakeActions{}, domain.ThemeDark)

		_, cmd := updateModel(&m, runes("d"))
		assert.Nil(t, cmd)
	})

	t.Run("r refetches", func(t *testing.T) {
		actions := &fakeActions{}
		m := newLoadedModel(t, actions)

		_, cmd := updateModel(m, runes("r"))
		require.NotNil(t, cmd)
		cmd()

		assert.Equal(t, 1, actions.refetch)
	})

	t.Run("t toggles the theme", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{theme: domain.ThemeLight})

		_, cmd := updateModel(m, runes("t"))
		require.NotNil(t, cmd)

		assert.Equal(t, tui.MsgTheme{Theme: domain.ThemeLight}, cmd())
	})

	t.Run("Theme failure becomes a toast", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{themeErr: errors.New("read-only")})

		_, cmd := updateModel(m, runes("t"))
		require.NotNil(t, cmd)

		msg, ok := cmd().(tui.MsgToast)
		require.True(t, ok)
		assert.Equal(t, domain.LevelError, msg.Notification.Level)
	})

	t.Run("q quits", func(t *testing.T) {
		m := newLoadedModel(t, &fakeActions{})

		_, cmd := updateModel(m, runes("q"))
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestModel_Toast(t *testing.T) {
	m := newLoadedModel(t, &fakeActions{})

	m, cmd := updateModel(m, tui.MsgToast{Notification: domain.Notification{Level: domain.LevelSuccess, Message: "saved"}})
	require.NotNil(t, cmd)
	require.NotNil(t, m.Toast)
	assert.Equal(t, "saved", m.Toast.Message)

	m, _ = updateModel(m, tui.MsgToast{Notification: domain.Notification{Message: "second"}})
	assert.Equal(t, "second", m.Toast.Message)
}
