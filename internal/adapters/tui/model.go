package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/smartmate/internal/adapters/telemetry"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/ui/style"
)

// Actions are the writes the board can trigger. Failures are reported by
// the implementation through the notifier, so the board ignores them.
type Actions interface {
	ToggleTask(ctx context.Context, t domain.Task) error
	DeleteTask(ctx context.Context, id string) error
	RefetchTasks(ctx context.Context) error
	ToggleTheme() (domain.Theme, error)
}

// Model is the task board state.
type Model struct {
	Tasks       []domain.Task
	HasData     bool
	Loading     bool
	Fetching    bool
	Err         error
	SelectedIdx int
	Toast       *domain.Notification
	LastRequest *telemetry.RequestEvent
	Theme       domain.Theme
	Width       int
	Height      int

	ctx      context.Context
	actions  Actions
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	styles   styles
	toastSeq int
	toastTTL time.Duration
	now      func() time.Time
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Selected returns the task under the cursor.
func (m *Model) Selected() (domain.Task, bool) {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Tasks) {
		return m.Tasks[m.SelectedIdx], true
	}
	return domain.Task{}, false
}

// Update handles incoming messages and updates the model state.
//
//nolint:cyclop // message switch
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.help.Width = msg.Width

	case MsgTasks:
		st := msg.State
		if st.HasData {
			m.Tasks = st.Data
		}
		m.HasData = st.HasData
		m.Loading = !st.HasData && st.Err == nil
		m.Fetching = st.IsFetching
		m.Err = st.Err
		m.clampSelection()

	case MsgToast:
		m.toastSeq++
		n := msg.Notification
		m.Toast = &n
		seq := m.toastSeq
		return m, tea.Tick(m.toastTTL, func(time.Time) tea.Msg {
			return msgToastExpired{seq: seq}
		})

	case msgToastExpired:
		if msg.seq == m.toastSeq {
			m.Toast = nil
		}

	case MsgRequest:
		ev := msg.Event
		m.LastRequest = &ev

	case MsgTheme:
		m.Theme = msg.Theme
		m.styles = newStyles(style.PaletteFor(msg.Theme))
		m.spinner.Style = m.styles.selected

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.SelectedIdx > 0 {
			m.SelectedIdx--
		}

	case key.Matches(msg, m.keys.Down):
		if m.SelectedIdx < len(m.Tasks)-1 {
			m.SelectedIdx++
		}

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.Selected(); ok {
			return m.run(func(ctx context.Context) error {
				return m.actions.ToggleTask(ctx, t)
			})
		}

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.Selected(); ok {
			return m.run(func(ctx context.Context) error {
				return m.actions.DeleteTask(ctx, t.ID)
			})
		}

	case key.Matches(msg, m.keys.Refetch):
		return m.run(m.actions.RefetchTasks)

	case key.Matches(msg, m.keys.Theme):
		actions := m.actions
		return func() tea.Msg {
			theme, err := actions.ToggleTheme()
			if err != nil {
				return MsgToast{Notification: domain.Notification{Level: domain.LevelError, Message: err.Error()}}
			}
			return MsgTheme{Theme: theme}
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

// run performs fn off the update loop.
func (m *Model) run(fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_ = fn(ctx)
		return nil
	}
}

func (m *Model) clampSelection() {
	if m.SelectedIdx >= len(m.Tasks) {
		m.SelectedIdx = len(m.Tasks) - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
}
