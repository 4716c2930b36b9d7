package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/smartmate/internal/adapters/notify"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/ui/style"
)

// View renders the UI.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.header() + "\n\n")

	switch {
	case m.Loading:
		s.WriteString(m.spinner.View() + " Loading tasks...\n")
	case !m.HasData && m.Err != nil:
		s.WriteString(m.errorLine() + "\n")
	case len(m.Tasks) == 0:
		s.WriteString(m.styles.muted.Render("No tasks.") + "\n")
	default:
		for i, t := range m.Tasks {
			s.WriteString(m.renderRow(i, t) + "\n")
		}
	}

	s.WriteString("\n" + m.statusBar() + "\n")
	s.WriteString(m.help.View(m.keys))

	return s.String()
}

func (m *Model) header() string {
	open := 0
	for _, t := range m.Tasks {
		if !t.Completed {
			open++
		}
	}
	title := m.styles.title.Render("TASKS")
	if !m.HasData {
		return title
	}
	return title + m.styles.muted.Render(fmt.Sprintf(" %d open / %d", open, len(m.Tasks)))
}

func (m *Model) renderRow(index int, t domain.Task) string {
	icon, rowStyle := m.taskLook(t)

	cursor := "  "
	if index == m.SelectedIdx {
		cursor = m.styles.selected.Render("> ")
		if !t.Completed {
			rowStyle = m.styles.selected
		}
	}

	priority := lipgloss.NewStyle().
		Foreground(m.styles.palette.PriorityColor(t.Priority)).
		Render(fmt.Sprintf("%-8s", "["+string(t.Priority)+"]"))

	row := cursor + rowStyle.Render(icon+" ") + priority + " " + rowStyle.Render(t.Title)
	if t.DueDate != nil {
		row += m.styles.muted.Render("  due " + t.DueDate.UTC().Format(domain.DueDateLayout))
	}
	return row
}

func (m *Model) taskLook(t domain.Task) (string, lipgloss.Style) {
	switch {
	case t.Completed:
		return style.Check, m.styles.done
	case t.Overdue(m.now()):
		return style.Warning, m.styles.overdue
	default:
		return style.Circle, m.styles.row
	}
}

func (m *Model) errorLine() string {
	return m.styles.failure.Render(style.Cross + " failed to load tasks: " + m.Err.Error())
}

// statusBar shows, in order of precedence, the active toast, a load error
// over stale data, the refresh spinner, or the last request.
func (m *Model) statusBar() string {
	switch {
	case m.Toast != nil:
		icon, color := notify.Decorate(m.Toast.Level)
		return lipgloss.NewStyle().Foreground(color).Render(icon + " " + m.Toast.Message)
	case m.HasData && m.Err != nil:
		return m.errorLine()
	case m.Fetching && m.HasData:
		return m.spinner.View() + m.styles.muted.Render(" Refreshing...")
	case m.LastRequest != nil:
		return m.requestLine()
	default:
		return m.styles.muted.Render(string(m.Theme) + " theme")
	}
}

func (m *Model) requestLine() string {
	ev := m.LastRequest
	line := fmt.Sprintf("%s %s", ev.Method, ev.Path)
	if ev.StatusCode != 0 {
		line += fmt.Sprintf(" %d", ev.StatusCode)
	}
	line += " " + ev.Duration.Round(time.Millisecond).String()
	if ev.Failed() {
		return m.styles.failure.Render(style.Cross + " " + line)
	}
	return m.styles.muted.Render(style.Tilde + " " + line)
}
