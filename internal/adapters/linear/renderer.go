// Package linear renders query state as plain lines for pipes and CI.
package linear

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/engine/query"
	"go.trai.ch/smartmate/internal/ui/output"
	"go.trai.ch/smartmate/internal/ui/style"
)

const noDueDate = "-"

// Renderer writes tables to stdout and progress or errors to stderr.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	now    func() time.Time

	mu sync.Mutex
}

// NewRenderer creates a Renderer. Nil writers select the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, output.ColorProfileANSI),
		now:    time.Now,
	}
}

// WithClock overrides the clock used for overdue markers.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	r.now = now
	return r
}

// Tasks renders the state of a task list query.
func (r *Renderer) Tasks(st query.State[[]domain.Task]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progressLocked(st.Status, st.HasData, st.Err, domain.ResourceTasks) {
		return
	}
	if len(st.Data) == 0 {
		_, _ = fmt.Fprintln(r.stdout, "No tasks.")
		return
	}

	tw := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, " \tID\tPRIORITY\tDUE\tTITLE")
	for _, t := range st.Data {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.mark(t), t.ID, t.Priority, r.due(t), t.Title)
	}
	_ = tw.Flush()
}

// Users renders the state of a user list query.
func (r *Renderer) Users(st query.State[[]domain.User]) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.progressLocked(st.Status, st.HasData, st.Err, domain.ResourceUsers) {
		return
	}
	if len(st.Data) == 0 {
		_, _ = fmt.Fprintln(r.stdout, "No users.")
		return
	}

	tw := tabwriter.NewWriter(r.stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, u := range st.Data {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	_ = tw.Flush()
}

// Task prints a single task, e.g. after it was created or edited.
func (r *Renderer) Task(t domain.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stdout, "%s %s [%s] due %s %s\n", r.mark(t), t.ID, t.Priority, r.due(t), t.Title)
}

// progressLocked writes the loading or error line. It reports whether the
// state has nothing else to show.
func (r *Renderer) progressLocked(status domain.QueryStatus, hasData bool, err error, resource string) bool {
	switch {
	case status == domain.StatusError && err != nil:
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.stderr, "%s failed to load %s: %v\n", symbol, resource, err)
		return !hasData
	case status == domain.StatusLoading && !hasData:
		_, _ = fmt.Fprintf(r.stderr, "Loading %s...\n", resource)
		return true
	case status == domain.StatusIdle && !hasData:
		return true
	}
	return false
}

func (r *Renderer) mark(t domain.Task) string {
	switch {
	case t.Completed:
		return style.Check
	case t.Overdue(r.now()):
		return style.Warning
	default:
		return style.Circle
	}
}

func (r *Renderer) due(t domain.Task) string {
	if t.DueDate == nil {
		return noDueDate
	}
	return strings.TrimSpace(t.DueDate.UTC().Format(domain.DueDateLayout))
}
