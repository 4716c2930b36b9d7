package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/smartmate/internal/core/domain"
)

func TestParsePriority(t *testing.T) {
	p, err := domain.ParsePriority(" High ")
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityHigh, p)

	_, err = domain.ParsePriority("urgent")
	require.ErrorIs(t, err, domain.ErrInvalidPriority)
}

func TestParseDueDate(t *testing.T) {
	d, err := domain.ParseDueDate("2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), d)

	_, err = domain.ParseDueDate("14/03/2025")
	require.ErrorIs(t, err, domain.ErrInvalidDueDate)
}

func TestTask_ApplyChangesOnlyPatchedFields(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:        "t1",
		Title:     "write report",
		Priority:  domain.PriorityLow,
		CreatedAt: created,
		UpdatedAt: created,
	}

	done := true
	got := task.Apply(domain.TaskPatch{Completed: &done})

	want := task
	want.Completed = true
	assert.Equal(t, want, got)
	assert.False(t, task.Completed, "Apply must not mutate the receiver")
}

func TestTaskPatch_Empty(t *testing.T) {
	assert.True(t, domain.TaskPatch{}.Empty())
	title := "x"
	assert.False(t, domain.TaskPatch{Title: &title}.Empty())
}

func TestTask_Overdue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)

	assert.True(t, domain.Task{DueDate: &past}.Overdue(now))
	assert.False(t, domain.Task{DueDate: &past, Completed: true}.Overdue(now))
	assert.False(t, domain.Task{}.Overdue(now))
}

func TestMutationIntent_String(t *testing.T) {
	assert.Equal(t, "delete task 7", domain.MutationIntent{Op: domain.OpDelete, Resource: domain.ResourceTasks, TargetID: "7"}.String())
	assert.Equal(t, "create user", domain.MutationIntent{Op: domain.OpCreate, Resource: domain.ResourceUsers}.String())
}
