package app

import (
	"slices"
	"strconv"

	"go.trai.ch/smartmate/internal/core/domain"
)

// TasksKey is the key of the task list. Parameters narrow it; every
// filtered list shares the ["tasks"] prefix.
func TasksKey(params ...string) domain.QueryKey {
	return domain.Key(append([]string{domain.ResourceTasks}, params...)...)
}

// TaskKey is the key of a single task.
func TaskKey(id string) domain.QueryKey {
	return domain.Key(domain.ResourceTasks, "id="+id)
}

// UsersKey is the key of the user list.
func UsersKey() domain.QueryKey {
	return domain.Key(domain.ResourceUsers)
}

// TaskFilter selects tasks by completion.
type TaskFilter string

// Task filters.
const (
	FilterAll  TaskFilter = "all"
	FilterOpen TaskFilter = "open"
	FilterDone TaskFilter = "done"
)

// ListOptions narrows a task listing.
type ListOptions struct {
	Filter   TaskFilter
	Priority domain.Priority
}

func (o ListOptions) key() domain.QueryKey {
	var params []string
	switch o.Filter {
	case FilterOpen:
		params = append(params, "completed="+strconv.FormatBool(false))
	case FilterDone:
		params = append(params, "completed="+strconv.FormatBool(true))
	}
	if o.Priority != "" {
		params = append(params, "priority="+string(o.Priority))
	}
	return TasksKey(params...)
}

func (o ListOptions) apply(tasks []domain.Task) []domain.Task {
	return slices.DeleteFunc(slices.Clone(tasks), func(t domain.Task) bool {
		switch {
		case o.Filter == FilterOpen && t.Completed:
			return true
		case o.Filter == FilterDone && !t.Completed:
			return true
		case o.Priority != "" && t.Priority != o.Priority:
			return true
		}
		return false
	})
}
