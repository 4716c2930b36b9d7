package app

import (
	"context"
	"errors"
	"slices"

	"go.trai.ch/smartmate/internal/core/domain"
	"go.trai.ch/smartmate/internal/engine/query"
	"go.trai.ch/zerr"
)

func (a *App) initMutations() {
	a.createTask = query.NewMutation(a.cache, a.tasks.Create, query.MutationOptions[domain.TaskInput, domain.Task]{
		OnSuccess: func(c *query.Client, _ domain.TaskInput, out domain.Task) {
			patchTaskList(c, func(tasks []domain.Task) []domain.Task {
				return append(tasks, out)
			})
			query.SetQueryData(c, TaskKey(out.ID), func(domain.Task, bool) domain.Task { return out })
		},
		Invalidates: []domain.QueryKey{TasksKey()},
		OnError: func(in domain.TaskInput, err error) {
			a.mutationFailed(domain.MutationIntent{Op: domain.OpCreate, Resource: domain.ResourceTasks, Payload: in}, err)
		},
	})

	a.updateTask = query.NewMutation(a.cache,
		func(ctx context.Context, in taskUpdate) (domain.Task, error) {
			return a.tasks.Update(ctx, in.ID, in.Patch)
		},
		query.MutationOptions[taskUpdate, domain.Task]{
			OnMutate: func(c *query.Client, in taskUpdate) func() {
				return patchTaskList(c, func(tasks []domain.Task) []domain.Task {
					for i := range tasks {
						if tasks[i].ID == in.ID {
							tasks[i] = tasks[i].Apply(in.Patch)
						}
					}
					return tasks
				})
			},
			OnSuccess: func(c *query.Client, _ taskUpdate, out domain.Task) {
				patchTaskList(c, func(tasks []domain.Task) []domain.Task {
					for i := range tasks {
						if tasks[i].ID == out.ID {
							tasks[i] = out
						}
					}
					return tasks
				})
				query.SetQueryData(c, TaskKey(out.ID), func(domain.Task, bool) domain.Task { return out })
			},
			Invalidates: []domain.QueryKey{TasksKey()},
			OnError: func(in taskUpdate, err error) {
				a.mutationFailed(domain.MutationIntent{Op: domain.OpUpdate, Resource: domain.ResourceTasks, TargetID: in.ID, Payload: in.Patch}, err)
			},
		},
	)

	a.deleteTask = query.NewMutation(a.cache,
		func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, a.tasks.Delete(ctx, id)
		},
		query.MutationOptions[string, struct{}]{
			OnMutate: func(c *query.Client, id string) func() {
				return patchTaskList(c, func(tasks []domain.Task) []domain.Task {
					return slices.DeleteFunc(tasks, func(t domain.Task) bool { return t.ID == id })
				})
			},
			OnSuccess: func(c *query.Client, id string, _ struct{}) {
				c.Remove(TaskKey(id))
			},
			Invalidates: []domain.QueryKey{TasksKey()},
			OnError: func(id string, err error) {
				if errors.Is(err, domain.ErrNotFound) {
					return
				}
				a.mutationFailed(domain.MutationIntent{Op: domain.OpDelete, Resource: domain.ResourceTasks, TargetID: id}, err)
			},
		},
	)
}

// patchTaskList rewrites the cached unfiltered task list. It does nothing
// when the list has never been loaded.
func patchTaskList(c *query.Client, fn func([]domain.Task) []domain.Task) (restore func()) {
	if _, ok := query.GetQueryData[[]domain.Task](c, TasksKey()); !ok {
		return nil
	}
	return query.SetQueryData(c, TasksKey(), func(old []domain.Task, _ bool) []domain.Task {
		return fn(slices.Clone(old))
	})
}

// mutationFailed turns a failed write into an error toast. The intent is
// dropped afterwards.
func (a *App) mutationFailed(intent domain.MutationIntent, err error) {
	msg := "could not " + intent.String()
	if reason := domain.KindOf(err); reason != domain.KindUnknown {
		msg += " (" + reason.String() + ")"
	}
	a.notifier.Notify(domain.Notification{Level: domain.LevelError, Message: msg})
}

// ListTasks fetches the task list and prints it.
func (a *App) ListTasks(ctx context.Context, opts ListOptions) error {
	q := query.Use(a.cache, opts.key(), func(ctx context.Context) ([]domain.Task, error) {
		tasks, err := a.tasks.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return opts.apply(tasks), nil
	})
	defer q.Close()

	if st := q.State(); !st.Settled() {
		a.renderer.Tasks(st)
	}

	st, err := q.Wait(ctx)
	if err != nil {
		return err
	}
	a.renderer.Tasks(st)
	if st.Err != nil {
		return errors.Join(domain.ErrListFailed, st.Err)
	}
	return nil
}

// RefetchTasks marks every task list stale and refetches those in view.
func (a *App) RefetchTasks(_ context.Context) error {
	a.cache.Invalidate(TasksKey())
	return nil
}

// AddTask creates a task and prints it.
func (a *App) AddTask(ctx context.Context, in domain.TaskInput) (domain.Task, error) {
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	t, err := a.createTask.Mutate(ctx, in)
	if err != nil {
		return domain.Task{}, zerr.Wrap(err, "failed to create task")
	}
	a.renderer.Task(t)
	return t, nil
}

// UpdateTask applies patch to the task and prints the result.
func (a *App) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (domain.Task, error) {
	if patch.Empty() {
		return domain.Task{}, zerr.With(zerr.Wrap(domain.ErrEmptyPatch, "update task"), "id", id)
	}
	t, err := a.updateTask.Mutate(ctx, taskUpdate{ID: id, Patch: patch})
	if err != nil {
		return domain.Task{}, zerr.With(zerr.Wrap(err, "failed to update task"), "id", id)
	}
	a.renderer.Task(t)
	return t, nil
}

// CompleteTask marks the task done.
func (a *App) CompleteTask(ctx context.Context, id string) (domain.Task, error) {
	done := true
	return a.UpdateTask(ctx, id, domain.TaskPatch{Completed: &done})
}

// ToggleTask flips the completed flag of t without printing.
func (a *App) ToggleTask(ctx context.Context, t domain.Task) error {
	completed := !t.Completed
	_, err := a.updateTask.Mutate(ctx, taskUpdate{ID: t.ID, Patch: domain.TaskPatch{Completed: &completed}})
	return err
}

// DeleteTask deletes the task. Deleting a task that no longer exists is
// a no-op for the user: it is logged and the list is refreshed.
func (a *App) DeleteTask(ctx context.Context, id string) error {
	_, err := a.deleteTask.Mutate(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.logger.Warn("task " + id + " was already deleted: " + err.Error())
		a.cache.Invalidate(TasksKey())
		return nil
	case err != nil:
		return zerr.With(zerr.Wrap(err, "failed to delete task"), "id", id)
	}
	a.notifier.Notify(domain.Notification{Level: domain.LevelSuccess, Message: "deleted task " + id})
	return nil
}
