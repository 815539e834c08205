package api

import (
	"github.com/cartable-app/cartable/internal/services"
)

type taskStoreAdapter struct {
	store Store
}

func newTaskStoreAdapter(store Store) services.TaskStore {
	return &taskStoreAdapter{store: store}
}

func taskToStore(t *services.Task) *Task {
	return &Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Subject:     t.Subject,
		Deadline:    t.Deadline,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func taskFromStore(t *Task) *services.Task {
	if t == nil {
		return nil
	}
	return &services.Task{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Subject:     t.Subject,
		Deadline:    t.Deadline,
		Priority:    t.Priority,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}

func (a *taskStoreAdapter) AddTask(t *services.Task) error {
	if t == nil {
		return services.NewInvalidError("task required")
	}
	a.store.AddTask(taskToStore(t))
	return nil
}

func (a *taskStoreAdapter) GetTask(id string) (*services.Task, error) {
	return taskFromStore(a.store.GetTask(id)), nil
}

func (a *taskStoreAdapter) UpdateTask(t *services.Task) error {
	if t == nil {
		return services.NewInvalidError("task required")
	}
	if !a.store.UpdateTask(taskToStore(t)) {
		return services.NewNotFoundError("task not found")
	}
	return nil
}

func (a *taskStoreAdapter) DeleteTask(id string) (bool, error) {
	return a.store.DeleteTask(id), nil
}

func (a *taskStoreAdapter) ListTasksByUser(userID string) ([]*services.Task, error) {
	rows := a.store.ListTasksByUser(userID)
	out := make([]*services.Task, 0, len(rows))
	for _, t := range rows {
		out = append(out, taskFromStore(t))
	}
	return out, nil
}

var _ services.TaskStore = (*taskStoreAdapter)(nil)
