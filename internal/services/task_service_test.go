package services

import (
	"sort"
	"testing"
	"time"
)

type stubTaskStore struct {
	tasks map[string]*Task
}

func newStubTaskStore() *stubTaskStore {
	return &stubTaskStore{tasks: map[string]*Task{}}
}

func (s *stubTaskStore) AddTask(t *Task) error {
	copy := *t
	s.tasks[t.ID] = &copy
	return nil
}

func (s *stubTaskStore) GetTask(id string) (*Task, error) {
	if t, ok := s.tasks[id]; ok {
		copy := *t
		return &copy, nil
	}
	return nil, nil
}

func (s *stubTaskStore) UpdateTask(t *Task) error {
	if _, ok := s.tasks[t.ID]; !ok {
		return NewNotFoundError("task not found")
	}
	copy := *t
	s.tasks[t.ID] = &copy
	return nil
}

func (s *stubTaskStore) DeleteTask(id string) (bool, error) {
	if _, ok := s.tasks[id]; !ok {
		return false, nil
	}
	delete(s.tasks, id)
	return true, nil
}

func (s *stubTaskStore) ListTasksByUser(userID string) ([]*Task, error) {
	out := []*Task{}
	for _, t := range s.tasks {
		if t.UserID == userID {
			copy := *t
			out = append(out, &copy)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Deadline < out[j].Deadline })
	return out, nil
}

func TestTaskCreateDefaultsAndValidation(t *testing.T) {
	store := newStubTaskStore()
	svc := NewTaskService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	svc.idGen = func(n int) string { return "task00000001" }

	task, err := svc.Create("u1", TaskInput{Title: " Réviser le bac blanc ", Deadline: "2026-03-15"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if task.ID != "task00000001" || task.Title != "Réviser le bac blanc" {
		t.Fatalf("task = %+v", task)
	}
	if task.Priority != "medium" {
		t.Fatalf("priority = %q, want the medium default", task.Priority)
	}
	if task.Completed {
		t.Fatalf("new tasks start incomplete")
	}

	cases := []TaskInput{
		{Deadline: "2026-03-15"},
		{Title: "x"},
		{Title: "x", Deadline: "2026-03-15", Priority: "urgent"},
	}
	for i, in := range cases {
		_, err := svc.Create("u1", in)
		if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
			t.Fatalf("case %d: expected invalid error, got %v", i, err)
		}
	}

	if _, err := svc.Create("", TaskInput{Title: "x", Deadline: "d"}); err == nil {
		t.Fatalf("expected unauthorized without a user")
	}
}

func TestTaskUpdateToggleDelete(t *testing.T) {
	store := newStubTaskStore()
	svc := NewTaskService(store)
	svc.idGen = func(n int) string { return "t1" }

	created, err := svc.Create("u1", TaskInput{Title: "DM de maths", Deadline: "2026-03-10", Priority: "high"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	updated, err := svc.Update("u1", created.ID, TaskInput{Title: "DM de maths", Deadline: "2026-03-12", Priority: "low"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Deadline != "2026-03-12" || updated.Priority != "low" {
		t.Fatalf("updated task = %+v", updated)
	}

	toggled, err := svc.ToggleComplete("u1", created.ID)
	if err != nil {
		t.Fatalf("ToggleComplete returned error: %v", err)
	}
	if !toggled.Completed {
		t.Fatalf("expected completed after toggle")
	}
	toggled, err = svc.ToggleComplete("u1", created.ID)
	if err != nil {
		t.Fatalf("ToggleComplete returned error: %v", err)
	}
	if toggled.Completed {
		t.Fatalf("expected incomplete after second toggle")
	}

	if _, err := svc.Update("u2", created.ID, TaskInput{Title: "x", Deadline: "d"}); err == nil {
		t.Fatalf("expected forbidden for another user's task")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}

	if err := svc.Delete("u1", created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete("u1", created.ID); err == nil {
		t.Fatalf("expected not found for a deleted task")
	}
}

func TestTaskListIsScopedToUser(t *testing.T) {
	store := newStubTaskStore()
	svc := NewTaskService(store)
	ids := []string{"a", "b", "c"}
	i := 0
	svc.idGen = func(n int) string { id := ids[i]; i++; return id }

	if _, err := svc.Create("u1", TaskInput{Title: "t1", Deadline: "2026-03-20"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create("u1", TaskInput{Title: "t2", Deadline: "2026-03-10"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Create("u2", TaskInput{Title: "other", Deadline: "2026-03-01"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	tasks, err := svc.List("u1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	if tasks[0].Deadline > tasks[1].Deadline {
		t.Fatalf("tasks must come back deadline ascending")
	}
}
