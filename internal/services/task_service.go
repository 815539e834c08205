package services

import (
	"strings"
	"time"
)

var taskPriorities = map[string]bool{"low": true, "medium": true, "high": true}

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	Deadline    string    `json:"deadline"`
	Priority    string    `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskStore interface {
	AddTask(t *Task) error
	GetTask(id string) (*Task, error)
	UpdateTask(t *Task) error
	DeleteTask(id string) (bool, error)
	ListTasksByUser(userID string) ([]*Task, error)
}

type TaskService struct {
	store TaskStore
	now   func() time.Time
	idGen func(n int) string
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
	Deadline    string `json:"deadline"`
	Priority    string `json:"priority"`
	Completed   bool   `json:"completed"`
}

func (s *TaskService) validate(in TaskInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return NewInvalidError("title required")
	}
	if strings.TrimSpace(in.Deadline) == "" {
		return NewInvalidError("deadline required")
	}
	if in.Priority != "" && !taskPriorities[in.Priority] {
		return NewInvalidError("priority must be low, medium or high")
	}
	return nil
}

func (s *TaskService) Create(userID string, in TaskInput) (*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}
	t := &Task{
		ID:          s.idGen(12),
		UserID:      userID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Subject:     strings.TrimSpace(in.Subject),
		Deadline:    in.Deadline,
		Priority:    priority,
		Completed:   in.Completed,
		CreatedAt:   s.now(),
	}
	if err := s.store.AddTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Update(userID, taskID string, in TaskInput) (*Task, error) {
	t, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	t.Title = strings.TrimSpace(in.Title)
	t.Description = strings.TrimSpace(in.Description)
	t.Subject = strings.TrimSpace(in.Subject)
	t.Deadline = in.Deadline
	if in.Priority != "" {
		t.Priority = in.Priority
	}
	t.Completed = in.Completed
	if err := s.store.UpdateTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ToggleComplete flips the completed flag without touching other fields.
func (s *TaskService) ToggleComplete(userID, taskID string) (*Task, error) {
	t, err := s.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	t.Completed = !t.Completed
	if err := s.store.UpdateTask(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) Delete(userID, taskID string) error {
	if _, err := s.owned(userID, taskID); err != nil {
		return err
	}
	ok, err := s.store.DeleteTask(taskID)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("task not found")
	}
	return nil
}

// List returns the student's tasks ordered by deadline ascending.
func (s *TaskService) List(userID string) ([]*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListTasksByUser(userID)
}

func (s *TaskService) owned(userID, taskID string) (*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	t, err := s.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, NewNotFoundError("task not found")
	}
	if t.UserID != userID {
		return nil, NewForbiddenError("forbidden")
	}
	return t, nil
}
