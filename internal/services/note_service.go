package services

import (
	"strings"
	"time"
)

// defaultNoteColor matches the first swatch offered by the editor.
const defaultNoteColor = "#FEF3C7"

type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Subject   string    `json:"subject,omitempty"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NoteStore interface {
	AddNote(n *Note) error
	GetNote(id string) (*Note, error)
	UpdateNote(n *Note) error
	DeleteNote(id string) (bool, error)
	ListNotesByUser(userID string) ([]*Note, error)
}

type NoteService struct {
	store NoteStore
	now   func() time.Time
	idGen func(n int) string
}

func NewNoteService(store NoteStore) *NoteService {
	return &NoteService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Subject string `json:"subject"`
	Color   string `json:"color"`
}

func (s *NoteService) Create(userID string, in NoteInput) (*Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, NewInvalidError("title required")
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = defaultNoteColor
	}
	now := s.now()
	n := &Note{
		ID:        s.idGen(12),
		UserID:    userID,
		Title:     strings.TrimSpace(in.Title),
		Content:   in.Content,
		Subject:   strings.TrimSpace(in.Subject),
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Update(userID, noteID string, in NoteInput) (*Note, error) {
	n, err := s.owned(userID, noteID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, NewInvalidError("title required")
	}
	n.Title = strings.TrimSpace(in.Title)
	n.Content = in.Content
	n.Subject = strings.TrimSpace(in.Subject)
	if strings.TrimSpace(in.Color) != "" {
		n.Color = strings.TrimSpace(in.Color)
	}
	n.UpdatedAt = s.now()
	if err := s.store.UpdateNote(n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NoteService) Delete(userID, noteID string) error {
	if _, err := s.owned(userID, noteID); err != nil {
		return err
	}
	ok, err := s.store.DeleteNote(noteID)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("note not found")
	}
	return nil
}

// List returns the student's notes, most recently updated first.
func (s *NoteService) List(userID string) ([]*Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListNotesByUser(userID)
}

func (s *NoteService) owned(userID, noteID string) (*Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	n, err := s.store.GetNote(noteID)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, NewNotFoundError("note not found")
	}
	if n.UserID != userID {
		return nil, NewForbiddenError("forbidden")
	}
	return n, nil
}
