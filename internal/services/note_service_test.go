package services

import (
	"testing"
	"time"
)

type stubNoteStore struct {
	notes map[string]*Note
}

func newStubNoteStore() *stubNoteStore {
	return &stubNoteStore{notes: map[string]*Note{}}
}

func (s *stubNoteStore) AddNote(n *Note) error {
	copy := *n
	s.notes[n.ID] = &copy
	return nil
}

func (s *stubNoteStore) GetNote(id string) (*Note, error) {
	if n, ok := s.notes[id]; ok {
		copy := *n
		return &copy, nil
	}
	return nil, nil
}

func (s *stubNoteStore) UpdateNote(n *Note) error {
	if _, ok := s.notes[n.ID]; !ok {
		return NewNotFoundError("note not found")
	}
	copy := *n
	s.notes[n.ID] = &copy
	return nil
}

func (s *stubNoteStore) DeleteNote(id string) (bool, error) {
	if _, ok := s.notes[id]; !ok {
		return false, nil
	}
	delete(s.notes, id)
	return true, nil
}

func (s *stubNoteStore) ListNotesByUser(userID string) ([]*Note, error) {
	out := []*Note{}
	for _, n := range s.notes {
		if n.UserID == userID {
			copy := *n
			out = append(out, &copy)
		}
	}
	return out, nil
}

func TestNoteCreateDefaultsColor(t *testing.T) {
	store := newStubNoteStore()
	svc := NewNoteService(store)
	svc.idGen = func(n int) string { return "n1" }

	note, err := svc.Create("u1", NoteInput{Title: "Fiche SVT", Content: "La mitose..."})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if note.Color != defaultNoteColor {
		t.Fatalf("color = %q, want default", note.Color)
	}

	note, err = svc.Create("u1", NoteInput{Title: "Fiche histoire", Color: "#DBEAFE"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if note.Color != "#DBEAFE" {
		t.Fatalf("color = %q", note.Color)
	}

	_, err = svc.Create("u1", NoteInput{Content: "sans titre"})
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}
}

func TestNoteUpdateBumpsTimestampAndKeepsColor(t *testing.T) {
	store := newStubNoteStore()
	svc := NewNoteService(store)
	svc.idGen = func(n int) string { return "n1" }
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return created }

	note, err := svc.Create("u1", NoteInput{Title: "Fiche", Content: "v1", Color: "#DBEAFE"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	later := created.Add(2 * time.Hour)
	svc.now = func() time.Time { return later }
	updated, err := svc.Update("u1", note.ID, NoteInput{Title: "Fiche", Content: "v2"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Content != "v2" {
		t.Fatalf("content = %q", updated.Content)
	}
	if updated.Color != "#DBEAFE" {
		t.Fatalf("omitting the color must keep the old one, got %q", updated.Color)
	}
	if !updated.UpdatedAt.Equal(later) || !updated.CreatedAt.Equal(created) {
		t.Fatalf("timestamps = created %v updated %v", updated.CreatedAt, updated.UpdatedAt)
	}
}

func TestNoteOwnership(t *testing.T) {
	store := newStubNoteStore()
	svc := NewNoteService(store)
	svc.idGen = func(n int) string { return "n1" }

	note, err := svc.Create("u1", NoteInput{Title: "privée"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := svc.Update("u2", note.ID, NoteInput{Title: "volée"}); err == nil {
		t.Fatalf("expected forbidden")
	} else if se, ok := AsServiceError(err); !ok || se.Code != ErrorForbidden {
		t.Fatalf("expected forbidden error, got %v", err)
	}
	if err := svc.Delete("u2", note.ID); err == nil {
		t.Fatalf("expected forbidden delete")
	}
	if err := svc.Delete("u1", note.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}
