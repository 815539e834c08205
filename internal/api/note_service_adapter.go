package api

import (
	"github.com/cartable-app/cartable/internal/services"
)

type noteStoreAdapter struct {
	store Store
}

func newNoteStoreAdapter(store Store) services.NoteStore {
	return &noteStoreAdapter{store: store}
}

func noteToStore(n *services.Note) *Note {
	return &Note{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Subject:   n.Subject,
		Color:     n.Color,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func noteFromStore(n *Note) *services.Note {
	if n == nil {
		return nil
	}
	return &services.Note{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Content:   n.Content,
		Subject:   n.Subject,
		Color:     n.Color,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (a *noteStoreAdapter) AddNote(n *services.Note) error {
	if n == nil {
		return services.NewInvalidError("note required")
	}
	a.store.AddNote(noteToStore(n))
	return nil
}

func (a *noteStoreAdapter) GetNote(id string) (*services.Note, error) {
	return noteFromStore(a.store.GetNote(id)), nil
}

func (a *noteStoreAdapter) UpdateNote(n *services.Note) error {
	if n == nil {
		return services.NewInvalidError("note required")
	}
	if !a.store.UpdateNote(noteToStore(n)) {
		return services.NewNotFoundError("note not found")
	}
	return nil
}

func (a *noteStoreAdapter) DeleteNote(id string) (bool, error) {
	return a.store.DeleteNote(id), nil
}

func (a *noteStoreAdapter) ListNotesByUser(userID string) ([]*services.Note, error) {
	rows := a.store.ListNotesByUser(userID)
	out := make([]*services.Note, 0, len(rows))
	for _, n := range rows {
		out = append(out, noteFromStore(n))
	}
	return out, nil
}

var _ services.NoteStore = (*noteStoreAdapter)(nil)
