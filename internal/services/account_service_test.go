package services

import (
	"errors"
	"testing"
)

type stubAccountStore struct {
	counts         map[string]int
	profileDeleted bool
	userDeleted    bool
	convErr        error
}

func (s *stubAccountStore) drain(key, userID string, limit int) (int, error) {
	n := s.counts[key]
	if n > limit {
		s.counts[key] = n - limit
		return limit, nil
	}
	s.counts[key] = 0
	return n, nil
}

func (s *stubAccountStore) DeleteTasksByUser(userID string, limit int) (int, error) {
	return s.drain("tasks", userID, limit)
}

func (s *stubAccountStore) DeleteNotesByUser(userID string, limit int) (int, error) {
	return s.drain("notes", userID, limit)
}

func (s *stubAccountStore) DeleteActivitiesByUser(userID string, limit int) (int, error) {
	return s.drain("activities", userID, limit)
}

func (s *stubAccountStore) DeleteConversationsByUser(userID string, limit int) (int, error) {
	if s.convErr != nil {
		return 0, s.convErr
	}
	return s.drain("conversations", userID, limit)
}

func (s *stubAccountStore) DeleteProfile(userID string) error {
	s.profileDeleted = true
	return nil
}

func (s *stubAccountStore) DeleteUser(userID string) error {
	s.userDeleted = true
	return nil
}

func TestDeleteAccountDrainsEveryCollection(t *testing.T) {
	store := &stubAccountStore{counts: map[string]int{
		// More rows than one batch to force the loop around.
		"tasks":         1200,
		"notes":         3,
		"activities":    0,
		"conversations": 499,
	}}
	svc := NewAccountService(store)

	report, err := svc.DeleteAccount("u1")
	if err != nil {
		t.Fatalf("DeleteAccount returned error: %v", err)
	}
	if report.TasksDeleted != 1200 || report.NotesDeleted != 3 {
		t.Fatalf("report = %+v", report)
	}
	if report.ActivitiesDeleted != 0 || report.ConversationsDeleted != 499 {
		t.Fatalf("report = %+v", report)
	}
	for key, left := range store.counts {
		if left != 0 {
			t.Fatalf("collection %s not drained: %d left", key, left)
		}
	}
	if !store.profileDeleted || !store.userDeleted {
		t.Fatalf("profile and user must go last")
	}
	if report.DeletedAt == "" {
		t.Fatalf("report must carry the deletion timestamp")
	}
}

func TestDeleteAccountStopsOnStoreError(t *testing.T) {
	store := &stubAccountStore{
		counts:  map[string]int{"tasks": 2},
		convErr: errors.New("db locked"),
	}
	svc := NewAccountService(store)

	if _, err := svc.DeleteAccount("u1"); err == nil {
		t.Fatalf("expected error")
	}
	if store.profileDeleted || store.userDeleted {
		t.Fatalf("account must stay reachable when a collection delete fails")
	}
}

func TestDeleteAccountRequiresUser(t *testing.T) {
	svc := NewAccountService(&stubAccountStore{counts: map[string]int{}})
	_, err := svc.DeleteAccount(" ")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
