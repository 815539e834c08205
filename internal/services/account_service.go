package services

import (
	"strings"
	"time"
)

// deleteBatchSize bounds each bulk delete so one pass never locks the store
// for long. Leftovers are drained on the next loop iteration.
const deleteBatchSize = 499

// AccountStore deletes a user's data collection by collection. Each
// Delete*ByUser call removes at most limit rows and reports how many it
// removed, so the service can loop until a collection is drained.
type AccountStore interface {
	DeleteTasksByUser(userID string, limit int) (int, error)
	DeleteNotesByUser(userID string, limit int) (int, error)
	DeleteActivitiesByUser(userID string, limit int) (int, error)
	DeleteConversationsByUser(userID string, limit int) (int, error)
	DeleteProfile(userID string) error
	DeleteUser(userID string) error
}

type AccountService struct {
	store AccountStore
	now   func() time.Time
}

func NewAccountService(store AccountStore) *AccountService {
	return &AccountService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

type DeletionReport struct {
	TasksDeleted         int    `json:"tasks_deleted"`
	NotesDeleted         int    `json:"notes_deleted"`
	ActivitiesDeleted    int    `json:"activities_deleted"`
	ConversationsDeleted int    `json:"conversations_deleted"`
	DeletedAt            string `json:"deleted_at"`
}

// DeleteAccount removes every collection the student owns, then the profile
// and the account itself. Collections go first so a failure partway through
// leaves the account reachable and the deletion retryable.
func (s *AccountService) DeleteAccount(userID string) (*DeletionReport, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	report := &DeletionReport{}
	collections := []struct {
		del   func(string, int) (int, error)
		count *int
	}{
		{s.store.DeleteTasksByUser, &report.TasksDeleted},
		{s.store.DeleteNotesByUser, &report.NotesDeleted},
		{s.store.DeleteActivitiesByUser, &report.ActivitiesDeleted},
		{s.store.DeleteConversationsByUser, &report.ConversationsDeleted},
	}
	for _, c := range collections {
		for {
			n, err := c.del(userID, deleteBatchSize)
			if err != nil {
				return nil, err
			}
			*c.count += n
			if n < deleteBatchSize {
				break
			}
		}
	}
	if err := s.store.DeleteProfile(userID); err != nil {
		return nil, err
	}
	if err := s.store.DeleteUser(userID); err != nil {
		return nil, err
	}
	report.DeletedAt = s.now().Format(time.RFC3339)
	return report, nil
}
