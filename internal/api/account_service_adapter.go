package api

import (
	"github.com/cartable-app/cartable/internal/services"
)

type accountStoreAdapter struct {
	store Store
}

func newAccountStoreAdapter(store Store) services.AccountStore {
	return &accountStoreAdapter{store: store}
}

func (a *accountStoreAdapter) DeleteTasksByUser(userID string, limit int) (int, error) {
	return a.store.DeleteTasksByUser(userID, limit), nil
}

func (a *accountStoreAdapter) DeleteNotesByUser(userID string, limit int) (int, error) {
	return a.store.DeleteNotesByUser(userID, limit), nil
}

func (a *accountStoreAdapter) DeleteActivitiesByUser(userID string, limit int) (int, error) {
	return a.store.DeleteActivitiesByUser(userID, limit), nil
}

func (a *accountStoreAdapter) DeleteConversationsByUser(userID string, limit int) (int, error) {
	return a.store.DeleteConversationsByUser(userID, limit), nil
}

func (a *accountStoreAdapter) DeleteProfile(userID string) error {
	a.store.DeleteProfile(userID)
	return nil
}

func (a *accountStoreAdapter) DeleteUser(userID string) error {
	if !a.store.DeleteUser(userID) {
		return services.NewNotFoundError("user not found")
	}
	return nil
}

var _ services.AccountStore = (*accountStoreAdapter)(nil)
