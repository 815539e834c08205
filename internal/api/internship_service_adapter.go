package api

import (
	"github.com/cartable-app/cartable/internal/services"
)

type internshipStoreAdapter struct {
	store Store
}

func newInternshipStoreAdapter(store Store) services.InternshipStore {
	return &internshipStoreAdapter{store: store}
}

func activityFromStore(a *StageActivity) *services.StageActivity {
	if a == nil {
		return nil
	}
	return &services.StageActivity{
		ID:           a.ID,
		UserID:       a.UserID,
		HoursWorked:  a.HoursWorked,
		Description:  a.Description,
		ActivityDate: a.ActivityDate,
		CreatedAt:    a.CreatedAt,
	}
}

func (a *internshipStoreAdapter) AddActivity(act *services.StageActivity) error {
	if act == nil {
		return services.NewInvalidError("activity required")
	}
	a.store.AddActivity(&StageActivity{
		ID:           act.ID,
		UserID:       act.UserID,
		HoursWorked:  act.HoursWorked,
		Description:  act.Description,
		ActivityDate: act.ActivityDate,
		CreatedAt:    act.CreatedAt,
	})
	return nil
}

func (a *internshipStoreAdapter) GetActivity(id string) (*services.StageActivity, error) {
	return activityFromStore(a.store.GetActivity(id)), nil
}

func (a *internshipStoreAdapter) DeleteActivity(id string) (bool, error) {
	return a.store.DeleteActivity(id), nil
}

func (a *internshipStoreAdapter) ListActivitiesByUser(userID string) ([]*services.StageActivity, error) {
	rows := a.store.ListActivitiesByUser(userID)
	out := make([]*services.StageActivity, 0, len(rows))
	for _, act := range rows {
		out = append(out, activityFromStore(act))
	}
	return out, nil
}

var _ services.InternshipStore = (*internshipStoreAdapter)(nil)
