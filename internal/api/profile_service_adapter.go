package api

import (
	"github.com/cartable-app/cartable/internal/services"
)

func profileToStore(p *services.Profile) *Profile {
	out := &Profile{
		UserID:                   p.UserID,
		FirstName:                p.FirstName,
		BirthDate:                p.BirthDate,
		Filiere:                  p.Filiere,
		ParentEmail:              p.ParentEmail,
		ParentalConsentValidated: p.ParentalConsentValidated,
		LearningStyle:            p.LearningStyle,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
	if p.Preferences != nil {
		out.Preferences = &Preferences{CompletedTest: p.Preferences.CompletedTest, TestDate: p.Preferences.TestDate}
	}
	return out
}

func profileFromStore(p *Profile) *services.Profile {
	if p == nil {
		return nil
	}
	out := &services.Profile{
		UserID:                   p.UserID,
		FirstName:                p.FirstName,
		BirthDate:                p.BirthDate,
		Filiere:                  p.Filiere,
		ParentEmail:              p.ParentEmail,
		ParentalConsentValidated: p.ParentalConsentValidated,
		LearningStyle:            p.LearningStyle,
		CreatedAt:                p.CreatedAt,
		UpdatedAt:                p.UpdatedAt,
	}
	if p.Preferences != nil {
		out.Preferences = &services.Preferences{CompletedTest: p.Preferences.CompletedTest, TestDate: p.Preferences.TestDate}
	}
	return out
}

type profileStoreAdapter struct {
	store Store
}

func newProfileStoreAdapter(store Store) services.ProfileStore {
	return &profileStoreAdapter{store: store}
}

func (a *profileStoreAdapter) GetProfile(userID string) (*services.Profile, error) {
	return profileFromStore(a.store.GetProfile(userID)), nil
}

func (a *profileStoreAdapter) UpdateProfile(p *services.Profile) error {
	if p == nil {
		return services.NewInvalidError("profile required")
	}
	if !a.store.UpdateProfile(profileToStore(p)) {
		return services.NewNotFoundError("profile not found")
	}
	return nil
}

func (a *profileStoreAdapter) SetLearningStyle(userID, style string, prefs services.Preferences) error {
	ok := a.store.SetLearningStyle(userID, style, Preferences{CompletedTest: prefs.CompletedTest, TestDate: prefs.TestDate})
	if !ok {
		return services.NewNotFoundError("profile not found")
	}
	return nil
}

var _ services.ProfileStore = (*profileStoreAdapter)(nil)
