package services

import (
	"strings"
	"time"
)

type ProfileStore interface {
	GetProfile(userID string) (*Profile, error)
	UpdateProfile(p *Profile) error
	SetLearningStyle(userID, style string, prefs Preferences) error
}

type ProfileService struct {
	store ProfileStore
	now   func() time.Time
}

func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *ProfileService) Get(userID string) (*Profile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	p, err := s.store.GetProfile(userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, NewNotFoundError("profile not found")
	}
	return p, nil
}

type UpdateProfileInput struct {
	FirstName   string `json:"first_name"`
	BirthDate   string `json:"birth_date"`
	Filiere     string `json:"filiere"`
	ParentEmail string `json:"parent_email"`
}

func (s *ProfileService) Update(userID string, in UpdateProfileInput) (*Profile, error) {
	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.FirstName) == "" {
		return nil, NewInvalidError("first_name required")
	}
	if strings.TrimSpace(in.Filiere) == "" {
		return nil, NewInvalidError("filiere required")
	}
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.BirthDate = strings.TrimSpace(in.BirthDate)
	p.Filiere = strings.TrimSpace(in.Filiere)
	p.ParentEmail = strings.TrimSpace(in.ParentEmail)
	p.UpdatedAt = s.now()
	if err := s.store.UpdateProfile(p); err != nil {
		return nil, err
	}
	return p, nil
}

// SurveyOutcome is what the result screen shows after a completed survey.
type SurveyOutcome struct {
	LearningStyle string   `json:"learning_style"`
	Description   string   `json:"description"`
	Adaptations   []string `json:"adaptations"`
	TestDate      string   `json:"test_date"`
}

// CompleteSurvey scores the answers and overwrites the profile's learning
// style together with the completed-test preferences in one write. A
// resubmission overwrites the previous result; earlier results are never
// kept or recomputed.
func (s *ProfileService) CompleteSurvey(userID string, answers []int) (*SurveyOutcome, error) {
	if _, err := s.Get(userID); err != nil {
		return nil, err
	}
	style, err := ScoreAnswers(answers)
	if err != nil {
		return nil, err
	}
	testDate := s.now()
	prefs := Preferences{CompletedTest: true, TestDate: testDate}
	if err := s.store.SetLearningStyle(userID, string(style), prefs); err != nil {
		return nil, err
	}
	sp := ProfileForStyle(style)
	return &SurveyOutcome{
		LearningStyle: string(style),
		Description:   sp.Description,
		Adaptations:   sp.Adaptations,
		TestDate:      testDate.Format(time.RFC3339),
	}, nil
}
