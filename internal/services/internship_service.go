package services

import (
	"math"
	"strings"
	"time"
)

// StageActivity is one logged work session of the student's internship.
type StageActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	HoursWorked  float64   `json:"hours_worked"`
	Description  string    `json:"description,omitempty"`
	ActivityDate string    `json:"activity_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type InternshipStore interface {
	AddActivity(a *StageActivity) error
	GetActivity(id string) (*StageActivity, error)
	DeleteActivity(id string) (bool, error)
	ListActivitiesByUser(userID string) ([]*StageActivity, error)
}

type InternshipService struct {
	store InternshipStore
	now   func() time.Time
	idGen func(n int) string
}

func NewInternshipService(store InternshipStore) *InternshipService {
	return &InternshipService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

type ActivityInput struct {
	HoursWorked  float64 `json:"hours_worked"`
	Description  string  `json:"description"`
	ActivityDate string  `json:"activity_date"`
}

// Log records one work session. Hours must be in (0, 24]; the date is a
// calendar day in YYYY-MM-DD form and defaults to today.
func (s *InternshipService) Log(userID string, in ActivityInput) (*StageActivity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if in.HoursWorked <= 0 || in.HoursWorked > 24 {
		return nil, NewInvalidError("hours_worked must be between 0 and 24")
	}
	day := strings.TrimSpace(in.ActivityDate)
	if day == "" {
		day = s.now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", day); err != nil {
		return nil, NewInvalidError("activity_date must be YYYY-MM-DD")
	}
	a := &StageActivity{
		ID:           s.idGen(12),
		UserID:       userID,
		HoursWorked:  in.HoursWorked,
		Description:  strings.TrimSpace(in.Description),
		ActivityDate: day,
		CreatedAt:    s.now(),
	}
	if err := s.store.AddActivity(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *InternshipService) Delete(userID, activityID string) error {
	if strings.TrimSpace(userID) == "" {
		return NewUnauthorizedError("unauthorized")
	}
	a, err := s.store.GetActivity(activityID)
	if err != nil {
		return err
	}
	if a == nil {
		return NewNotFoundError("activity not found")
	}
	if a.UserID != userID {
		return NewForbiddenError("forbidden")
	}
	ok, err := s.store.DeleteActivity(activityID)
	if err != nil {
		return err
	}
	if !ok {
		return NewNotFoundError("activity not found")
	}
	return nil
}

// List returns the student's activities, most recent day first.
func (s *InternshipService) List(userID string) ([]*StageActivity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	return s.store.ListActivitiesByUser(userID)
}

type InternshipSummary struct {
	TotalHours     float64 `json:"total_hours"`
	LastWeekHours  float64 `json:"last_week_hours"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	DaysWorked     int     `json:"days_worked"`
	Entries        int     `json:"entries"`
}

// Summary aggregates the log: total hours, hours over the last 7 calendar
// days, and the average per distinct worked day.
func (s *InternshipService) Summary(userID string) (*InternshipSummary, error) {
	activities, err := s.List(userID)
	if err != nil {
		return nil, err
	}
	cutoff := s.now().AddDate(0, 0, -7).Format("2006-01-02")
	days := map[string]bool{}
	out := &InternshipSummary{Entries: len(activities)}
	for _, a := range activities {
		out.TotalHours += a.HoursWorked
		if a.ActivityDate >= cutoff {
			out.LastWeekHours += a.HoursWorked
		}
		days[a.ActivityDate] = true
	}
	out.DaysWorked = len(days)
	if out.DaysWorked > 0 {
		out.AvgHoursPerDay = math.Round(out.TotalHours/float64(out.DaysWorked)*100) / 100
	}
	return out, nil
}
