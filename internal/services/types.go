package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LearningStyle is the closed set of learning profiles the survey can assign.
// The labels are the French product labels and are what gets persisted on the
// profile, so they must stay stable.
type LearningStyle string

const (
	StyleVisual     LearningStyle = "Visuel Structuré"
	StyleAuditory   LearningStyle = "Auditif Conversationnel"
	StylePragmatic  LearningStyle = "Pragmatique Rapide"
	StyleAnalytical LearningStyle = "Analytique Approfondi"

	// StyleNone is the sentinel for a profile that has not taken the survey.
	StyleNone LearningStyle = ""
)

// ParseLearningStyle maps a stored label back to a LearningStyle. Unknown or
// empty labels resolve to StyleNone so stale data degrades to the neutral
// prompt rather than a wrong style.
func ParseLearningStyle(s string) LearningStyle {
	switch LearningStyle(strings.TrimSpace(s)) {
	case StyleVisual:
		return StyleVisual
	case StyleAuditory:
		return StyleAuditory
	case StylePragmatic:
		return StylePragmatic
	case StyleAnalytical:
		return StyleAnalytical
	default:
		return StyleNone
	}
}

type User struct {
	ID        string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

type Preferences struct {
	CompletedTest bool      `json:"completed_test"`
	TestDate      time.Time `json:"test_date"`
}

type Profile struct {
	UserID                   string       `json:"user_id"`
	FirstName                string       `json:"first_name"`
	BirthDate                string       `json:"birth_date,omitempty"`
	Filiere                  string       `json:"filiere"`
	ParentEmail              string       `json:"parent_email,omitempty"`
	ParentalConsentValidated bool         `json:"parental_consent_validated"`
	LearningStyle            string       `json:"learning_style,omitempty"`
	Preferences              *Preferences `json:"preferences,omitempty"`
	CreatedAt                time.Time    `json:"created_at"`
	UpdatedAt                time.Time    `json:"updated_at"`
}

// ConversationTurn is one stored chat exchange. Immutable once written.
type ConversationTurn struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	ModelUsed string    `json:"model_used"`
	CreatedAt time.Time `json:"created_at"`
}

// PromptContext carries everything the assembler needs for one chat turn.
// It is built fresh per call and never persisted.
type PromptContext struct {
	Style       LearningStyle
	FirstName   string
	Filiere     string
	History     []ConversationTurn
	UserMessage string
}

func shortID(n int) string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:n]
}
