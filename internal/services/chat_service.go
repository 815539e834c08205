package services

import (
	"context"
	"strings"
	"time"
)

// historyLimit is how many prior turns get included as prompt context.
const historyLimit = 5

type ChatStore interface {
	GetProfile(userID string) (*Profile, error)
	ListRecentConversations(userID string, n int) ([]ConversationTurn, error)
	AddConversation(t *ConversationTurn) error
}

// Generator produces the complete response text for an assembled prompt.
// Implementations must return an error rather than partial text.
type Generator interface {
	Generate(ctx context.Context, prompt, model string) (string, error)
}

type ChatService struct {
	store ChatStore
	gen   Generator
	model string
	now   func() time.Time
	idGen func(n int) string
}

type ChatResult struct {
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
}

func NewChatService(store ChatStore, gen Generator, model string) *ChatService {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &ChatService{
		store: store,
		gen:   gen,
		model: model,
		now:   func() time.Time { return time.Now().UTC() },
		idGen: shortID,
	}
}

// Chat runs one tutor turn: read profile and recent history, assemble the
// prompt, generate, persist the new turn, return the full text. Nothing is
// persisted when generation fails.
func (s *ChatService) Chat(ctx context.Context, userID, message string) (*ChatResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, NewInvalidError("message required")
	}
	if s.gen == nil {
		return nil, NewConfigError("generation client not configured")
	}

	pc := PromptContext{UserMessage: message}
	if p, err := s.store.GetProfile(userID); err != nil {
		return nil, err
	} else if p != nil {
		pc.Style = ParseLearningStyle(p.LearningStyle)
		pc.FirstName = p.FirstName
		pc.Filiere = p.Filiere
	}

	history, err := s.store.ListRecentConversations(userID, historyLimit)
	if err != nil {
		return nil, err
	}
	// history arrives oldest first and is rendered as-is
	pc.History = history

	prompt := BuildPrompt(pc)
	response, err := s.gen.Generate(ctx, prompt, s.model)
	if err != nil {
		if _, ok := AsServiceError(err); ok {
			return nil, err
		}
		return nil, NewBadGatewayError(err.Error())
	}

	turn := &ConversationTurn{
		ID:        s.idGen(12),
		UserID:    userID,
		Message:   message,
		Response:  response,
		ModelUsed: s.model,
		CreatedAt: s.now(),
	}
	if err := s.store.AddConversation(turn); err != nil {
		return nil, err
	}
	return &ChatResult{Response: response, ModelUsed: s.model}, nil
}

// History returns the student's last n turns in chronological order.
func (s *ChatService) History(userID string, n int) ([]ConversationTurn, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	if n <= 0 {
		n = 20
	}
	return s.store.ListRecentConversations(userID, n)
}

// Suggestions returns the conversation starters for the student's style.
func (s *ChatService) Suggestions(userID string) ([]string, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, NewUnauthorizedError("unauthorized")
	}
	style := StyleNone
	if p, err := s.store.GetProfile(userID); err != nil {
		return nil, err
	} else if p != nil {
		style = ParseLearningStyle(p.LearningStyle)
	}
	return ProfileForStyle(style).Suggestions, nil
}
