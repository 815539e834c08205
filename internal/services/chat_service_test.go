package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubChatStore struct {
	profiles map[string]*Profile
	turns    []ConversationTurn
}

func newStubChatStore() *stubChatStore {
	return &stubChatStore{profiles: map[string]*Profile{}}
}

func (s *stubChatStore) GetProfile(userID string) (*Profile, error) {
	if p, ok := s.profiles[userID]; ok {
		copy := *p
		return &copy, nil
	}
	return nil, nil
}

func (s *stubChatStore) ListRecentConversations(userID string, n int) ([]ConversationTurn, error) {
	out := []ConversationTurn{}
	for _, turn := range s.turns {
		if turn.UserID == userID {
			out = append(out, turn)
		}
	}
	if len(out) > n {
		out = out[len(out)-n:]
	}
	return out, nil
}

func (s *stubChatStore) AddConversation(t *ConversationTurn) error {
	s.turns = append(s.turns, *t)
	return nil
}

type stubGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt, model string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.response, nil
}

func TestChatPersistsTurnAndUsesProfile(t *testing.T) {
	store := newStubChatStore()
	store.profiles["u1"] = &Profile{
		UserID:        "u1",
		FirstName:     "Léa",
		Filiere:       "Terminale STMG",
		LearningStyle: string(StylePragmatic),
	}
	gen := &stubGenerator{response: "Voici un exercice."}
	svc := NewChatService(store, gen, "")
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC) }
	svc.idGen = func(n int) string { return "turn00000001" }

	res, err := svc.Chat(context.Background(), "u1", "  Donne-moi un exercice  ")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if res.Response != "Voici un exercice." {
		t.Fatalf("response = %q", res.Response)
	}
	if res.ModelUsed != "gemini-2.5-flash" {
		t.Fatalf("model = %q, want the default", res.ModelUsed)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected one generation call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, string(StylePragmatic)) {
		t.Fatalf("prompt should carry the stored style:\n%s", prompt)
	}
	if !strings.HasSuffix(prompt, "User: Donne-moi un exercice") {
		t.Fatalf("message must be trimmed before prompting")
	}

	if len(store.turns) != 1 {
		t.Fatalf("expected one persisted turn, got %d", len(store.turns))
	}
	turn := store.turns[0]
	if turn.Message != "Donne-moi un exercice" || turn.Response != "Voici un exercice." {
		t.Fatalf("persisted turn = %+v", turn)
	}
	if turn.ModelUsed != "gemini-2.5-flash" || turn.ID != "turn00000001" {
		t.Fatalf("persisted turn = %+v", turn)
	}
}

func TestChatIncludesOnlyRecentHistory(t *testing.T) {
	store := newStubChatStore()
	store.profiles["u1"] = &Profile{UserID: "u1"}
	for i := 0; i < 8; i++ {
		store.turns = append(store.turns, ConversationTurn{
			UserID:   "u1",
			Message:  "q" + string(rune('0'+i)),
			Response: "r" + string(rune('0'+i)),
		})
	}
	gen := &stubGenerator{response: "ok"}
	svc := NewChatService(store, gen, "")

	if _, err := svc.Chat(context.Background(), "u1", "next"); err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	prompt := gen.prompts[0]
	if strings.Contains(prompt, "q2\n") || !strings.Contains(prompt, "User: q3") {
		t.Fatalf("prompt should carry the last %d turns only:\n%s", historyLimit, prompt)
	}
	if strings.Index(prompt, "User: q3") > strings.Index(prompt, "User: q7") {
		t.Fatalf("history must stay oldest first")
	}
}

func TestChatGenerationFailurePersistsNothing(t *testing.T) {
	store := newStubChatStore()
	store.profiles["u1"] = &Profile{UserID: "u1"}
	gen := &stubGenerator{err: errors.New("upstream timeout")}
	svc := NewChatService(store, gen, "")

	_, err := svc.Chat(context.Background(), "u1", "question")
	if err == nil {
		t.Fatalf("expected error")
	}
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorBadGateway {
		t.Fatalf("expected bad gateway error, got %v", err)
	}
	if len(store.turns) != 0 {
		t.Fatalf("failed generations must not be persisted")
	}

	gen.err = NewConfigError("generation client not configured")
	_, err = svc.Chat(context.Background(), "u1", "question")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorConfig {
		t.Fatalf("service errors must pass through unchanged, got %v", err)
	}
}

func TestChatValidation(t *testing.T) {
	svc := NewChatService(newStubChatStore(), &stubGenerator{response: "ok"}, "")

	if _, err := svc.Chat(context.Background(), "", "hello"); err == nil {
		t.Fatalf("expected unauthorized error")
	}
	_, err := svc.Chat(context.Background(), "u1", "   ")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorInvalid {
		t.Fatalf("expected invalid error, got %v", err)
	}

	svc = NewChatService(newStubChatStore(), nil, "")
	_, err = svc.Chat(context.Background(), "u1", "hello")
	if se, ok := AsServiceError(err); !ok || se.Code != ErrorConfig {
		t.Fatalf("expected config error without a generator, got %v", err)
	}
}

func TestChatHistoryAndSuggestions(t *testing.T) {
	store := newStubChatStore()
	store.profiles["u1"] = &Profile{UserID: "u1", LearningStyle: string(StyleAuditory)}
	store.turns = []ConversationTurn{
		{UserID: "u1", Message: "a", Response: "b"},
		{UserID: "u2", Message: "x", Response: "y"},
	}
	svc := NewChatService(store, &stubGenerator{response: "ok"}, "")

	turns, err := svc.History("u1", 0)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(turns) != 1 || turns[0].Message != "a" {
		t.Fatalf("history = %+v", turns)
	}

	sugg, err := svc.Suggestions("u1")
	if err != nil {
		t.Fatalf("Suggestions returned error: %v", err)
	}
	want := ProfileForStyle(StyleAuditory).Suggestions
	if len(sugg) != len(want) || sugg[0] != want[0] {
		t.Fatalf("suggestions = %v, want %v", sugg, want)
	}

	// No profile at all still yields the generic starters.
	sugg, err = svc.Suggestions("ghost")
	if err != nil {
		t.Fatalf("Suggestions returned error: %v", err)
	}
	if len(sugg) != len(genericSuggestions) {
		t.Fatalf("expected generic suggestions, got %v", sugg)
	}
}
