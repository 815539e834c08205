package api

import (
	"context"
	"errors"

	"github.com/cartable-app/cartable/internal/ai"
	"github.com/cartable-app/cartable/internal/services"
)

type chatStoreAdapter struct {
	store Store
}

func newChatStoreAdapter(store Store) services.ChatStore {
	return &chatStoreAdapter{store: store}
}

func (a *chatStoreAdapter) GetProfile(userID string) (*services.Profile, error) {
	return profileFromStore(a.store.GetProfile(userID)), nil
}

func (a *chatStoreAdapter) ListRecentConversations(userID string, n int) ([]services.ConversationTurn, error) {
	rows := a.store.ListRecentConversations(userID, n)
	out := make([]services.ConversationTurn, 0, len(rows))
	for _, c := range rows {
		out = append(out, services.ConversationTurn{
			ID:        c.ID,
			UserID:    c.UserID,
			Message:   c.Message,
			Response:  c.Response,
			ModelUsed: c.ModelUsed,
			CreatedAt: c.CreatedAt,
		})
	}
	return out, nil
}

func (a *chatStoreAdapter) AddConversation(t *services.ConversationTurn) error {
	if t == nil {
		return services.NewInvalidError("conversation required")
	}
	a.store.AddConversation(&Conversation{
		ID:        t.ID,
		UserID:    t.UserID,
		Message:   t.Message,
		Response:  t.Response,
		ModelUsed: t.ModelUsed,
		CreatedAt: t.CreatedAt,
	})
	return nil
}

var _ services.ChatStore = (*chatStoreAdapter)(nil)

// generatorAdapter maps the ai package's error kinds onto the service error
// taxonomy so handlers can translate them to HTTP codes uniformly.
type generatorAdapter struct {
	client *ai.Client
}

func newGeneratorAdapter(client *ai.Client) services.Generator {
	if client == nil {
		return nil
	}
	return &generatorAdapter{client: client}
}

func (g *generatorAdapter) Generate(ctx context.Context, prompt, model string) (string, error) {
	text, err := g.client.Generate(ctx, prompt, model)
	if err == nil {
		return text, nil
	}
	if errors.Is(err, ai.ErrNotConfigured) {
		return "", services.NewConfigError("generation client not configured")
	}
	var genErr *ai.GenerationError
	if errors.As(err, &genErr) {
		return "", services.NewBadGatewayError(genErr.Error())
	}
	return "", services.NewBadGatewayError(err.Error())
}

var _ services.Generator = (*generatorAdapter)(nil)
