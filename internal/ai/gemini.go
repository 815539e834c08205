// Package ai wraps the hosted Gemini generation endpoint. The upstream
// transport streams; callers of this package only ever see the complete
// response text or an error.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// DefaultModel is the model the tutor uses unless the caller overrides it.
const DefaultModel = "gemini-2.5-flash"

// ErrNotConfigured is returned when no API key is available. This is a
// deployment defect, not a runtime condition to retry.
var ErrNotConfigured = errors.New("GEMINI_API_KEY is not configured")

type FailureReason string

const (
	// ReasonUpstream covers transport failures, cancellation and timeouts.
	ReasonUpstream FailureReason = "upstream"
	// ReasonMalformed covers responses that carried no usable text.
	ReasonMalformed FailureReason = "malformed"
)

// GenerationError reports a failed generation call with enough detail for the
// caller to distinguish "service unavailable" from "malformed response".
type GenerationError struct {
	Reason FailureReason
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed (%s)", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Client is a thin wrapper around the Gemini SDK.
type Client struct {
	client *genai.Client
}

// NewClient builds a generation client. An empty API key fails immediately
// with ErrNotConfigured rather than at the first call.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNotConfigured
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: c}, nil
}

// Generate sends prompt to model and blocks until the complete response text
// is available. The upstream stream is fully drained here; fragments are
// concatenated in arrival order and never exposed to callers. A cancelled or
// failed call returns a GenerationError, never a partial string.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}

	var b strings.Builder
	for chunk, err := range c.client.Models.GenerateContentStream(ctx, model, genai.Text(prompt), nil) {
		if err != nil {
			return "", &GenerationError{Reason: ReasonUpstream, Err: err}
		}
		for _, cand := range chunk.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				b.WriteString(part.Text)
			}
		}
	}

	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", &GenerationError{Reason: ReasonMalformed, Err: errors.New("no text in response")}
	}
	return text, nil
}
