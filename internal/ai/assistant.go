// Package ai is the boundary to the generative text helper used by the edit form.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"google.golang.org/genai"
)

// ErrEmptyReply is returned when the model produced no text.
var ErrEmptyReply = errors.New("ai: empty reply")

// Assistant transforms negotiation text. Implementations may fail; callers that
// need graceful degradation go through Optional.
type Assistant interface {
	// Polish rewrites notes to be concise and action oriented, in the same language.
	Polish(ctx context.Context, text string) (string, error)

	// SuggestNextAction proposes a short next step for a negotiation in the given status.
	SuggestNextAction(ctx context.Context, description string, status domain.Status) (string, error)
}

const polishPrompt = `You are a professional sales assistant.
Rewrite the following sales negotiation notes to be more concise, professional, and action-oriented.
Write the result in the same language as the input notes.
Keep important details like budget, key person reaction, and bottlenecks.

IMPORTANT: Output ONLY the rewritten text. Do not include any conversational filler, introductions, or explanations.

Original Notes:
%s`

const suggestPrompt = `Based on the following sales negotiation description and current status, suggest a specific, short "Next Action" (under 30 characters).
Write the action in the same language as the input description.
IMPORTANT: Return ONLY the suggested action text.

Status: %s
Description: %s`

// GeminiAssistant calls the Gemini generateContent endpoint.
type GeminiAssistant struct {
	client *genai.Client
	model  string
}

var _ Assistant = (*GeminiAssistant)(nil)

// GeminiOption adjusts the client configuration.
type GeminiOption func(*genai.ClientConfig)

// WithBaseURL points the client at a different API host.
func WithBaseURL(baseURL string) GeminiOption {
	return func(c *genai.ClientConfig) {
		c.HTTPOptions.BaseURL = baseURL
	}
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) GeminiOption {
	return func(c *genai.ClientConfig) {
		c.HTTPClient = hc
	}
}

// NewGeminiAssistant creates a client for model authenticated with apiKey.
func NewGeminiAssistant(ctx context.Context, apiKey, model string, opts ...GeminiOption) (*GeminiAssistant, error) {
	if apiKey == "" {
		return nil, errors.New("ai: gemini api key is empty")
	}
	if model == "" {
		return nil, errors.New("ai: gemini model is empty")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ai: create gemini client: %w", err)
	}
	return &GeminiAssistant{client: client, model: model}, nil
}

func (g *GeminiAssistant) Polish(ctx context.Context, text string) (string, error) {
	return g.generate(ctx, fmt.Sprintf(polishPrompt, text))
}

func (g *GeminiAssistant) SuggestNextAction(ctx context.Context, description string, status domain.Status) (string, error) {
	return g.generate(ctx, fmt.Sprintf(suggestPrompt, status.Label(), description))
}

func (g *GeminiAssistant) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("ai: generate content: %w", err)
	}

	// Only the first candidate with content is used.
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		break
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyReply
	}
	return text, nil
}
