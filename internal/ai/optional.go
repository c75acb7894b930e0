package ai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/SscSPs/negotiation_tracker/internal/middleware"
)

// Optional is an Assistant that may be absent. It never returns an error:
// Polish falls back to the input and Suggest falls back to "".
type Optional struct {
	assistant Assistant
}

// Some wraps an available assistant.
func Some(a Assistant) Optional {
	return Optional{assistant: a}
}

// None is the capability when no assistant is configured.
func None() Optional {
	return Optional{}
}

// Available reports whether calls reach a real assistant.
func (o Optional) Available() bool {
	return o.assistant != nil
}

// Polish returns the rewritten text, or text unchanged when the helper is
// unavailable, fails or replies with nothing.
func (o Optional) Polish(ctx context.Context, text string) string {
	if o.assistant == nil {
		middleware.GetLoggerFromCtx(ctx).Warn("AI assistant not configured, returning input unchanged")
		return text
	}
	out, err := o.assistant.Polish(ctx, text)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("AI polish failed", slog.String("error", err.Error()))
		return text
	}
	if out = strings.TrimSpace(out); out == "" {
		return text
	}
	return out
}

// Suggest returns a next action, or "" when the helper is unavailable or fails.
func (o Optional) Suggest(ctx context.Context, description string, status domain.Status) string {
	if o.assistant == nil {
		middleware.GetLoggerFromCtx(ctx).Warn("AI assistant not configured, no suggestion")
		return ""
	}
	out, err := o.assistant.SuggestNextAction(ctx, description, status)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("AI suggestion failed", slog.String("error", err.Error()))
		return ""
	}
	return strings.TrimSpace(out)
}
