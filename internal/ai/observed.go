package ai

import (
	"context"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
)

// Recorder receives one observation per assistant call.
type Recorder interface {
	ObserveAssist(op string, err error)
}

type observedAssistant struct {
	next     Assistant
	recorder Recorder
}

// Observe reports the outcome of every call made through next.
func Observe(next Assistant, recorder Recorder) Assistant {
	return &observedAssistant{next: next, recorder: recorder}
}

func (o *observedAssistant) Polish(ctx context.Context, text string) (string, error) {
	out, err := o.next.Polish(ctx, text)
	o.recorder.ObserveAssist("polish", err)
	return out, err
}

func (o *observedAssistant) SuggestNextAction(ctx context.Context, description string, status domain.Status) (string, error) {
	out, err := o.next.SuggestNextAction(ctx, description, status)
	o.recorder.ObserveAssist("suggest", err)
	return out, err
}
