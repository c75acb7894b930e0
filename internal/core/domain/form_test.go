package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistState_JSONRoundTrip(t *testing.T) {
	for _, state := range []domain.AssistState{domain.AssistIdle, domain.AssistPolishing, domain.AssistSuggesting} {
		t.Run(state.String(), func(t *testing.T) {
			in := domain.FormState{FormID: "f1", Assist: state}

			body, err := json.Marshal(in)
			require.NoError(t, err)

			var out domain.FormState
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, state, out.Assist)
			assert.Equal(t, "f1", out.FormID)
		})
	}
}

func TestAssistState_UnmarshalRejectsUnknownName(t *testing.T) {
	var s domain.AssistState
	assert.Error(t, s.UnmarshalText([]byte("THINKING")))
	assert.Error(t, json.Unmarshal([]byte(`{"assist":"idle"}`), &domain.FormState{}))
}

func TestStoredValues_CodesAndLabels(t *testing.T) {
	assert.Equal(t, []string{"CLOSED_WON", "受注"}, domain.StoredValues(domain.StatusClosedWon))
	assert.Empty(t, domain.StoredValues())

	for _, v := range domain.StoredValues(domain.ForecastStatuses()...) {
		s, ok := domain.ParseStatus(v)
		require.True(t, ok, v)
		assert.True(t, s.CountsTowardForecast(), v)
	}
	assert.Equal(t,
		[]domain.Status{domain.StatusProposal, domain.StatusNegotiation, domain.StatusClosedWon},
		domain.ForecastStatuses())
}
