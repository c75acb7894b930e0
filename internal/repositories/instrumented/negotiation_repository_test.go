package instrumented_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/SscSPs/negotiation_tracker/internal/platform/metrics"
	"github.com/SscSPs/negotiation_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/negotiation_tracker/internal/repositories/instrumented"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func TestRepositoryCallsAreCounted(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))

	m := metrics.New()
	repo := instrumented.NewNegotiationRepository(sqlite.NewNegotiationRepository(db), m)
	ctx := context.Background()

	_, err = repo.Create(ctx, domain.Draft{Title: "t", Client: "c", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = repo.FetchAll(ctx)
	require.NoError(t, err)
	err = repo.Delete(ctx, uuid.NewString())
	require.Error(t, err)

	expected := `
# HELP negotiation_tracker_repository_calls_total Remote store calls by operation and outcome.
# TYPE negotiation_tracker_repository_calls_total counter
negotiation_tracker_repository_calls_total{op="create",outcome="ok"} 1
negotiation_tracker_repository_calls_total{op="delete",outcome="not_found"} 1
negotiation_tracker_repository_calls_total{op="fetch_all",outcome="ok"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry, strings.NewReader(expected),
		"negotiation_tracker_repository_calls_total"))
}
