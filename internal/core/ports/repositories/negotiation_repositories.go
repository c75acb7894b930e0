package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
)

// NegotiationReader defines read operations for negotiation data.
// Every list is ordered newest-created-first.
type NegotiationReader interface {
	// FetchAll retrieves every negotiation.
	FetchAll(ctx context.Context) ([]domain.Negotiation, error)

	// FetchByID retrieves one negotiation. It returns nil, nil when no row matches.
	FetchByID(ctx context.Context, id string) (*domain.Negotiation, error)

	// FindByStatus retrieves negotiations with the given status.
	FindByStatus(ctx context.Context, status domain.Status) ([]domain.Negotiation, error)

	// FindByClient retrieves negotiations whose client contains the text, ignoring case.
	FindByClient(ctx context.Context, client string) ([]domain.Negotiation, error)

	// SearchByKeyword retrieves negotiations whose title or description contains the keyword, ignoring case.
	SearchByKeyword(ctx context.Context, keyword string) ([]domain.Negotiation, error)
}

// NegotiationWriter defines write operations for negotiation data.
type NegotiationWriter interface {
	// Create inserts a draft. The store assigns id and timestamps. Not idempotent.
	Create(ctx context.Context, draft domain.Draft) (*domain.Negotiation, error)

	// Update applies a sparse patch and returns the full post-update record.
	Update(ctx context.Context, id string, patch domain.NegotiationPatch) (*domain.Negotiation, error)

	// Delete removes a negotiation.
	Delete(ctx context.Context, id string) error
}

// NegotiationAggregator defines aggregate queries computed by the store.
type NegotiationAggregator interface {
	// MonthlyRevenueForecast sums amounts of Proposal, Negotiation and ClosedWon records.
	MonthlyRevenueForecast(ctx context.Context) (int64, error)

	// MonthlyWonCount counts ClosedWon records dated within now's calendar month.
	MonthlyWonCount(ctx context.Context, now time.Time) (int, error)

	// CountByStatus counts records per status. Statuses without records are absent.
	CountByStatus(ctx context.Context) (map[domain.Status]int, error)
}

// NegotiationRepositoryFacade combines all negotiation repository interfaces.
type NegotiationRepositoryFacade interface {
	NegotiationReader
	NegotiationWriter
	NegotiationAggregator
}
