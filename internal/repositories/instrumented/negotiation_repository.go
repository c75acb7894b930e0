// Package instrumented decorates a repository with Prometheus call metrics.
package instrumented

import (
	"context"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
)

// Recorder receives one observation per repository call.
type Recorder interface {
	ObserveRepositoryCall(op string, started time.Time, err error)
}

type negotiationRepository struct {
	next     portsrepo.NegotiationRepositoryFacade
	recorder Recorder
}

var _ portsrepo.NegotiationRepositoryFacade = (*negotiationRepository)(nil)

// NewNegotiationRepository wraps next so every call is timed and counted.
func NewNegotiationRepository(next portsrepo.NegotiationRepositoryFacade, recorder Recorder) portsrepo.NegotiationRepositoryFacade {
	return &negotiationRepository{next: next, recorder: recorder}
}

// Wrap instruments the repositories of a provider.
func Wrap(p portsrepo.RepositoryProvider, recorder Recorder) portsrepo.RepositoryProvider {
	p.NegotiationRepo = NewNegotiationRepository(p.NegotiationRepo, recorder)
	return p
}

// track starts a timer; the returned func must be deferred with a pointer to the named error.
func (r *negotiationRepository) track(op string) func(*error) {
	started := time.Now()
	return func(err *error) {
		r.recorder.ObserveRepositoryCall(op, started, *err)
	}
}

func (r *negotiationRepository) FetchAll(ctx context.Context) (out []domain.Negotiation, err error) {
	defer r.track("fetch_all")(&err)
	return r.next.FetchAll(ctx)
}

func (r *negotiationRepository) FetchByID(ctx context.Context, id string) (out *domain.Negotiation, err error) {
	defer r.track("fetch_by_id")(&err)
	return r.next.FetchByID(ctx, id)
}

func (r *negotiationRepository) FindByStatus(ctx context.Context, status domain.Status) (out []domain.Negotiation, err error) {
	defer r.track("find_by_status")(&err)
	return r.next.FindByStatus(ctx, status)
}

func (r *negotiationRepository) FindByClient(ctx context.Context, client string) (out []domain.Negotiation, err error) {
	defer r.track("find_by_client")(&err)
	return r.next.FindByClient(ctx, client)
}

func (r *negotiationRepository) SearchByKeyword(ctx context.Context, keyword string) (out []domain.Negotiation, err error) {
	defer r.track("search_by_keyword")(&err)
	return r.next.SearchByKeyword(ctx, keyword)
}

func (r *negotiationRepository) Create(ctx context.Context, draft domain.Draft) (out *domain.Negotiation, err error) {
	defer r.track("create")(&err)
	return r.next.Create(ctx, draft)
}

func (r *negotiationRepository) Update(ctx context.Context, id string, patch domain.NegotiationPatch) (out *domain.Negotiation, err error) {
	defer r.track("update")(&err)
	return r.next.Update(ctx, id, patch)
}

func (r *negotiationRepository) Delete(ctx context.Context, id string) (err error) {
	defer r.track("delete")(&err)
	return r.next.Delete(ctx, id)
}

func (r *negotiationRepository) MonthlyRevenueForecast(ctx context.Context) (out int64, err error) {
	defer r.track("monthly_revenue_forecast")(&err)
	return r.next.MonthlyRevenueForecast(ctx)
}

func (r *negotiationRepository) MonthlyWonCount(ctx context.Context, now time.Time) (out int, err error) {
	defer r.track("monthly_won_count")(&err)
	return r.next.MonthlyWonCount(ctx, now)
}

func (r *negotiationRepository) CountByStatus(ctx context.Context) (out map[domain.Status]int, err error) {
	defer r.track("count_by_status")(&err)
	return r.next.CountByStatus(ctx)
}
