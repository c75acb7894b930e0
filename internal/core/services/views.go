package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
)

// BuildDashboard computes the headline figures over the whole collection.
func BuildDashboard(c *domain.Collection) domain.DashboardStats {
	var stats domain.DashboardStats
	for _, n := range c.Items() {
		stats.TotalCount++
		stats.TotalAmount += n.Amount
		if n.Status.IsActive() {
			stats.ActiveCount++
		}
		if n.Status == domain.StatusClosedWon {
			stats.WonCount++
		}
	}
	return stats
}

// StatusBreakdown counts records per status in pipeline order, omitting zero counts.
func StatusBreakdown(c *domain.Collection) []domain.StatusCount {
	counts := make(map[domain.Status]int)
	for _, n := range c.Items() {
		counts[n.Status]++
	}
	out := make([]domain.StatusCount, 0, len(counts))
	for _, s := range domain.AllStatuses {
		if counts[s] == 0 {
			continue
		}
		out = append(out, domain.StatusCount{Status: s, Label: s.Label(), Count: counts[s]})
	}
	return out
}

// MonthlyAmountSeries sums amounts per YYYY-MM of the record date, ascending by month.
func MonthlyAmountSeries(c *domain.Collection) []domain.MonthlyAmount {
	sums := make(map[string]int64)
	for _, n := range c.Items() {
		sums[domain.MonthKey(n.Date)] += n.Amount
	}
	out := make([]domain.MonthlyAmount, 0, len(sums))
	for month, amount := range sums {
		out = append(out, domain.MonthlyAmount{Month: month, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// FilterList returns the records matching every non-empty predicate, in collection order.
// An unknown status matches nothing.
func FilterList(c *domain.Collection, f domain.ListFilter) []domain.Negotiation {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	client := strings.ToLower(strings.TrimSpace(f.Client))

	var (
		status    domain.Status
		hasStatus bool
	)
	if raw := strings.TrimSpace(f.Status); raw != "" && !strings.EqualFold(raw, domain.StatusFilterAll) {
		var ok bool
		if status, ok = domain.ParseStatus(raw); !ok {
			return []domain.Negotiation{}
		}
		hasStatus = true
	}

	out := make([]domain.Negotiation, 0, c.Len())
	for _, n := range c.Items() {
		if keyword != "" &&
			!strings.Contains(strings.ToLower(n.Title), keyword) &&
			!strings.Contains(strings.ToLower(n.Description), keyword) {
			continue
		}
		if client != "" && !strings.Contains(strings.ToLower(n.Client), client) {
			continue
		}
		if hasStatus && n.Status != status {
			continue
		}
		out = append(out, n)
	}
	return out
}

// ViewCache memoizes the dashboard for one collection snapshot. A lookup with
// any other snapshot recomputes, so a value is never served across a replacement.
type ViewCache struct {
	mu        sync.Mutex
	source    *domain.Collection
	dashboard dto.DashboardResponse
}

// Dashboard returns the dashboard for c, computing it at most once per snapshot.
func (vc *ViewCache) Dashboard(c *domain.Collection) dto.DashboardResponse {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	if vc.source == nil || vc.source != c {
		vc.dashboard = dto.DashboardResponse{
			Stats:     BuildDashboard(c),
			Breakdown: StatusBreakdown(c),
			Monthly:   MonthlyAmountSeries(c),
			Version:   c.Version(),
		}
		vc.source = c
	}
	out := vc.dashboard
	out.Breakdown = append([]domain.StatusCount(nil), vc.dashboard.Breakdown...)
	out.Monthly = append([]domain.MonthlyAmount(nil), vc.dashboard.Monthly...)
	return out
}

type viewService struct {
	BaseService
	store portssvc.NegotiationStoreReaderSvc
	repo  portsrepo.NegotiationRepositoryFacade
	cache *ViewCache
	now   func() time.Time
}

// ViewOption is a functional option for configuring the view service
type ViewOption func(*viewService)

// WithClock overrides the time source used for month boundaries.
func WithClock(now func() time.Time) ViewOption {
	return func(s *viewService) {
		s.now = now
	}
}

// WithViewRemoteTimeout bounds the repository calls of Forecast and Query.
func WithViewRemoteTimeout(d time.Duration) ViewOption {
	return func(s *viewService) {
		s.RemoteTimeout = d
	}
}

// NewViewService creates the view service over the store snapshot and the repository aggregates.
func NewViewService(store portssvc.NegotiationStoreReaderSvc, repo portsrepo.NegotiationRepositoryFacade, options ...ViewOption) portssvc.ViewSvc {
	s := &viewService{
		store: store,
		repo:  repo,
		cache: &ViewCache{},
		now:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *viewService) Dashboard() dto.DashboardResponse {
	return s.cache.Dashboard(s.store.Snapshot())
}

func (s *viewService) List(filter domain.ListFilter) []domain.Negotiation {
	return FilterList(s.store.Snapshot(), filter)
}

// Forecast asks the remote store for its aggregates.
func (s *viewService) Forecast(ctx context.Context) (*domain.RevenueForecast, error) {
	remoteCtx, cancel := s.RemoteContext(ctx)
	defer cancel()

	forecast, err := s.repo.MonthlyRevenueForecast(remoteCtx)
	if err != nil {
		s.LogError(ctx, err, "Failed to calculate revenue forecast")
		return nil, fmt.Errorf("forecast: %w", err)
	}
	won, err := s.repo.MonthlyWonCount(remoteCtx, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to count monthly wins")
		return nil, fmt.Errorf("forecast: %w", err)
	}
	counts, err := s.repo.CountByStatus(remoteCtx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count negotiations by status")
		return nil, fmt.Errorf("forecast: %w", err)
	}
	return &domain.RevenueForecast{Forecast: forecast, WonThisMonth: won, CountByStatus: counts}, nil
}

// Query runs the single repository filter named by q, or FetchAll when q is empty.
func (s *viewService) Query(ctx context.Context, q dto.NegotiationQuery) ([]domain.Negotiation, error) {
	set := 0
	for _, v := range []string{q.Status, q.Client, q.Keyword} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	if set > 1 {
		return nil, apperrors.ValidationErrors{{Field: "query", Message: "specify only one of status, client or keyword"}}
	}

	remoteCtx, cancel := s.RemoteContext(ctx)
	defer cancel()

	var (
		items []domain.Negotiation
		err   error
	)
	switch {
	case strings.TrimSpace(q.Status) != "":
		status, ok := domain.ParseStatus(q.Status)
		if !ok {
			return nil, apperrors.ValidationErrors{{Field: "status", Message: "unknown status"}}
		}
		items, err = s.repo.FindByStatus(remoteCtx, status)
	case strings.TrimSpace(q.Client) != "":
		items, err = s.repo.FindByClient(remoteCtx, strings.TrimSpace(q.Client))
	case strings.TrimSpace(q.Keyword) != "":
		items, err = s.repo.SearchByKeyword(remoteCtx, strings.TrimSpace(q.Keyword))
	default:
		items, err = s.repo.FetchAll(remoteCtx)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to query negotiations",
			slog.String("status", q.Status), slog.String("client", q.Client), slog.String("keyword", q.Keyword))
		return nil, fmt.Errorf("query negotiations: %w", err)
	}
	if items == nil {
		items = []domain.Negotiation{}
	}
	return items, nil
}
