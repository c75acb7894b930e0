package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
)

// Load outcomes reported to the StoreObserver.
const (
	LoadOutcomeOK     = "ok"
	LoadOutcomeFailed = "failed"
	LoadOutcomeStale  = "stale"
)

// StoreObserver is notified of store activity, typically to export metrics.
type StoreObserver interface {
	ObserveLoad(outcome string)
	SetCollection(count int, version uint64)
}

type noopStoreObserver struct{}

func (noopStoreObserver) ObserveLoad(string)          {}
func (noopStoreObserver) SetCollection(int, uint64) {}

// negotiationStore owns the canonical collection. All state lives behind mu;
// the collection itself is immutable and replaced with a single pointer swap.
type negotiationStore struct {
	BaseService
	repo     portsrepo.NegotiationRepositoryFacade
	observer StoreObserver

	mu         sync.Mutex
	collection *domain.Collection
	state      domain.LoadState
	message    string
	version    uint64
	issued     uint64 // newest load ticket handed out
	applied    uint64 // newest load ticket whose response replaced the collection
}

// StoreOption is a functional option for configuring the negotiation store
type StoreOption func(*negotiationStore)

// WithStoreObserver reports loads and collection changes to observer.
func WithStoreObserver(observer StoreObserver) StoreOption {
	return func(s *negotiationStore) {
		s.observer = observer
	}
}

// WithRemoteTimeout bounds every repository call made by the store.
func WithRemoteTimeout(d time.Duration) StoreOption {
	return func(s *negotiationStore) {
		s.RemoteTimeout = d
	}
}

// NewNegotiationStore creates an empty, uninitialized store.
func NewNegotiationStore(repo portsrepo.NegotiationRepositoryFacade, options ...StoreOption) portssvc.NegotiationStoreSvc {
	s := &negotiationStore{
		repo:       repo,
		observer:   noopStoreObserver{},
		collection: domain.NewCollection(nil, 0),
		state:      domain.LoadUninitialized,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *negotiationStore) Snapshot() *domain.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collection
}

func (s *negotiationStore) Status() domain.StoreStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.StoreStatus{
		State:   s.state,
		Message: s.message,
		Count:   s.collection.Len(),
		Version: s.collection.Version(),
	}
}

func (s *negotiationStore) Get(id string) (domain.Negotiation, bool) {
	return s.Snapshot().Get(id)
}

// Load replaces the collection with the remote contents.
//
// Overlapping loads are resolved newest-issued-wins: a response is applied only
// if no response from a later load has been applied already, and the store
// leaves Loading only when the most recently issued load completes. A failed
// load never clears data that is already held.
func (s *negotiationStore) Load(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	ticket := s.issued
	s.state = domain.LoadLoading
	s.message = ""
	s.mu.Unlock()

	remoteCtx, cancel := s.RemoteContext(ctx)
	defer cancel()
	items, err := s.repo.FetchAll(remoteCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	newest := ticket == s.issued

	if err != nil {
		s.observer.ObserveLoad(LoadOutcomeFailed)
		if newest {
			s.state = domain.LoadFailed
			s.message = failureMessage(err)
		}
		s.LogError(ctx, err, "Failed to load negotiations",
			slog.Uint64("ticket", ticket), slog.Bool("newest", newest), slog.Int("kept", s.collection.Len()))
		return fmt.Errorf("load negotiations: %w", err)
	}

	if ticket < s.applied {
		s.observer.ObserveLoad(LoadOutcomeStale)
		s.LogDebug(ctx, "Discarding superseded load response",
			slog.Uint64("ticket", ticket), slog.Uint64("applied", s.applied))
		return nil
	}

	s.version++
	s.collection = domain.NewCollection(items, s.version)
	s.applied = ticket
	if newest {
		s.state = domain.LoadReady
		s.message = ""
	}
	s.observer.ObserveLoad(LoadOutcomeOK)
	s.observer.SetCollection(s.collection.Len(), s.version)
	s.LogInfo(ctx, "Negotiations loaded",
		slog.Int("count", s.collection.Len()), slog.Uint64("version", s.version))
	return nil
}

// Save creates the draft when it has no ID and updates that record otherwise.
// The collection only ever receives the record returned by the remote store;
// on failure it is left untouched.
func (s *negotiationStore) Save(ctx context.Context, draft domain.Draft) (*domain.Negotiation, error) {
	remoteCtx, cancel := s.RemoteContext(ctx)
	defer cancel()

	var (
		saved *domain.Negotiation
		err   error
	)
	if draft.IsNew() {
		saved, err = s.repo.Create(remoteCtx, draft)
	} else {
		saved, err = s.repo.Update(remoteCtx, draft.ID, draft.ToPatch())
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to save negotiation", slog.String("negotiation_id", draft.ID))
		return nil, fmt.Errorf("save negotiation: %w", err)
	}
	if saved == nil {
		err := &apperrors.RemoteError{Op: "save negotiation", Message: "remote store returned no record"}
		s.LogError(ctx, err, "Failed to save negotiation", slog.String("negotiation_id", draft.ID))
		return nil, err
	}

	s.mu.Lock()
	s.version++
	if draft.IsNew() {
		s.collection = s.collection.Prepend(*saved, s.version)
	} else {
		s.collection = s.collection.Replace(*saved, s.version)
	}
	s.observer.SetCollection(s.collection.Len(), s.version)
	s.mu.Unlock()

	s.LogInfo(ctx, "Negotiation saved",
		slog.String("negotiation_id", saved.ID), slog.Bool("created", draft.IsNew()))
	out := *saved
	return &out, nil
}

// Delete removes the record remotely, then from the collection.
func (s *negotiationStore) Delete(ctx context.Context, id string) error {
	remoteCtx, cancel := s.RemoteContext(ctx)
	defer cancel()

	if err := s.repo.Delete(remoteCtx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete negotiation", slog.String("negotiation_id", id))
		}
		return fmt.Errorf("delete negotiation: %w", err)
	}

	s.mu.Lock()
	s.version++
	s.collection = s.collection.Remove(id, s.version)
	s.observer.SetCollection(s.collection.Len(), s.version)
	s.mu.Unlock()

	s.LogInfo(ctx, "Negotiation deleted", slog.String("negotiation_id", id))
	return nil
}

func failureMessage(err error) string {
	var remoteErr *apperrors.RemoteError
	switch {
	case errors.Is(err, apperrors.ErrRemoteUnavailable):
		return "remote store unavailable"
	case errors.As(err, &remoteErr) && remoteErr.Message != "":
		return remoteErr.Message
	default:
		return err.Error()
	}
}
