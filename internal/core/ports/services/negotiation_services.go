package services

import (
	"context"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
)

// NegotiationStoreReaderSvc exposes read-only access to the canonical collection.
type NegotiationStoreReaderSvc interface {
	// Snapshot returns the current immutable collection.
	Snapshot() *domain.Collection

	// Status returns the load state of the store.
	Status() domain.StoreStatus

	// Get returns one record from the collection.
	Get(id string) (domain.Negotiation, bool)
}

// NegotiationStoreWriterSvc mediates every change to the canonical collection.
type NegotiationStoreWriterSvc interface {
	// Load replaces the collection with the remote contents.
	Load(ctx context.Context) error

	// Save creates (draft without ID) or updates (draft with ID) a record.
	Save(ctx context.Context, draft domain.Draft) (*domain.Negotiation, error)

	// Delete removes a record remotely and then from the collection.
	Delete(ctx context.Context, id string) error
}

// NegotiationStoreSvc combines the store interfaces.
type NegotiationStoreSvc interface {
	NegotiationStoreReaderSvc
	NegotiationStoreWriterSvc
}

// ViewSvc builds the derived views over the store's collection.
type ViewSvc interface {
	// Dashboard returns aggregates, status breakdown and monthly series.
	Dashboard() dto.DashboardResponse

	// List returns the filtered records in display order.
	List(filter domain.ListFilter) []domain.Negotiation

	// Forecast returns the aggregates computed by the remote store.
	Forecast(ctx context.Context) (*domain.RevenueForecast, error)

	// Query runs one of the repository read filters.
	Query(ctx context.Context, q dto.NegotiationQuery) ([]domain.Negotiation, error)
}

// FormSvc manages editing sessions.
type FormSvc interface {
	// Open starts a session, seeded from negotiationID when it is not empty.
	Open(ctx context.Context, negotiationID string) (domain.FormState, error)

	// Get returns the current state of a session.
	Get(formID string) (domain.FormState, error)

	// Update overwrites the editable fields of a session.
	Update(formID string, req dto.FormFieldsRequest) (domain.FormState, error)

	// Polish rewrites the description with the AI helper.
	Polish(ctx context.Context, formID string) (domain.FormState, error)

	// Suggest fills the next action with the AI helper.
	Suggest(ctx context.Context, formID string) (domain.FormState, error)

	// Submit validates and saves the session.
	Submit(ctx context.Context, formID string) (*domain.Negotiation, domain.FormState, error)

	// Close discards a session.
	Close(formID string)
}
