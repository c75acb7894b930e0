package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockNegotiationRepository is a mock type for the NegotiationRepositoryFacade interface
type MockNegotiationRepository struct {
	mock.Mock
}

var _ portsrepo.NegotiationRepositoryFacade = (*MockNegotiationRepository)(nil)

func (m *MockNegotiationRepository) list(args mock.Arguments) ([]domain.Negotiation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Negotiation), args.Error(1)
}

func (m *MockNegotiationRepository) one(args mock.Arguments) (*domain.Negotiation, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Negotiation), args.Error(1)
}

func (m *MockNegotiationRepository) FetchAll(ctx context.Context) ([]domain.Negotiation, error) {
	return m.list(m.Called(ctx))
}

func (m *MockNegotiationRepository) FetchByID(ctx context.Context, id string) (*domain.Negotiation, error) {
	return m.one(m.Called(ctx, id))
}

func (m *MockNegotiationRepository) FindByStatus(ctx context.Context, status domain.Status) ([]domain.Negotiation, error) {
	return m.list(m.Called(ctx, status))
}

func (m *MockNegotiationRepository) FindByClient(ctx context.Context, client string) ([]domain.Negotiation, error) {
	return m.list(m.Called(ctx, client))
}

func (m *MockNegotiationRepository) SearchByKeyword(ctx context.Context, keyword string) ([]domain.Negotiation, error) {
	return m.list(m.Called(ctx, keyword))
}

func (m *MockNegotiationRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Negotiation, error) {
	return m.one(m.Called(ctx, draft))
}

func (m *MockNegotiationRepository) Update(ctx context.Context, id string, patch domain.NegotiationPatch) (*domain.Negotiation, error) {
	return m.one(m.Called(ctx, id, patch))
}

func (m *MockNegotiationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockNegotiationRepository) MonthlyRevenueForecast(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNegotiationRepository) MonthlyWonCount(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

func (m *MockNegotiationRepository) CountByStatus(ctx context.Context) (map[domain.Status]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Status]int), args.Error(1)
}

// MockAssistant is a mock type for the ai.Assistant interface
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Polish(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockAssistant) SuggestNextAction(ctx context.Context, description string, status domain.Status) (string, error) {
	args := m.Called(ctx, description, status)
	return args.String(0), args.Error(1)
}

func negotiation(id, client string, status domain.Status, date string, amount int64) domain.Negotiation {
	return domain.Negotiation{
		ID:     id,
		Title:  "Deal " + id,
		Client: client,
		Date:   date,
		Amount: amount,
		Status: status,
	}
}
