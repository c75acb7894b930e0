package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type recordingObserver struct {
	loads   []string
	count   int
	version uint64
}

func (o *recordingObserver) ObserveLoad(outcome string) { o.loads = append(o.loads, outcome) }
func (o *recordingObserver) SetCollection(count int, version uint64) {
	o.count, o.version = count, version
}

type NegotiationStoreTestSuite struct {
	suite.Suite
	mockRepo *MockNegotiationRepository
	observer *recordingObserver
	store    portssvc.NegotiationStoreSvc
}

func (suite *NegotiationStoreTestSuite) SetupTest() {
	suite.mockRepo = new(MockNegotiationRepository)
	suite.observer = &recordingObserver{}
	suite.store = services.NewNegotiationStore(suite.mockRepo, services.WithStoreObserver(suite.observer))
}

func (suite *NegotiationStoreTestSuite) loaded(items ...domain.Negotiation) {
	suite.mockRepo.On("FetchAll", mock.Anything).Return(items, nil).Once()
	suite.Require().NoError(suite.store.Load(context.Background()))
}

func (suite *NegotiationStoreTestSuite) TestInitialState() {
	status := suite.store.Status()
	suite.Equal(domain.LoadUninitialized, status.State)
	suite.Zero(status.Count)
	suite.Zero(suite.store.Snapshot().Len())
}

func (suite *NegotiationStoreTestSuite) TestLoad_Success() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	b := negotiation("b", "Beta", domain.StatusProposal, "2024-01-02", 200)
	suite.loaded(b, a)

	status := suite.store.Status()
	suite.Equal(domain.LoadReady, status.State)
	suite.Empty(status.Message)
	suite.Equal(2, status.Count)
	suite.Equal([]domain.Negotiation{b, a}, suite.store.Snapshot().Items())
	suite.Equal([]string{services.LoadOutcomeOK}, suite.observer.loads)
	suite.Equal(2, suite.observer.count)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NegotiationStoreTestSuite) TestLoad_FailureKeepsExistingData() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	suite.loaded(a)
	before := suite.store.Snapshot()

	suite.mockRepo.On("FetchAll", mock.Anything).
		Return(nil, &apperrors.RemoteUnavailableError{Op: "fetch all", Err: errors.New("dial tcp: refused")}).Once()

	err := suite.store.Load(context.Background())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRemoteUnavailable)
	status := suite.store.Status()
	suite.Equal(domain.LoadFailed, status.State)
	suite.Equal("remote store unavailable", status.Message)
	suite.Same(before, suite.store.Snapshot())
	suite.Equal(1, status.Count)
}

func (suite *NegotiationStoreTestSuite) TestLoad_RecoversAfterFailure() {
	suite.mockRepo.On("FetchAll", mock.Anything).
		Return(nil, &apperrors.RemoteError{Op: "fetch all", Message: "permission denied"}).Once()
	suite.Require().Error(suite.store.Load(context.Background()))
	suite.Equal("permission denied", suite.store.Status().Message)

	suite.loaded(negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100))
	status := suite.store.Status()
	suite.Equal(domain.LoadReady, status.State)
	suite.Empty(status.Message)
}

func (suite *NegotiationStoreTestSuite) TestLoad_SupersededResponseIsDiscarded() {
	old := negotiation("old", "Acme", domain.StatusLead, "2024-01-01", 1)
	fresh := negotiation("fresh", "Beta", domain.StatusLead, "2024-01-02", 2)

	started := make(chan struct{})
	release := make(chan struct{})
	suite.mockRepo.On("FetchAll", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.Negotiation{old}, nil).Once()
	suite.mockRepo.On("FetchAll", mock.Anything).Return([]domain.Negotiation{fresh}, nil).Once()

	firstDone := make(chan error, 1)
	go func() { firstDone <- suite.store.Load(context.Background()) }()
	<-started
	suite.Equal(domain.LoadLoading, suite.store.Status().State)

	suite.Require().NoError(suite.store.Load(context.Background()))
	close(release)
	suite.Require().NoError(<-firstDone)

	suite.Equal([]domain.Negotiation{fresh}, suite.store.Snapshot().Items())
	suite.Equal(domain.LoadReady, suite.store.Status().State)
	suite.Equal([]string{services.LoadOutcomeOK, services.LoadOutcomeStale}, suite.observer.loads)
}

func (suite *NegotiationStoreTestSuite) TestLoad_KeepsSnapshotWhileReloading() {
	first := negotiation("first", "Acme", domain.StatusLead, "2024-01-01", 1)
	started := make(chan struct{})
	release := make(chan struct{})
	suite.mockRepo.On("FetchAll", mock.Anything).Return([]domain.Negotiation{first}, nil).Once()
	suite.mockRepo.On("FetchAll", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return([]domain.Negotiation{}, nil).Once()

	// A reload in flight keeps serving the previous snapshot.
	suite.Require().NoError(suite.store.Load(context.Background()))
	done := make(chan error, 1)
	go func() { done <- suite.store.Load(context.Background()) }()
	<-started
	suite.Equal(domain.LoadLoading, suite.store.Status().State)
	suite.Equal(1, suite.store.Snapshot().Len())

	close(release)
	suite.Require().NoError(<-done)
	suite.Equal(domain.LoadReady, suite.store.Status().State)
	suite.Zero(suite.store.Snapshot().Len())
}

func (suite *NegotiationStoreTestSuite) TestSave_CreatePrepends() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	suite.loaded(a)
	versionBefore := suite.store.Snapshot().Version()

	draft := domain.Draft{Title: "New", Client: "Globex", Date: "2024-02-01", Amount: 5, Status: domain.StatusProposal}
	created := domain.Negotiation{ID: "n", Title: "New", Client: "Globex", Date: "2024-02-01", Amount: 5,
		Status: domain.StatusProposal, CreatedAt: 10, UpdatedAt: 10}
	suite.mockRepo.On("Create", mock.Anything, draft).Return(&created, nil).Once()

	saved, err := suite.store.Save(context.Background(), draft)

	suite.Require().NoError(err)
	suite.Equal(created, *saved)
	snap := suite.store.Snapshot()
	suite.Equal([]domain.Negotiation{created, a}, snap.Items())
	suite.Greater(snap.Version(), versionBefore)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *NegotiationStoreTestSuite) TestSave_UpdateReplacesInPlace() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	b := negotiation("b", "Beta", domain.StatusLead, "2024-01-02", 200)
	suite.loaded(b, a)

	draft := a.ToDraft()
	draft.Status = domain.StatusClosedWon
	updated := a
	updated.Status = domain.StatusClosedWon
	updated.UpdatedAt = 99
	suite.mockRepo.On("Update", mock.Anything, "a", draft.ToPatch()).Return(&updated, nil).Once()

	saved, err := suite.store.Save(context.Background(), draft)

	suite.Require().NoError(err)
	suite.Equal(updated, *saved)
	suite.Equal([]domain.Negotiation{b, updated}, suite.store.Snapshot().Items())
	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *NegotiationStoreTestSuite) TestSave_FailureLeavesCollectionUnchanged() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	suite.loaded(a)
	before := suite.store.Snapshot()

	remoteErr := &apperrors.RemoteError{Op: "create negotiation", Code: "23514", Message: "check violation"}
	suite.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.Draft")).Return(nil, remoteErr).Once()

	saved, err := suite.store.Save(context.Background(), domain.Draft{Title: "x", Client: "y", Date: "2024-01-01"})

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.ErrorAs(err, new(*apperrors.RemoteError))
	suite.Same(before, suite.store.Snapshot())
}

func (suite *NegotiationStoreTestSuite) TestSave_NilRecordIsAnError() {
	suite.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.Draft")).Return(nil, nil).Once()

	saved, err := suite.store.Save(context.Background(), domain.Draft{Title: "x", Client: "y", Date: "2024-01-01"})

	suite.Require().Error(err)
	suite.Nil(saved)
	suite.Zero(suite.store.Snapshot().Len())
}

func (suite *NegotiationStoreTestSuite) TestSave_CallerCancellationDoesNotDropResponse() {
	ctx, cancel := context.WithCancel(context.Background())
	created := negotiation("n", "Acme", domain.StatusLead, "2024-01-01", 1)
	suite.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.Draft")).
		Run(func(args mock.Arguments) {
			cancel()
			suite.NoError(args.Get(0).(context.Context).Err())
		}).
		Return(&created, nil).Once()

	_, err := suite.store.Save(ctx, domain.Draft{Title: "x", Client: "y", Date: "2024-01-01"})

	suite.Require().NoError(err)
	suite.Equal(1, suite.store.Snapshot().Len())
}

func (suite *NegotiationStoreTestSuite) TestDelete() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	b := negotiation("b", "Beta", domain.StatusLead, "2024-01-02", 200)
	suite.loaded(b, a)
	suite.mockRepo.On("Delete", mock.Anything, "a").Return(nil).Once()

	suite.Require().NoError(suite.store.Delete(context.Background(), "a"))

	suite.Equal([]domain.Negotiation{b}, suite.store.Snapshot().Items())
	_, ok := suite.store.Get("a")
	suite.False(ok)
}

func (suite *NegotiationStoreTestSuite) TestDelete_NotFound() {
	a := negotiation("a", "Acme", domain.StatusLead, "2024-01-01", 100)
	suite.loaded(a)
	suite.mockRepo.On("Delete", mock.Anything, "missing").Return(apperrors.NewNotFound("delete negotiation", "missing")).Once()

	err := suite.store.Delete(context.Background(), "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Equal(1, suite.store.Snapshot().Len())
}

func TestNegotiationStoreTestSuite(t *testing.T) {
	suite.Run(t, new(NegotiationStoreTestSuite))
}
