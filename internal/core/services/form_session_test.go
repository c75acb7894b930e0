package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/ai"
	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/core/services"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func ptr[T any](v T) *T { return &v }

type FormServiceTestSuite struct {
	suite.Suite
	mockRepo      *MockNegotiationRepository
	mockAssistant *MockAssistant
	store         portssvc.NegotiationStoreSvc
	registry      *services.FormSessionRegistry
	forms         portssvc.FormSvc
	now           time.Time
}

func (suite *FormServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockNegotiationRepository)
	suite.mockAssistant = new(MockAssistant)
	suite.store = services.NewNegotiationStore(suite.mockRepo)
	suite.registry = services.NewFormSessionRegistry(time.Hour)
	suite.now = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	suite.forms = services.NewFormService(suite.store, suite.registry,
		services.WithAssistant(ai.Some(suite.mockAssistant)),
		services.WithNegotiationReader(suite.mockRepo),
		services.WithFormClock(func() time.Time { return suite.now }),
	)
}

func (suite *FormServiceTestSuite) openFilled() domain.FormState {
	state, err := suite.forms.Open(context.Background(), "")
	suite.Require().NoError(err)
	state, err = suite.forms.Update(state.FormID, dto.FormFieldsRequest{
		Title:       ptr("Website renewal"),
		Client:      ptr("Acme"),
		Amount:      ptr(int64(1200)),
		Description: ptr("talked about pricing"),
	})
	suite.Require().NoError(err)
	return state
}

func (suite *FormServiceTestSuite) TestOpen_BlankDefaults() {
	state, err := suite.forms.Open(context.Background(), "")

	suite.Require().NoError(err)
	suite.NotEmpty(state.FormID)
	suite.Equal(domain.Draft{Date: "2024-03-10", Status: domain.StatusLead}, state.Fields)
	suite.Empty(state.Errors)
	suite.Equal(domain.AssistIdle, state.Assist)
	suite.Equal(1, suite.registry.Len())
}

func (suite *FormServiceTestSuite) TestOpen_SeedsFromStore() {
	n := negotiation("a", "Acme", domain.StatusProposal, "2024-01-01", 500)
	suite.mockRepo.On("FetchAll", mock.Anything).Return([]domain.Negotiation{n}, nil).Once()
	suite.Require().NoError(suite.store.Load(context.Background()))

	state, err := suite.forms.Open(context.Background(), "a")

	suite.Require().NoError(err)
	suite.Equal(n.ToDraft(), state.Fields)
	suite.mockRepo.AssertNotCalled(suite.T(), "FetchByID", mock.Anything, mock.Anything)
}

func (suite *FormServiceTestSuite) TestOpen_FallsBackToRepository() {
	n := negotiation("b", "Beta", domain.StatusLead, "2024-01-01", 1)
	suite.mockRepo.On("FetchByID", mock.Anything, "b").Return(&n, nil).Once()

	state, err := suite.forms.Open(context.Background(), "b")

	suite.Require().NoError(err)
	suite.Equal("b", state.Fields.ID)
}

func (suite *FormServiceTestSuite) TestOpen_NotFound() {
	suite.mockRepo.On("FetchByID", mock.Anything, "missing").Return(nil, nil).Once()

	_, err := suite.forms.Open(context.Background(), "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Zero(suite.registry.Len())
}

func (suite *FormServiceTestSuite) TestSubmit_ValidationFailsWithoutRemoteCall() {
	state, err := suite.forms.Open(context.Background(), "")
	suite.Require().NoError(err)
	_, err = suite.forms.Update(state.FormID, dto.FormFieldsRequest{
		Title:          ptr("   "),
		Amount:         ptr(int64(-5)),
		Date:           ptr("2024-13-40"),
		NextActionDate: ptr("soon"),
	})
	suite.Require().NoError(err)

	saved, state, err := suite.forms.Submit(context.Background(), state.FormID)

	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(state.Errors, "title")
	suite.Contains(state.Errors, "client")
	suite.Contains(state.Errors, "amount")
	suite.Contains(state.Errors, "date")
	suite.Contains(state.Errors, "nextActionDate")
	suite.NotContains(state.Errors, "status")
	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *FormServiceTestSuite) TestSubmit_InvalidStatus() {
	state := suite.openFilled()
	_, err := suite.forms.Update(state.FormID, dto.FormFieldsRequest{Status: ptr(domain.Status(42))})
	suite.Require().NoError(err)

	_, state, err = suite.forms.Submit(context.Background(), state.FormID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(map[string]string{"status": "is not a known status"}, state.Errors)
}

func (suite *FormServiceTestSuite) TestUpdate_ClearsErrorsOfChangedFields() {
	state, err := suite.forms.Open(context.Background(), "")
	suite.Require().NoError(err)
	_, state, _ = suite.forms.Submit(context.Background(), state.FormID)
	suite.Contains(state.Errors, "title")
	suite.Contains(state.Errors, "client")

	state, err = suite.forms.Update(state.FormID, dto.FormFieldsRequest{Title: ptr("Fixed")})

	suite.Require().NoError(err)
	suite.NotContains(state.Errors, "title")
	suite.Contains(state.Errors, "client")
}

func (suite *FormServiceTestSuite) TestSubmit_CreateThenUpdate() {
	state := suite.openFilled()
	created := domain.Negotiation{ID: "new-id", Title: "Website renewal", Client: "Acme", Date: "2024-03-10",
		Description: "talked about pricing", Amount: 1200, Status: domain.StatusLead, CreatedAt: 1, UpdatedAt: 1}
	suite.mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(d domain.Draft) bool {
		return d.IsNew() && d.Title == "Website renewal" && d.Amount == 1200
	})).Return(&created, nil).Once()

	saved, state, err := suite.forms.Submit(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Equal("new-id", saved.ID)
	suite.Equal("new-id", state.Fields.ID)
	suite.Equal(1, suite.store.Snapshot().Len())

	updated := created
	updated.Amount = 1500
	suite.mockRepo.On("Update", mock.Anything, "new-id", mock.AnythingOfType("domain.NegotiationPatch")).Return(&updated, nil).Once()
	_, err = suite.forms.Update(state.FormID, dto.FormFieldsRequest{Amount: ptr(int64(1500))})
	suite.Require().NoError(err)

	saved, _, err = suite.forms.Submit(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Equal(int64(1500), saved.Amount)
	suite.Equal(1, suite.store.Snapshot().Len())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FormServiceTestSuite) TestSubmit_FailureRetainsFields() {
	state := suite.openFilled()
	suite.mockRepo.On("Create", mock.Anything, mock.AnythingOfType("domain.Draft")).
		Return(nil, &apperrors.RemoteUnavailableError{Op: "create negotiation", Err: assert.AnError}).Once()

	saved, after, err := suite.forms.Submit(context.Background(), state.FormID)

	suite.Nil(saved)
	suite.ErrorIs(err, apperrors.ErrRemoteUnavailable)
	suite.Equal(state.Fields, after.Fields)
	suite.Empty(after.Fields.ID)
	suite.Zero(suite.store.Snapshot().Len())
}

func (suite *FormServiceTestSuite) TestPolish_ReplacesDescription() {
	state := suite.openFilled()
	suite.mockAssistant.On("Polish", mock.Anything, "talked about pricing").Return("価格について協議しました。", nil).Once()

	state, err := suite.forms.Polish(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Equal("価格について協議しました。", state.Fields.Description)
	suite.Equal(domain.AssistIdle, state.Assist)
}

func (suite *FormServiceTestSuite) TestPolish_FailureKeepsDescription() {
	state := suite.openFilled()
	suite.mockAssistant.On("Polish", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	state, err := suite.forms.Polish(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Equal("talked about pricing", state.Fields.Description)
	suite.Equal(domain.AssistIdle, state.Assist)
}

func (suite *FormServiceTestSuite) TestPolish_EmptyDescriptionIsNoop() {
	state, err := suite.forms.Open(context.Background(), "")
	suite.Require().NoError(err)

	state, err = suite.forms.Polish(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Empty(state.Fields.Description)
	suite.mockAssistant.AssertNotCalled(suite.T(), "Polish", mock.Anything, mock.Anything)
}

func (suite *FormServiceTestSuite) TestPolish_BusyWhileInFlight() {
	state := suite.openFilled()
	started := make(chan struct{})
	release := make(chan struct{})
	suite.mockAssistant.On("Polish", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return("polished", nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := suite.forms.Polish(context.Background(), state.FormID)
		done <- err
	}()
	<-started

	current, err := suite.forms.Get(state.FormID)
	suite.Require().NoError(err)
	suite.Equal(domain.AssistPolishing, current.Assist)

	_, err = suite.forms.Suggest(context.Background(), state.FormID)
	suite.ErrorIs(err, apperrors.ErrAssistBusy)

	close(release)
	suite.Require().NoError(<-done)
	current, err = suite.forms.Get(state.FormID)
	suite.Require().NoError(err)
	suite.Equal("polished", current.Fields.Description)
	suite.Equal(domain.AssistIdle, current.Assist)
}

func (suite *FormServiceTestSuite) TestSuggest_FillsDetailAndDefaultsDate() {
	state := suite.openFilled()
	suite.mockAssistant.On("SuggestNextAction", mock.Anything, "talked about pricing", domain.StatusLead).
		Return("見積書を送付する", nil).Once()

	state, err := suite.forms.Suggest(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Equal("見積書を送付する", state.Fields.NextActionDetail)
	suite.Equal("2024-03-17", state.Fields.NextActionDate)
}

func (suite *FormServiceTestSuite) TestSuggest_KeepsExistingDateAndDetailOnEmptyReply() {
	state := suite.openFilled()
	_, err := suite.forms.Update(state.FormID, dto.FormFieldsRequest{
		NextActionDate:   ptr("2024-04-01"),
		NextActionDetail: ptr("call back"),
	})
	suite.Require().NoError(err)
	suite.mockAssistant.On("SuggestNextAction", mock.Anything, mock.Anything, mock.Anything).Return("", nil).Once()

	state, err = suite.forms.Suggest(context.Background(), state.FormID)

	suite.Require().NoError(err)
	suite.Equal("call back", state.Fields.NextActionDetail)
	suite.Equal("2024-04-01", state.Fields.NextActionDate)
}

func (suite *FormServiceTestSuite) TestClose() {
	state, err := suite.forms.Open(context.Background(), "")
	suite.Require().NoError(err)

	suite.forms.Close(state.FormID)

	_, err = suite.forms.Get(state.FormID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Zero(suite.registry.Len())
}

func TestFormServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FormServiceTestSuite))
}

func TestFormService_WithoutAssistant(t *testing.T) {
	repo := new(MockNegotiationRepository)
	forms := services.NewFormService(services.NewNegotiationStore(repo), services.NewFormSessionRegistry(time.Hour))
	state, err := forms.Open(context.Background(), "")
	require.NoError(t, err)
	_, err = forms.Update(state.FormID, dto.FormFieldsRequest{Description: ptr("raw notes")})
	require.NoError(t, err)

	state, err = forms.Polish(context.Background(), state.FormID)
	require.NoError(t, err)
	assert.Equal(t, "raw notes", state.Fields.Description)

	state, err = forms.Suggest(context.Background(), state.FormID)
	require.NoError(t, err)
	assert.Empty(t, state.Fields.NextActionDetail)
	assert.NotEmpty(t, state.Fields.NextActionDate)
}

func TestFormSessionRegistry_Sweep(t *testing.T) {
	registry := services.NewFormSessionRegistry(time.Millisecond)
	var open []int
	registry.OnChange(func(n int) { open = append(open, n) })
	forms := services.NewFormService(services.NewNegotiationStore(new(MockNegotiationRepository)), registry)

	_, err := forms.Open(context.Background(), "")
	require.NoError(t, err)
	_, err = forms.Open(context.Background(), "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	assert.Equal(t, 2, registry.Sweep())
	assert.Zero(t, registry.Len())
	assert.Equal(t, []int{1, 2, 0}, open)
}

func TestValidateDraft(t *testing.T) {
	v := services.NewFormValidator()

	valid := domain.Draft{Title: "t", Client: "c", Date: "2024-01-31", Status: domain.StatusClosedLost}
	assert.Empty(t, services.ValidateDraft(v, valid))

	withAction := valid
	withAction.NextActionDate = "2024-02-29"
	assert.Empty(t, services.ValidateDraft(v, withAction))

	missing := services.ValidateDraft(v, domain.Draft{})
	assert.Equal(t, map[string]string{
		"title":  "is required",
		"client": "is required",
		"date":   "is required",
	}, missing.Fields())
}
