package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/negotiation_tracker/internal/ai"
	"github.com/SscSPs/negotiation_tracker/internal/apperrors"
	"github.com/SscSPs/negotiation_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/negotiation_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/negotiation_tracker/internal/core/ports/services"
	"github.com/SscSPs/negotiation_tracker/internal/dto"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// suggestedActionLead is how far ahead a suggested next action is scheduled
// when the form has no next action date yet.
const suggestedActionLead = 7 * 24 * time.Hour

// formInput is the validated view of a draft. Text is trimmed first so
// whitespace-only values count as empty.
type formInput struct {
	Title          string        `json:"title" validate:"required"`
	Client         string        `json:"client" validate:"required"`
	Date           string        `json:"date" validate:"required,datetime=2006-01-02"`
	Amount         int64         `json:"amount" validate:"min=0"`
	Status         domain.Status `json:"status" validate:"negotiation_status"`
	NextActionDate string        `json:"nextActionDate" validate:"omitempty,datetime=2006-01-02"`
}

// NewFormValidator builds the validator used for form submission.
func NewFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("negotiation_status", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(domain.Status)
		return ok && s.Valid()
	})
	return v
}

// ValidateDraft checks the submission rules and returns one message per failing field.
func ValidateDraft(v *validator.Validate, d domain.Draft) apperrors.ValidationErrors {
	in := formInput{
		Title:          strings.TrimSpace(d.Title),
		Client:         strings.TrimSpace(d.Client),
		Date:           strings.TrimSpace(d.Date),
		Amount:         d.Amount,
		Status:         d.Status,
		NextActionDate: strings.TrimSpace(d.NextActionDate),
	}
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ValidationErrors{{Field: "form", Message: err.Error()}}
	}
	out := make(apperrors.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, apperrors.ValidationError{Field: fe.Field(), Message: validationMessage(fe)})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "min":
		return "must be 0 or greater"
	case "negotiation_status":
		return "is not a known status"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

// formSession is the per-edit state. mu guards every field.
type formSession struct {
	mu         sync.Mutex
	id         string
	fields     domain.Draft
	errors     map[string]string
	assist     domain.AssistState
	submitting bool
	touched    time.Time
}

func (f *formSession) stateLocked() domain.FormState {
	fields := f.fields
	if f.fields.AttachmentURL != nil {
		v := *f.fields.AttachmentURL
		fields.AttachmentURL = &v
	}
	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return domain.FormState{FormID: f.id, Fields: fields, Errors: errs, Assist: f.assist}
}

// FormSessionRegistry holds open form sessions and expires idle ones.
type FormSessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*formSession
	ttl      time.Duration
	now      func() time.Time
	onChange func(open int)
}

// NewFormSessionRegistry creates a registry whose sessions expire after ttl without use.
func NewFormSessionRegistry(ttl time.Duration) *FormSessionRegistry {
	return &FormSessionRegistry{
		sessions: make(map[string]*formSession),
		ttl:      ttl,
		now:      time.Now,
		onChange: func(int) {},
	}
}

// OnChange registers a callback receiving the number of open sessions after each change.
func (r *FormSessionRegistry) OnChange(fn func(open int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onChange = fn
}

func (r *FormSessionRegistry) add(fields domain.Draft) *formSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := &formSession{
		id:      uuid.NewString(),
		fields:  fields,
		errors:  map[string]string{},
		assist:  domain.AssistIdle,
		touched: r.now(),
	}
	r.sessions[s.id] = s
	r.onChange(len(r.sessions))
	return s
}

func (r *FormSessionRegistry) get(id string) (*formSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("form %s: %w", id, apperrors.ErrNotFound)
	}
	s.mu.Lock()
	s.touched = r.now()
	s.mu.Unlock()
	return s, nil
}

func (r *FormSessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	r.onChange(len(r.sessions))
}

// Len returns the number of open sessions.
func (r *FormSessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the ttl and returns how many were dropped.
// Sessions with an AI call or submit in flight are kept.
func (r *FormSessionRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := r.now().Add(-r.ttl)
	dropped := 0
	for id, s := range r.sessions {
		s.mu.Lock()
		idle := s.touched.Before(cutoff) && s.assist == domain.AssistIdle && !s.submitting
		s.mu.Unlock()
		if idle {
			delete(r.sessions, id)
			dropped++
		}
	}
	if dropped > 0 {
		r.onChange(len(r.sessions))
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *FormSessionRegistry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

type formService struct {
	BaseService
	store     portssvc.NegotiationStoreSvc
	reader    portsrepo.NegotiationReader
	assistant ai.Optional
	registry  *FormSessionRegistry
	validate  *validator.Validate
	now       func() time.Time
}

// FormOption is a functional option for configuring the form service
type FormOption func(*formService)

// WithAssistant enables the AI helper for Polish and Suggest.
func WithAssistant(a ai.Optional) FormOption {
	return func(s *formService) {
		s.assistant = a
	}
}

// WithNegotiationReader lets Open seed a form from the remote store when the
// record is not in the loaded collection.
func WithNegotiationReader(reader portsrepo.NegotiationReader) FormOption {
	return func(s *formService) {
		s.reader = reader
	}
}

// WithAssistTimeout bounds each AI helper call and the Open fallback fetch.
func WithAssistTimeout(d time.Duration) FormOption {
	return func(s *formService) {
		s.RemoteTimeout = d
	}
}

// WithFormClock overrides the time source used for default dates.
func WithFormClock(now func() time.Time) FormOption {
	return func(s *formService) {
		s.now = now
	}
}

// NewFormService creates the form service. Without WithAssistant the AI helper is absent.
func NewFormService(store portssvc.NegotiationStoreSvc, registry *FormSessionRegistry, options ...FormOption) portssvc.FormSvc {
	s := &formService{
		store:     store,
		assistant: ai.None(),
		registry:  registry,
		validate:  NewFormValidator(),
		now:       time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *formService) today() string {
	return s.now().Format(domain.DateLayout)
}

// Open starts a session seeded from negotiationID, or a blank form when it is empty.
func (s *formService) Open(ctx context.Context, negotiationID string) (domain.FormState, error) {
	fields := domain.Draft{Date: s.today(), Status: domain.StatusLead}

	if negotiationID != "" {
		n, ok := s.store.Get(negotiationID)
		if !ok && s.reader != nil {
			remoteCtx, cancel := s.RemoteContext(ctx)
			found, err := s.reader.FetchByID(remoteCtx, negotiationID)
			cancel()
			if err != nil {
				s.LogError(ctx, err, "Failed to fetch negotiation for form", slog.String("negotiation_id", negotiationID))
				return domain.FormState{}, fmt.Errorf("open form: %w", err)
			}
			if found != nil {
				n, ok = *found, true
			}
		}
		if !ok {
			return domain.FormState{}, fmt.Errorf("negotiation %s: %w", negotiationID, apperrors.ErrNotFound)
		}
		fields = n.ToDraft()
	}

	sess := s.registry.add(fields)
	s.LogInfo(ctx, "Form opened", slog.String("form_id", sess.id), slog.String("negotiation_id", negotiationID))

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.stateLocked(), nil
}

func (s *formService) Get(formID string) (domain.FormState, error) {
	sess, err := s.registry.get(formID)
	if err != nil {
		return domain.FormState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.stateLocked(), nil
}

// Update overwrites the provided fields and clears their previous validation errors.
func (s *formService) Update(formID string, req dto.FormFieldsRequest) (domain.FormState, error) {
	sess, err := s.registry.get(formID)
	if err != nil {
		return domain.FormState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	f := &sess.fields
	set := func(name string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			delete(sess.errors, name)
		}
	}
	set("title", &f.Title, req.Title)
	set("client", &f.Client, req.Client)
	set("date", &f.Date, req.Date)
	set("description", &f.Description, req.Description)
	set("nextActionDate", &f.NextActionDate, req.NextActionDate)
	set("nextActionDetail", &f.NextActionDetail, req.NextActionDetail)
	if req.Amount != nil {
		f.Amount = *req.Amount
		delete(sess.errors, "amount")
	}
	if req.Status != nil {
		f.Status = *req.Status
		delete(sess.errors, "status")
	}
	if req.AttachmentURL != nil {
		if *req.AttachmentURL == "" {
			f.AttachmentURL = nil
		} else {
			v := *req.AttachmentURL
			f.AttachmentURL = &v
		}
	}
	return sess.stateLocked(), nil
}

// beginAssist moves the session into an AI state. It returns the current
// description, or ok=false when there is nothing to work on.
func (s *formService) beginAssist(sess *formSession, state domain.AssistState) (description string, status domain.Status, ok bool, err error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.assist != domain.AssistIdle {
		return "", 0, false, apperrors.ErrAssistBusy
	}
	if strings.TrimSpace(sess.fields.Description) == "" {
		return "", 0, false, nil
	}
	sess.assist = state
	return sess.fields.Description, sess.fields.Status, true, nil
}

// Polish rewrites the description. An empty description is left alone.
func (s *formService) Polish(ctx context.Context, formID string) (domain.FormState, error) {
	sess, err := s.registry.get(formID)
	if err != nil {
		return domain.FormState{}, err
	}
	text, _, ok, err := s.beginAssist(sess, domain.AssistPolishing)
	if err != nil {
		return domain.FormState{}, err
	}
	if !ok {
		return s.Get(formID)
	}

	remoteCtx, cancel := s.RemoteContext(ctx)
	polished := s.assistant.Polish(remoteCtx, text)
	cancel()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.fields.Description = polished
	sess.assist = domain.AssistIdle
	return sess.stateLocked(), nil
}

// Suggest fills the next action detail and, when empty, schedules it a week ahead.
// An empty suggestion keeps the existing detail.
func (s *formService) Suggest(ctx context.Context, formID string) (domain.FormState, error) {
	sess, err := s.registry.get(formID)
	if err != nil {
		return domain.FormState{}, err
	}
	text, status, ok, err := s.beginAssist(sess, domain.AssistSuggesting)
	if err != nil {
		return domain.FormState{}, err
	}
	if !ok {
		return s.Get(formID)
	}

	remoteCtx, cancel := s.RemoteContext(ctx)
	suggestion := s.assistant.Suggest(remoteCtx, text, status)
	cancel()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if suggestion != "" {
		sess.fields.NextActionDetail = suggestion
		delete(sess.errors, "nextActionDetail")
	}
	if sess.fields.NextActionDate == "" {
		sess.fields.NextActionDate = s.now().Add(suggestedActionLead).Format(domain.DateLayout)
		delete(sess.errors, "nextActionDate")
	}
	sess.assist = domain.AssistIdle
	return sess.stateLocked(), nil
}

// Submit validates the form and saves it through the store. Validation failures
// make no remote call. After a successful create the session edits the new record.
func (s *formService) Submit(ctx context.Context, formID string) (*domain.Negotiation, domain.FormState, error) {
	sess, err := s.registry.get(formID)
	if err != nil {
		return nil, domain.FormState{}, err
	}

	sess.mu.Lock()
	if sess.submitting {
		state := sess.stateLocked()
		sess.mu.Unlock()
		return nil, state, apperrors.ErrSubmitInProgress
	}
	if verrs := ValidateDraft(s.validate, sess.fields); len(verrs) > 0 {
		sess.errors = verrs.Fields()
		state := sess.stateLocked()
		sess.mu.Unlock()
		s.LogDebug(ctx, "Form validation failed", slog.String("form_id", formID), slog.Int("errors", len(verrs)))
		return nil, state, verrs
	}
	sess.errors = map[string]string{}
	sess.submitting = true
	draft := sess.stateLocked().Fields
	sess.mu.Unlock()

	saved, err := s.store.Save(ctx, draft)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.submitting = false
	if err != nil {
		return nil, sess.stateLocked(), err
	}
	sess.fields = saved.ToDraft()
	return saved, sess.stateLocked(), nil
}

func (s *formService) Close(formID string) {
	s.registry.remove(formID)
}
