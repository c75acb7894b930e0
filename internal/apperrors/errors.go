package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrRemoteUnavailable indicates the remote store could not be reached at all.
var ErrRemoteUnavailable = errors.New("remote store unavailable")

// ErrAssistBusy indicates an AI-assist call is already running for the form.
var ErrAssistBusy = errors.New("ai assist already in progress")

// ErrSubmitInProgress indicates the form is already being saved.
var ErrSubmitInProgress = errors.New("form submit already in progress")

// CodeNotFound is the RemoteError code used when the target row does not exist.
const CodeNotFound = "NotFound"

// RemoteUnavailableError wraps a connectivity failure or timeout.
type RemoteUnavailableError struct {
	Op  string
	Err error
}

func (e *RemoteUnavailableError) Error() string {
	return fmt.Sprintf("%s: remote store unavailable: %v", e.Op, e.Err)
}

func (e *RemoteUnavailableError) Unwrap() error { return e.Err }

func (e *RemoteUnavailableError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

// RemoteError is a failure reported by the remote store (constraint, validation, not found).
type RemoteError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: remote error (%s): %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: remote error: %s", e.Op, e.Message)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Is makes a NotFound remote error match ErrNotFound.
func (e *RemoteError) Is(target error) bool {
	return target == ErrNotFound && e.Code == CodeNotFound
}

// NewNotFound builds the RemoteError returned when id matches no row.
func NewNotFound(op, id string) *RemoteError {
	return &RemoteError{Op: op, Code: CodeNotFound, Message: fmt.Sprintf("negotiation %s not found", id)}
}

// ValidationError is a client-side, pre-network validation failure on one field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every field failure of one validation pass.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// Fields returns the failures keyed by field name.
func (e ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(e))
	for _, v := range e {
		out[v.Field] = v.Message
	}
	return out
}
