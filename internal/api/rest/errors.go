package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Failure taxonomy for every backend call. Callers classify with
// errors.Is against the sentinels; the full payload travels in *Error.
var (
	ErrValidation    = errors.New("invalid input")
	ErrAuth          = errors.New("credential invalid or expired")
	ErrAuthorization = errors.New("insufficient permission")
	ErrConflict      = errors.New("conflicting state")
	ErrNotFound      = errors.New("not found")
	ErrServer        = errors.New("server error")
	ErrNetwork       = errors.New("network failure")
)

// Backend error codes carried inside a 409 body.
const (
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeScheduleConflict  = "SCHEDULE_CONFLICT"
)

// envelope is the backend's error body:
// { message?, details?: string[], statusCode?, errorCode? }
type envelope struct {
	Message    string   `json:"message"`
	Details    []string `json:"details"`
	StatusCode int      `json:"statusCode"`
	ErrorCode  string   `json:"errorCode"`
}

// Error is a classified backend failure.
type Error struct {
	kind       error
	Message    string
	Details    []string
	StatusCode int
	ErrorCode  string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.kind.Error(), e.Message)
	}
	return e.kind.Error()
}

func (e *Error) Unwrap() error { return e.kind }

// UserMessage is the text shown to the operator: message, else joined
// details, else a generic string.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Details) > 0 {
		return strings.Join(e.Details, "; ")
	}
	return "something went wrong, please try again"
}

func newError(kind error, msg string) *Error {
	return &Error{kind: kind, Message: msg}
}

// NewValidationError reports malformed input caught before the network
// boundary. Never retried.
func NewValidationError(msg string) *Error {
	return &Error{kind: ErrValidation, Message: msg, StatusCode: http.StatusBadRequest}
}

func newNetworkError(err error) *Error {
	return &Error{kind: ErrNetwork, Message: err.Error()}
}

// fromResponse maps an HTTP failure to the taxonomy. body may be empty
// or non-JSON; classification never fails.
func fromResponse(status int, body []byte) *Error {
	var env envelope
	_ = json.Unmarshal(body, &env)

	e := &Error{
		kind:       classify(status),
		Message:    env.Message,
		Details:    env.Details,
		StatusCode: status,
		ErrorCode:  env.ErrorCode,
	}
	if env.StatusCode != 0 {
		e.StatusCode = env.StatusCode
	}
	return e
}

func classify(status int) error {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrValidation
	case status == http.StatusUnauthorized:
		return ErrAuth
	case status == http.StatusForbidden:
		return ErrAuthorization
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusConflict:
		return ErrConflict
	case status >= 500:
		return ErrServer
	default:
		return ErrServer
	}
}

// IsInvalidTransition reports a 409 the server raised because the
// requested status change is illegal in its lifecycle graph.
func IsInvalidTransition(err error) bool {
	var e *Error
	return errors.As(err, &e) && errors.Is(err, ErrConflict) && e.ErrorCode == CodeInvalidTransition
}

// IsScheduleConflict reports a 409 caused by an overlapping booking for
// the same staff member and window.
func IsScheduleConflict(err error) bool {
	var e *Error
	if !errors.As(err, &e) || !errors.Is(err, ErrConflict) {
		return false
	}
	// Conflict on a reschedule defaults to a slot collision when the
	// backend omits the code.
	return e.ErrorCode == CodeScheduleConflict || e.ErrorCode == ""
}
