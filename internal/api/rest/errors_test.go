package rest

import (
	"errors"
	"net/http"
	"testing"
)

func TestFromResponseClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{name: "bad request", status: http.StatusBadRequest, body: `{"message":"patientId is required"}`, want: ErrValidation},
		{name: "unprocessable", status: http.StatusUnprocessableEntity, body: `{}`, want: ErrValidation},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"token expired"}`, want: ErrAuth},
		{name: "forbidden", status: http.StatusForbidden, body: `{}`, want: ErrAuthorization},
		{name: "not found", status: http.StatusNotFound, body: `{}`, want: ErrNotFound},
		{name: "conflict", status: http.StatusConflict, body: `{"errorCode":"SCHEDULE_CONFLICT"}`, want: ErrConflict},
		{name: "server", status: http.StatusInternalServerError, body: ``, want: ErrServer},
		{name: "bad gateway", status: http.StatusBadGateway, body: `not json`, want: ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fromResponse(tt.status, []byte(tt.body))
			if !errors.Is(err, tt.want) {
				t.Errorf("fromResponse(%d) classified as %v, want %v", tt.status, err, tt.want)
			}
		})
	}
}

func TestUserMessagePreference(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "prefers message",
			body: `{"message":"slot taken","details":["a","b"]}`,
			want: "slot taken",
		},
		{
			name: "falls back to joined details",
			body: `{"details":["date is required","patient is required"]}`,
			want: "date is required; patient is required",
		},
		{
			name: "generic when empty",
			body: `{}`,
			want: "something went wrong, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fromResponse(http.StatusBadRequest, []byte(tt.body))
			if got := err.UserMessage(); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConflictCodeHelpers(t *testing.T) {
	invalid := fromResponse(http.StatusConflict, []byte(`{"errorCode":"INVALID_TRANSITION"}`))
	if !IsInvalidTransition(invalid) {
		t.Error("expected INVALID_TRANSITION to be detected")
	}
	if IsScheduleConflict(invalid) {
		t.Error("INVALID_TRANSITION must not read as a schedule conflict")
	}

	slot := fromResponse(http.StatusConflict, []byte(`{"errorCode":"SCHEDULE_CONFLICT"}`))
	if !IsScheduleConflict(slot) {
		t.Error("expected SCHEDULE_CONFLICT to be detected")
	}

	// Plain 409 with no code defaults to a slot collision.
	bare := fromResponse(http.StatusConflict, nil)
	if !IsScheduleConflict(bare) {
		t.Error("expected bare 409 to default to schedule conflict")
	}

	if IsInvalidTransition(fromResponse(http.StatusBadRequest, nil)) {
		t.Error("non-conflict statuses must never read as transitions")
	}
}

func TestEnvelopeStatusCodeOverride(t *testing.T) {
	err := fromResponse(http.StatusConflict, []byte(`{"statusCode":409,"message":"x"}`))
	if err.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d, want %d", err.StatusCode, http.StatusConflict)
	}
}

func TestValidationErrorSentinel(t *testing.T) {
	err := NewValidationError("patientId and appointmentDate are required")
	if !errors.Is(err, ErrValidation) {
		t.Error("expected validation sentinel")
	}
	if err.UserMessage() == "" {
		t.Error("expected a user message")
	}
}
