// Package appointment is the typed client for the backend's appointment
// lifecycle: list/create, status changes, reschedules, doctor
// assignment, removal and the per-day summary. The backend is the sole
// authority on transition legality and slot conflicts; this package
// surfaces its verdicts as classified errors and keeps cached reads
// converging to server truth.
package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
)

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, req ListRequest) (*ListResult, error)
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	// UpdateStatus requests a transition; the server may refuse it with
	// ErrInvalidTransition. Never guarded client-side.
	UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error)
	// Reschedule is pessimistic: the new date is reflected only after
	// the server commits it. A losing race returns ErrScheduleConflict.
	Reschedule(ctx context.Context, id string, newDate time.Time) (*Appointment, error)
	// AssignDoctor sets or, with nil, clears the staff assignment.
	AssignDoctor(ctx context.Context, id string, staffID *string) (*Appointment, error)
	Remove(ctx context.Context, id string) (bool, error)
	// TodaySummary returns zero-filled per-status counts for one day.
	TodaySummary(ctx context.Context, date string) (*Summary, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type service struct {
	api    *rest.Client
	cache  *readCache
	logger *slog.Logger
}

func New(api *rest.Client, freshness time.Duration, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		api:    api,
		cache:  newReadCache(freshness),
		logger: logger,
	}
}

func (s *service) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	q := url.Values{}
	if req.Date != "" {
		q.Set("date", req.Date)
	}
	if req.Status != nil {
		q.Set("status", string(*req.Status))
	}
	if req.Query != "" {
		q.Set("q", req.Query)
	}
	if req.PatientID != "" {
		q.Set("patientId", req.PatientID)
	}
	if req.StaffID != "" {
		q.Set("staffId", req.StaffID)
	}
	q.Set("page", strconv.Itoa(req.Page))
	q.Set("limit", strconv.Itoa(req.Limit))

	key := "list|" + q.Encode()
	v, err := s.cache.getOrFetch(key, req.Date, func() (any, error) {
		var out ListResult
		if err := s.api.Get(ctx, "/appointments", q, &out); err != nil {
			return nil, fmt.Errorf("list appointments: %w", err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ListResult), nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	if req.PatientID == "" || req.AppointmentDate.IsZero() {
		return nil, rest.NewValidationError("patientId and appointmentDate are required")
	}

	var appt Appointment
	if err := s.api.Post(ctx, "/appointments", req, &appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	s.cache.invalidateDate(dateKey(appt.AppointmentDate))
	s.logger.Info("appointment created",
		"id", appt.ID, "patient_id", appt.PatientID, "order_number", appt.OrderNumber)
	return &appt, nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) (*Appointment, error) {
	if _, ok := KnownStatuses[status]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	body := map[string]string{"status": string(status)}
	var appt Appointment
	if err := s.api.Patch(ctx, "/appointments/"+id+"/status", body, &appt); err != nil {
		if rest.IsInvalidTransition(err) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
		}
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.cache.invalidateDate(dateKey(appt.AppointmentDate))
	s.logger.Info("appointment status changed", "id", id, "status", status)
	return &appt, nil
}

func (s *service) Reschedule(ctx context.Context, id string, newDate time.Time) (*Appointment, error) {
	if newDate.IsZero() {
		return nil, rest.NewValidationError("appointmentDate is required")
	}

	body := map[string]time.Time{"appointmentDate": newDate}
	var appt Appointment
	if err := s.api.Patch(ctx, "/appointments/"+id+"/reschedule", body, &appt); err != nil {
		if rest.IsScheduleConflict(err) {
			// The slot went to a concurrent booking. Nothing local
			// changes; the operator resubmits with another time.
			return nil, fmt.Errorf("%w: %w", ErrScheduleConflict, err)
		}
		return nil, fmt.Errorf("reschedule appointment: %w", err)
	}

	// The old date is not known here, so drop all cached reads rather
	// than leave a stale row on the source day.
	s.cache.flush()
	s.logger.Info("appointment rescheduled", "id", id, "new_date", appt.AppointmentDate)
	return &appt, nil
}

func (s *service) AssignDoctor(ctx context.Context, id string, staffID *string) (*Appointment, error) {
	// staffID nil clears the assignment; marshals as JSON null.
	body := map[string]*string{"staffId": staffID}
	var appt Appointment
	if err := s.api.Patch(ctx, "/appointments/"+id+"/assign-doctor", body, &appt); err != nil {
		return nil, fmt.Errorf("assign doctor: %w", err)
	}

	s.cache.invalidateDate(dateKey(appt.AppointmentDate))
	return &appt, nil
}

func (s *service) Remove(ctx context.Context, id string) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	if err := s.api.Delete(ctx, "/appointments/"+id, &out); err != nil {
		return false, fmt.Errorf("delete appointment: %w", err)
	}

	s.cache.flush()
	s.logger.Info("appointment removed", "id", id, "success", out.Success)
	return out.Success, nil
}

func (s *service) TodaySummary(ctx context.Context, date string) (*Summary, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}

	key := "summary|" + date
	v, err := s.cache.getOrFetch(key, date, func() (any, error) {
		var out Summary
		if err := s.api.Get(ctx, "/appointments/today/summary", q, &out); err != nil {
			return nil, fmt.Errorf("today summary: %w", err)
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Summary), nil
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
