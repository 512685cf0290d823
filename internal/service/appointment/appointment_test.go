package appointment

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
)

type staticCreds string

func (c staticCreds) Credential() string { return string(c) }

func newTestService(t *testing.T, handler http.Handler) (Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := rest.New(srv.URL, 5*time.Second, staticCreds("test-token"))
	return New(api, 30*time.Second, nil), srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListDefaultsAndCaching(t *testing.T) {
	var mu sync.Mutex
	calls := 0

	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()

		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("limit") != "20" {
			t.Errorf("expected default page/limit, got page=%s limit=%s", q.Get("page"), q.Get("limit"))
		}
		if q.Has("date") {
			t.Error("absent date must not be sent; today is server convention")
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data":  []Appointment{{ID: "a1", Status: StatusWaiting}},
			"total": 1,
		})
	}))

	ctx := t.Context()
	first, err := svc.List(ctx, ListRequest{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if first.Total != 1 || len(first.Items) != 1 {
		t.Fatalf("List() = %+v", first)
	}

	// Identical filter tuple within the freshness window is served from
	// cache, not re-issued.
	if _, err := svc.List(ctx, ListRequest{}); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 backend call, got %d", calls)
	}
}

func TestCreateValidationBeforeNetwork(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for invalid input")
	}))

	_, err := svc.Create(t.Context(), CreateRequest{
		AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, rest.ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}

	_, err = svc.Create(t.Context(), CreateRequest{PatientID: "p1"})
	if !errors.Is(err, rest.ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestCreateReturnsServerAssignedOrder(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/appointments" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		var req CreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeJSON(w, http.StatusCreated, Appointment{
			ID:              "a9",
			PatientID:       req.PatientID,
			AppointmentDate: req.AppointmentDate,
			OrderNumber:     14,
			Status:          StatusWaiting,
		})
	}))

	appt, err := svc.Create(t.Context(), CreateRequest{
		PatientID:       "p1",
		AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if appt.OrderNumber != 14 {
		t.Errorf("OrderNumber = %d, want 14", appt.OrderNumber)
	}
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"message":   "cannot move completed to waiting",
			"errorCode": rest.CodeInvalidTransition,
		})
	}))

	_, err := svc.UpdateStatus(t.Context(), "a1", StatusWaiting)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("UpdateStatus() error = %v, want ErrInvalidTransition", err)
	}
	if !errors.Is(err, rest.ErrConflict) {
		t.Errorf("server conflict classification lost: %v", err)
	}
}

func TestUpdateStatusRejectsUnknownStatusLocally(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for an unknown status")
	}))

	_, err := svc.UpdateStatus(t.Context(), "a1", Status("no_show"))
	if !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("UpdateStatus() error = %v, want ErrUnknownStatus", err)
	}
}

// Same-status updates are sent twice and simply succeed twice; the only
// local effect is a cache refresh.
func TestUpdateStatusIdempotent(t *testing.T) {
	var mu sync.Mutex
	statusCalls := 0

	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		statusCalls++
		mu.Unlock()
		writeJSON(w, http.StatusOK, Appointment{
			ID:              "a1",
			Status:          StatusConfirmed,
			AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		})
	}))

	for i := 0; i < 2; i++ {
		appt, err := svc.UpdateStatus(t.Context(), "a1", StatusConfirmed)
		if err != nil {
			t.Fatalf("UpdateStatus() #%d error = %v", i+1, err)
		}
		if appt.Status != StatusConfirmed {
			t.Errorf("Status = %s, want confirmed", appt.Status)
		}
	}
	mu.Lock()
	defer mu.Unlock()
	if statusCalls != 2 {
		t.Errorf("expected 2 status calls, got %d", statusCalls)
	}
}

func TestMutationInvalidatesCachedList(t *testing.T) {
	var mu sync.Mutex
	listCalls := 0
	current := StatusWaiting

	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		listCalls++
		st := current
		mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{
			"data": []Appointment{{
				ID:              "a1",
				Status:          st,
				AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
			}},
			"total": 1,
		})
	})
	mux.HandleFunc("PATCH /appointments/a1/status", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		current = StatusConfirmed
		mu.Unlock()
		writeJSON(w, http.StatusOK, Appointment{
			ID:              "a1",
			Status:          StatusConfirmed,
			AppointmentDate: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		})
	})

	svc, _ := newTestService(t, mux)
	ctx := t.Context()
	req := ListRequest{Date: "2024-05-01"}

	if _, err := svc.List(ctx, req); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "a1", StatusConfirmed); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	after, err := svc.List(ctx, req)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if after.Items[0].Status != StatusConfirmed {
		t.Errorf("list not refreshed after mutation: %s", after.Items[0].Status)
	}
	mu.Lock()
	defer mu.Unlock()
	if listCalls != 2 {
		t.Errorf("expected invalidation to force a refetch, got %d list calls", listCalls)
	}
}

func TestRescheduleConflictLeavesDateUnchanged(t *testing.T) {
	held := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /appointments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"data":  []Appointment{{ID: "42", AppointmentDate: held, Status: StatusConfirmed}},
			"total": 1,
		})
	})
	mux.HandleFunc("PATCH /appointments/42/reschedule", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"message":   "slot already taken",
			"errorCode": rest.CodeScheduleConflict,
		})
	})

	svc, _ := newTestService(t, mux)
	ctx := t.Context()

	_, err := svc.Reschedule(ctx, "42", held.Add(time.Hour))
	if !errors.Is(err, ErrScheduleConflict) {
		t.Fatalf("Reschedule() error = %v, want ErrScheduleConflict", err)
	}

	// The losing call must not have altered what the operator sees.
	res, err := svc.List(ctx, ListRequest{Date: "2024-05-01"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !res.Items[0].AppointmentDate.Equal(held) {
		t.Errorf("displayed date changed by losing reschedule: %v", res.Items[0].AppointmentDate)
	}
}

// Two concurrent reschedule attempts for the same staff window: exactly
// one wins, the other reports a conflict.
func TestRescheduleExclusivity(t *testing.T) {
	var mu sync.Mutex
	slotTaken := false

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /appointments/{id}/reschedule", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AppointmentDate time.Time `json:"appointmentDate"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		mu.Lock()
		won := !slotTaken
		slotTaken = true
		mu.Unlock()

		if !won {
			writeJSON(w, http.StatusConflict, map[string]any{
				"message":   "slot already taken",
				"errorCode": rest.CodeScheduleConflict,
			})
			return
		}
		writeJSON(w, http.StatusOK, Appointment{
			ID:              r.PathValue("id"),
			AppointmentDate: body.AppointmentDate,
			Status:          StatusConfirmed,
		})
	})

	svc, _ := newTestService(t, mux)
	target := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)

	results := make(chan error, 2)
	for _, id := range []string{"42", "43"} {
		go func(id string) {
			_, err := svc.Reschedule(t.Context(), id, target)
			results <- err
		}(id)
	}

	var wins, conflicts int
	for i := 0; i < 2; i++ {
		switch err := <-results; {
		case err == nil:
			wins++
		case errors.Is(err, ErrScheduleConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || conflicts != 1 {
		t.Errorf("wins = %d, conflicts = %d; want exactly one of each", wins, conflicts)
	}
}

func TestAssignDoctorClearsWithNil(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]*string
		_ = json.NewDecoder(r.Body).Decode(&body)
		v, present := body["staffId"]
		if !present || v != nil {
			t.Errorf("expected explicit null staffId, got %v (present=%v)", v, present)
		}
		writeJSON(w, http.StatusOK, Appointment{ID: "a1", StaffID: nil})
	}))

	appt, err := svc.AssignDoctor(t.Context(), "a1", nil)
	if err != nil {
		t.Fatalf("AssignDoctor() error = %v", err)
	}
	if appt.StaffID != nil {
		t.Errorf("StaffID = %v, want nil", appt.StaffID)
	}
}

func TestRemove(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}))

	ok, err := svc.Remove(t.Context(), "a1")
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if !ok {
		t.Error("Remove() = false, want true")
	}
}

func TestTodaySummaryThroughService(t *testing.T) {
	shapes := map[string]string{
		"rows": `[{"status":"waiting","count":3},{"status":"confirmed","count":2}]`,
		"map":  `{"waiting":3,"confirmed":2}`,
	}

	for name, raw := range shapes {
		t.Run(name, func(t *testing.T) {
			svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/appointments/today/summary" {
					t.Errorf("path = %s", r.URL.Path)
				}
				if r.URL.Query().Get("date") != "2024-05-01" {
					t.Errorf("date = %s", r.URL.Query().Get("date"))
				}
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, raw)
			}))

			sum, err := svc.TodaySummary(t.Context(), "2024-05-01")
			if err != nil {
				t.Fatalf("TodaySummary() error = %v", err)
			}
			want := Summary{Waiting: 3, Confirmed: 2}
			if *sum != want {
				t.Errorf("summary = %+v, want %+v", *sum, want)
			}
		})
	}
}
