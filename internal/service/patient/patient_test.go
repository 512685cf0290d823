package patient

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
)

type staticCreds struct{}

func (staticCreds) Credential() string { return "tok" }

func newTestService(t *testing.T, handler http.Handler) Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(rest.New(srv.URL, 5*time.Second, staticCreds{}))
}

func TestCreateReturnsCompleteRecord(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/patients" {
			t.Errorf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		var req CreateRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(Patient{ID: "pt-1", Name: req.Name, Phone: req.Phone})
	}))

	p, err := svc.Create(t.Context(), CreateRequest{Name: "Linh Nguyen", Phone: "0901"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID != "pt-1" || p.Name != "Linh Nguyen" {
		t.Errorf("Create() = %+v", p)
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for an empty name")
	}))

	if _, err := svc.Create(t.Context(), CreateRequest{}); !errors.Is(err, rest.ErrValidation) {
		t.Errorf("Create() error = %v, want ErrValidation", err)
	}
}

func TestCreateRejectsRecordWithoutID(t *testing.T) {
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Patient{Name: "no id"})
	}))

	if _, err := svc.Create(t.Context(), CreateRequest{Name: "x"}); !errors.Is(err, rest.ErrServer) {
		t.Errorf("Create() error = %v, want ErrServer", err)
	}
}

func TestSearchClampsLimit(t *testing.T) {
	var gotLimit string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []Patient{{ID: "pt-1", Name: "A"}}})
	}))

	out, err := svc.Search(t.Context(), "a", 500)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotLimit != "10" {
		t.Errorf("limit = %q, want clamped default 10", gotLimit)
	}
	if len(out) != 1 {
		t.Errorf("results = %d, want 1", len(out))
	}
}
