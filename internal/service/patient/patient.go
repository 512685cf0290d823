// Package patient is the minimal patient client the booking flow needs:
// walk-ins get a record created inline before their appointment, and
// lookups feed the debounced search box.
package patient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
)

type Patient struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type CreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type Service interface {
	// Create must fully succeed before its id is attached to a pending
	// appointment payload; callers never book with a partial identifier.
	Create(ctx context.Context, req CreateRequest) (*Patient, error)
	Search(ctx context.Context, query string, limit int) ([]Patient, error)
}

type patientService struct {
	api *rest.Client
}

func New(api *rest.Client) Service {
	return &patientService{api: api}
}

func (s *patientService) Create(ctx context.Context, req CreateRequest) (*Patient, error) {
	if req.Name == "" {
		return nil, rest.NewValidationError("patient name is required")
	}

	var p Patient
	if err := s.api.Post(ctx, "/patients", req, &p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("create patient: %w", rest.ErrServer)
	}
	return &p, nil
}

func (s *patientService) Search(ctx context.Context, query string, limit int) ([]Patient, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))

	var out struct {
		Data []Patient `json:"data"`
	}
	if err := s.api.Get(ctx, "/patients", q, &out); err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}
	return out.Data, nil
}
