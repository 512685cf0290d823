package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

type creds struct{ token string }

func (c *creds) Credential() string { return c.token }

func TestDoSetsAuthAndRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, &creds{token: "tok-9"})
	meta := reqctx.NewRequestMeta("test.call")
	ctx := reqctx.WithRequestMeta(context.Background(), meta)

	if err := c.Get(ctx, "/x", nil, nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Get("Authorization") != "Bearer tok-9" {
		t.Errorf("Authorization = %q", got.Get("Authorization"))
	}
	if got.Get("X-Request-Id") != meta.RequestID {
		t.Errorf("X-Request-Id = %q, want the context's %q", got.Get("X-Request-Id"), meta.RequestID)
	}
	if got.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q", got.Get("Accept"))
	}
}

func TestDoOmitsBearerWhenAnonymous(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, &creds{})
	if err := c.Get(t.Context(), "/x", nil, nil); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if auth != "" {
		t.Errorf("Authorization = %q, want empty for anonymous", auth)
	}
}

func TestUnauthorizedHookFiresOncePerResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, 5*time.Second, &creds{token: "dead"},
		WithUnauthorizedHook(func() { fired++ }))

	err := c.Get(t.Context(), "/x", nil, nil)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("Get() error = %v, want ErrAuth", err)
	}
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}

	// A second dead call fires the hook again; once per occurrence,
	// not once per process.
	_ = c.Get(t.Context(), "/x", nil, nil)
	if fired != 2 {
		t.Errorf("hook fired %d times after second 401, want 2", fired)
	}
}

func TestForbiddenHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	fired := 0
	c := New(srv.URL, 5*time.Second, &creds{token: "t"},
		WithForbiddenHook(func() { fired++ }))

	if err := c.Get(t.Context(), "/x", nil, nil); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("Get() error = %v, want ErrAuthorization", err)
	}
	if fired != 1 {
		t.Errorf("hook fired %d times, want 1", fired)
	}
}

func TestTransportFailureClassifiesAsNetwork(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, time.Second, &creds{})
	if err := c.Get(t.Context(), "/x", nil, nil); !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
}
