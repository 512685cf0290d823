// Package auth drives the session lifecycle: credential exchange,
// the follow-up capability fetch, and teardown. It owns the only
// writer paths into the session store.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v5"

	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/session"
)

type Service interface {
	// Login exchanges credentials, stores the session, then populates
	// capabilities with a dedicated fetch (the scope is not embeddable
	// in the login response).
	Login(ctx context.Context, email, password string) error
	// FetchPermissions refreshes the capability set for the current
	// credential.
	FetchPermissions(ctx context.Context) error
	// Logout tells the backend best-effort, then clears locally.
	Logout(ctx context.Context) error
}

type authService struct {
	api      *rest.Client
	store    session.Store
	maxTries int
	logger   *slog.Logger
}

func New(api *rest.Client, store session.Store, permissionFetchMaxTries int, logger *slog.Logger) Service {
	if permissionFetchMaxTries < 1 {
		permissionFetchMaxTries = 3
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		api:      api,
		store:    store,
		maxTries: permissionFetchMaxTries,
		logger:   logger,
	}
}

type loginResponse struct {
	AccessToken string `json:"accessToken"`
	User        struct {
		Email     string `json:"email"`
		RoleLabel string `json:"role,omitempty"`
		StaffID   string `json:"staffId,omitempty"`
	} `json:"user"`
}

func (s *authService) Login(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return rest.NewValidationError("email and password are required")
	}

	body := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := s.api.Post(ctx, "/auth/login", body, &resp); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login: %w", rest.ErrServer)
	}

	s.store.SetSession(resp.AccessToken, session.Identity{
		Email:     resp.User.Email,
		RoleLabel: resp.User.RoleLabel,
		StaffID:   resp.User.StaffID,
	})
	s.logger.Info("session established", "email", resp.User.Email)

	if err := s.FetchPermissions(ctx); err != nil {
		// A session without capabilities gates every control off; the
		// operator can retry the fetch without logging in again.
		return fmt.Errorf("fetch permissions after login: %w", err)
	}
	return nil
}

// FetchPermissions is retried with exponential backoff on transient
// failures. Scheduling reads and writes are never retried; this is not
// one of them.
func (s *authService) FetchPermissions(ctx context.Context) error {
	fetch := func() ([]string, error) {
		var out struct {
			Permissions []string `json:"permissions"`
		}
		if err := s.api.Get(ctx, "/auth/my-permissions", nil, &out); err != nil {
			if errors.Is(err, rest.ErrAuth) || errors.Is(err, rest.ErrAuthorization) {
				return nil, backoff.Permanent(err)
			}
			return nil, err
		}
		return out.Permissions, nil
	}

	perms, err := backoff.Retry(ctx, fetch,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(uint(s.maxTries)),
	)
	if err != nil {
		return err
	}

	s.store.SetCapabilities(perms)
	s.logger.Debug("capabilities refreshed", "count", len(perms))
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.api.Post(ctx, "/auth/logout", nil, nil); err != nil {
		// Local teardown proceeds regardless; the credential may
		// already be dead server-side.
		s.logger.Warn("backend logout failed", "error", err)
	}
	s.store.Clear()
	return nil
}
