// Package rest is the typed boundary between the console and the clinic
// backend: one HTTP client, bearer-authenticated, with every failure
// classified into the package taxonomy before it reaches a caller.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyenthanhduc0901/clinicdesk/pkg/reqctx"
)

// CredentialSource supplies the current bearer credential; an empty
// string means anonymous. The session store implements it.
type CredentialSource interface {
	Credential() string
}

type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	logger  *slog.Logger

	// onUnauthorized runs once per 401 response, globally, never per
	// call site. Registered at wiring time; must be idempotent.
	onUnauthorized func()
	// onForbidden mirrors it for the no-access redirect.
	onForbidden func()
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func WithForbiddenHook(fn func()) Option {
	return func(c *Client) { c.onForbidden = fn }
}

func New(baseURL string, timeout time.Duration, creds CredentialSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cred := c.creds.Credential(); cred != "" {
		req.Header.Set("Authorization", "Bearer "+cred)
	}

	requestID := reqctx.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("X-Request-Id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend call failed",
			"method", method, "path", path, "request_id", requestID, "error", err)
		return newNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		apiErr := fromResponse(resp.StatusCode, data)

		c.logger.Warn("backend call rejected",
			"method", method, "path", path, "request_id", requestID,
			"status", resp.StatusCode, "error_code", apiErr.ErrorCode)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if c.onUnauthorized != nil {
				c.onUnauthorized()
			}
		case http.StatusForbidden:
			if c.onForbidden != nil {
				c.onForbidden()
			}
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(ErrServer, fmt.Sprintf("decode response: %v", err))
		}
	}
	return nil
}
