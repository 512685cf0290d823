// Package app assembles the console: config, logger, session store,
// backend client and the services on top. One constructor, called once
// per process by the command layer.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nguyenthanhduc0901/clinicdesk/config"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/api/rest"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/appointment"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/auth"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/service/patient"
	"github.com/nguyenthanhduc0901/clinicdesk/internal/session"
	"github.com/nguyenthanhduc0901/clinicdesk/pkg/logs"
)

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Session *session.FileStore

	API          *rest.Client
	Auth         auth.Service
	Patients     patient.Service
	Appointments appointment.Service
}

func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logs.New(cfg)

	stateDir := cfg.State.Dir
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		stateDir = filepath.Join(home, ".clinicdesk")
	}

	store, err := session.NewFile(stateDir)
	if err != nil {
		return nil, err
	}
	if err := store.Load(); err != nil {
		return nil, err
	}

	if cfg.Auth.DevBypass.Enabled && !store.Authenticated() {
		seedDevSession(cfg, store, logger)
	}

	api := rest.New(cfg.Backend.BaseURL, cfg.Backend.Timeout(), store,
		rest.WithLogger(logger),
		// A dead credential anywhere tears the session down once,
		// globally. Call sites never handle 401 themselves.
		rest.WithUnauthorizedHook(func() {
			logger.Warn("credential rejected, clearing session")
			store.Clear()
		}),
		rest.WithForbiddenHook(func() {
			logger.Warn("action forbidden for current capabilities")
		}),
	)

	return &App{
		Config:       cfg,
		Logger:       logger,
		Session:      store,
		API:          api,
		Auth:         auth.New(api, store, cfg.Auth.PermissionFetchMaxTries, logger),
		Patients:     patient.New(api),
		Appointments: appointment.New(api, cfg.Cache.Freshness(), logger),
	}, nil
}

// seedDevSession installs a local-only session so screens can be
// exercised without a running login flow. The backend still rejects
// the credential on real calls.
func seedDevSession(cfg *config.Config, store *session.FileStore, logger *slog.Logger) {
	bp := cfg.Auth.DevBypass
	cred := bp.Credential
	if cred == "" {
		cred = "dev-bypass"
	}
	store.SetSession(cred, session.Identity{Email: bp.Email})
	if len(bp.Capabilities) > 0 {
		store.SetCapabilities(bp.Capabilities)
	}
	logger.Warn("dev bypass session seeded", "email", bp.Email)
}
