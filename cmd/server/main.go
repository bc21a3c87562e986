// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package main is the entry point for the VoyageCare server application.
//
// VoyageCare is a self-hosted crew health management backend for vessels:
// medical records, vaccinations, health reminders, medical inventory,
// emergency incidents, and crew communications behind a role-gated REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, YAML file, and environment (Koanf v2)
//  2. Document store: BadgerDB, one collection per resource type
//  3. Audit: Badger-backed append-only audit log shared by every service
//  4. Resource services: users, inventory, medical, emergency, comms, reminders
//  5. Authentication: JWT manager, login lockout, Casbin role enforcer
//  6. HTTP server: chi router with the versioned REST API under /api/v1
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority
// wins): environment variables, config.yaml, built-in defaults. JWT_SECRET is
// required; ADMIN_USERNAME/ADMIN_PASSWORD seed the first admin account when
// the user collection is empty.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the document store
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/voyagecare/voyagecare/internal/api"
	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/authz"
	"github.com/voyagecare/voyagecare/internal/config"
	"github.com/voyagecare/voyagecare/internal/logging"
	"github.com/voyagecare/voyagecare/internal/reminders"
	"github.com/voyagecare/voyagecare/internal/services"
	"github.com/voyagecare/voyagecare/internal/store"
	"github.com/voyagecare/voyagecare/internal/uploads"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting VoyageCare")

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open document store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing document store")
		}
	}()
	logging.Info().Msg("Document store opened")

	auditStore := audit.NewBadgerStore(db)
	recorder := audit.NewRecorder(auditStore)

	userSvc := services.NewUserService(db, recorder)
	inventorySvc := services.NewInventoryService(db, recorder)
	medicalSvc := services.NewMedicalService(db, recorder)
	emergencySvc := services.NewEmergencyService(db, recorder)
	commsSvc := services.NewCommsService(db, recorder)
	reminderSvc := reminders.NewService(db, recorder)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := userSvc.EnsureAdmin(ctx, cfg.Security.AdminUsername, cfg.Security.AdminPassword, cfg.Security.AdminEmail); err != nil {
		logging.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	uploadMgr, err := uploads.NewManager(cfg.Uploads.Dir, cfg.Uploads.MaxSizeBytes)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize upload storage")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	lockout := auth.NewLockout(cfg.Security.MaxLoginFailures, cfg.Security.LoginLockoutWindow)

	enforcer, err := authz.NewEnforcer()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize authorization enforcer")
	}

	handlers := api.NewHandlers(api.HandlerDeps{
		Config:     cfg,
		JWT:        jwtManager,
		Lockout:    lockout,
		Users:      userSvc,
		Inventory:  inventorySvc,
		Medical:    medicalSvc,
		Emergency:  emergencySvc,
		Comms:      commsSvc,
		Reminders:  reminderSvc,
		AuditStore: auditStore,
		Uploads:    uploadMgr,
	})

	router := api.NewRouter(api.RouterDeps{
		Handlers: handlers,
		Auth:     auth.NewMiddleware(jwtManager),
		Enforcer: enforcer,
		Middleware: api.NewMiddleware(&api.MiddlewareConfig{
			CORSAllowedOrigins:     cfg.Security.CORSOrigins,
			RateLimitRequests:      cfg.Security.RateLimitReqs,
			RateLimitWindow:        cfg.Security.RateLimitWindow,
			RateLimitDisabled:      cfg.Security.RateLimitDisabled,
			LoginRateLimitRequests: cfg.Security.MaxLoginFailures,
			LoginRateLimitWindow:   cfg.Security.LoginLockoutWindow,
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logging.Fatal().Err(err).Msg("HTTP server failed")
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
	logging.Info().Msg("Server stopped")
}
