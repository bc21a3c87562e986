// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/config"
	"github.com/voyagecare/voyagecare/internal/reminders"
	"github.com/voyagecare/voyagecare/internal/services"
	"github.com/voyagecare/voyagecare/internal/uploads"
)

// Handlers bundles every resource handler's dependencies.
type Handlers struct {
	cfg *config.Config

	jwt     *auth.JWTManager
	lockout *auth.Lockout

	users     *services.UserService
	inventory *services.InventoryService
	medical   *services.MedicalService
	emergency *services.EmergencyService
	comms     *services.CommsService
	reminders *reminders.Service

	auditStore audit.Store
	uploads    *uploads.Manager
}

// HandlerDeps carries the constructor inputs for Handlers.
type HandlerDeps struct {
	Config  *config.Config
	JWT     *auth.JWTManager
	Lockout *auth.Lockout

	Users     *services.UserService
	Inventory *services.InventoryService
	Medical   *services.MedicalService
	Emergency *services.EmergencyService
	Comms     *services.CommsService
	Reminders *reminders.Service

	AuditStore audit.Store
	Uploads    *uploads.Manager
}

// NewHandlers creates the handler set.
func NewHandlers(deps HandlerDeps) *Handlers {
	return &Handlers{
		cfg:        deps.Config,
		jwt:        deps.JWT,
		lockout:    deps.Lockout,
		users:      deps.Users,
		inventory:  deps.Inventory,
		medical:    deps.Medical,
		emergency:  deps.Emergency,
		comms:      deps.Comms,
		reminders:  deps.Reminders,
		auditStore: deps.AuditStore,
		uploads:    deps.Uploads,
	}
}
