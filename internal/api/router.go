// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/authz"
)

// RouterDeps carries everything the router needs beyond the handlers.
type RouterDeps struct {
	Handlers   *Handlers
	Auth       *auth.Middleware
	Enforcer   *authz.Enforcer
	Middleware *Middleware
}

// NewRouter builds the full route tree. Route groups are gated by resource:
// the enforcer decides per role which groups a caller may enter.
func NewRouter(deps RouterDeps) chi.Router {
	h := deps.Handlers
	mw := deps.Middleware
	require := deps.Enforcer.Require

	// Middleware rejections use the same envelope as handler errors.
	deps.Auth.OnError = writeMiddlewareError
	deps.Enforcer.OnError = writeMiddlewareError

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(RequestIDWithLogging())
	r.Use(Instrument)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())

	r.Get("/healthz", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.With(mw.LoginRateLimit()).Post("/auth/login", h.Login)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(deps.Auth.Authenticate)

			r.Route("/auth", func(r chi.Router) {
				r.Post("/logout", h.Logout)
				r.Get("/me", h.Me)
				r.Post("/password", h.ChangePassword)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Use(require("reminders"))
				r.Get("/", h.ListReminders)
				r.Post("/", h.CreateReminder)
				r.Get("/overdue", h.OverdueReminders)
				r.Get("/today", h.TodayReminders)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.GetReminder)
					r.Put("/", h.UpdateReminder)
					r.Delete("/", h.DeleteReminder)
					r.Post("/snooze", h.SnoozeReminder)
					r.Post("/complete", h.CompleteReminder)
					r.Post("/reschedule", h.RescheduleReminder)
				})
			})

			r.Route("/inventory", func(r chi.Router) {
				r.Use(require("inventory"))
				r.Route("/items", func(r chi.Router) {
					r.Get("/", h.ListInventoryItems)
					r.Post("/", h.CreateInventoryItem)
					r.Get("/low-stock", h.LowStockItems)
					r.Get("/expiring", h.ExpiringItems)
					r.Get("/{id}", h.GetInventoryItem)
					r.Put("/{id}", h.UpdateInventoryItem)
					r.Delete("/{id}", h.DeleteInventoryItem)
				})
				r.Route("/alerts", func(r chi.Router) {
					r.Get("/", h.ListInventoryAlerts)
					r.Post("/", h.CreateInventoryAlert)
					r.Post("/{id}/acknowledge", h.AcknowledgeInventoryAlert)
					r.Post("/{id}/resolve", h.ResolveInventoryAlert)
					r.Delete("/{id}", h.DeleteInventoryAlert)
				})
				r.Route("/restock-orders", func(r chi.Router) {
					r.Get("/", h.ListRestockOrders)
					r.Post("/", h.CreateRestockOrder)
					r.Put("/{id}/status", h.UpdateRestockOrder)
					r.Post("/{id}/complete", h.CompleteRestockOrder)
					r.Delete("/{id}", h.DeleteRestockOrder)
				})
			})

			r.Route("/medical/records", func(r chi.Router) {
				r.Use(require("medical"))
				r.Get("/", h.ListMedicalRecords)
				r.Post("/", h.CreateMedicalRecord)
				r.Get("/{id}", h.GetMedicalRecord)
				r.Put("/{id}", h.UpdateMedicalRecord)
				r.Delete("/{id}", h.DeleteMedicalRecord)
			})

			r.Route("/vaccinations", func(r chi.Router) {
				r.Use(require("vaccinations"))
				r.Get("/", h.ListVaccinations)
				r.Post("/", h.CreateVaccination)
				r.Get("/{id}", h.GetVaccination)
				r.Put("/{id}", h.UpdateVaccination)
				r.Delete("/{id}", h.DeleteVaccination)
			})

			r.Route("/emergency/incidents", func(r chi.Router) {
				r.Use(require("emergency"))
				r.Get("/", h.ListIncidents)
				r.Post("/", h.CreateIncident)
				r.Get("/{id}", h.GetIncident)
				r.Put("/{id}", h.UpdateIncident)
				r.Post("/{id}/resolve", h.ResolveIncident)
				r.Delete("/{id}", h.DeleteIncident)
			})

			r.Route("/emergency/reports", func(r chi.Router) {
				r.Use(require("reports"))
				r.Get("/", h.ListReports)
				r.Post("/", h.CreateReport)
				r.Get("/{id}", h.GetReport)
				r.Put("/{id}", h.UpdateReport)
				r.Delete("/{id}", h.DeleteReport)
			})

			// Reads are open to every authenticated role; the handler filters
			// drafts and role targeting. Mutations are admin-gated.
			r.Route("/announcements", func(r chi.Router) {
				r.Get("/", h.ListAnnouncements)
				r.Get("/{id}", h.GetAnnouncement)
				r.Group(func(r chi.Router) {
					r.Use(require("announcements"))
					r.Post("/", h.CreateAnnouncement)
					r.Put("/{id}", h.UpdateAnnouncement)
					r.Post("/{id}/publish", h.PublishAnnouncement)
					r.Delete("/{id}", h.DeleteAnnouncement)
				})
			})

			// Messages are scoped to the caller inside the handlers, so any
			// authenticated role may use its own mailbox.
			r.Route("/messages", func(r chi.Router) {
				r.Get("/", h.ListMessages)
				r.Post("/", h.SendMessage)
				r.Post("/{id}/read", h.ReadMessage)
				r.Delete("/{id}", h.DeleteMessage)
			})

			r.Route("/education", func(r chi.Router) {
				r.Get("/", h.ListSessions)
				r.Get("/{id}", h.GetSession)
				r.Group(func(r chi.Router) {
					r.Use(require("education"))
					r.Post("/", h.CreateSession)
					r.Put("/{id}", h.UpdateSession)
					r.Delete("/{id}", h.DeleteSession)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(require("users"))
				r.Get("/", h.ListUsers)
				r.Post("/", h.CreateUser)
				r.Get("/{id}", h.GetUser)
				r.Put("/{id}", h.UpdateUser)
				r.Post("/{id}/reset-password", h.ResetUserPassword)
				r.Delete("/{id}", h.DeleteUser)
			})

			r.With(require("audit")).Get("/audit", h.ListAuditEvents)

			r.Post("/uploads/{feature}", h.Upload)
			r.Get("/files/{feature}/{name}", h.ServeFile)
		})
	})

	return r
}

// Health handles GET /healthz.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "ok"})
}

// writeMiddlewareError routes auth middleware failures through the standard
// response envelope.
func writeMiddlewareError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rw := NewResponseWriter(w, r)
	switch status {
	case http.StatusUnauthorized:
		rw.Error(status, ErrCodeUnauthorized, message)
	case http.StatusForbidden:
		rw.Error(status, ErrCodeForbidden, message)
	default:
		rw.Error(status, ErrCodeInternalError, message)
	}
}
