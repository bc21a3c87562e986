// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/reminders"
)

// reminderRequest is the POST /reminders body.
type reminderRequest struct {
	Type              string                    `json:"type" validate:"required"`
	CrewID            string                    `json:"crewId" validate:"required"`
	Title             string                    `json:"title" validate:"required"`
	Notes             string                    `json:"notes"`
	Status            string                    `json:"status"`
	ScheduledDate     string                    `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime     string                    `json:"scheduledTime" validate:"omitempty,datetime=15:04"`
	IsRecurring       bool                      `json:"isRecurring"`
	RecurrencePattern string                    `json:"recurrencePattern"`
	RecurrenceEnd     string                    `json:"recurrenceEnd" validate:"omitempty,datetime=2006-01-02"`
	Medication        *models.MedicationDetails `json:"medication"`
	Followup          *models.FollowupDetails   `json:"followup"`
	AlertSettings     *models.AlertSettings     `json:"alertSettings"`
}

// reminderUpdateRequest is the PUT /reminders/{id} body; absent fields leave
// the stored values untouched.
type reminderUpdateRequest struct {
	Type              *string                   `json:"type"`
	Title             *string                   `json:"title"`
	Notes             *string                   `json:"notes"`
	Status            *string                   `json:"status"`
	ScheduledDate     *string                   `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime     *string                   `json:"scheduledTime"`
	IsRecurring       *bool                     `json:"isRecurring"`
	RecurrencePattern *string                   `json:"recurrencePattern"`
	RecurrenceEnd     *string                   `json:"recurrenceEnd"`
	Medication        *models.MedicationDetails `json:"medication"`
	Followup          *models.FollowupDetails   `json:"followup"`
	AlertSettings     *models.AlertSettings     `json:"alertSettings"`
}

// ListReminders handles GET /reminders. Crew callers are pinned to their own
// crew id regardless of the query.
func (h *Handlers) ListReminders(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	q := r.URL.Query()
	f := reminders.Filter{
		CrewID:   q.Get("crewId"),
		Status:   q.Get("status"),
		Type:     q.Get("type"),
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
		Page:     pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	}
	if claims.Role == string(models.RoleCrew) {
		f.CrewID = claims.CrewID
	}

	res, err := h.reminders.List(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetReminder handles GET /reminders/{id}. Crew callers can only see
// reminders for their own crew id; anything else reads as not found.
func (h *Handlers) GetReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	rem, err := h.reminders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if claims.Role == string(models.RoleCrew) && rem.CrewID != claims.CrewID {
		NewResponseWriter(w, r).NotFound("reminder not found")
		return
	}
	NewResponseWriter(w, r).Success(h.reminders.View(*rem))
}

// CreateReminder handles POST /reminders.
func (h *Handlers) CreateReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req reminderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rem, err := h.reminders.Create(r.Context(), reminders.CreateInput{
		Type:              req.Type,
		CrewID:            req.CrewID,
		Title:             req.Title,
		Notes:             req.Notes,
		Status:            req.Status,
		ScheduledDate:     req.ScheduledDate,
		ScheduledTime:     req.ScheduledTime,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
		RecurrenceEnd:     req.RecurrenceEnd,
		Medication:        req.Medication,
		Followup:          req.Followup,
		AlertSettings:     req.AlertSettings,
	}, reminderActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(rem)
}

// UpdateReminder handles PUT /reminders/{id}.
func (h *Handlers) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req reminderUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rem, err := h.reminders.Update(r.Context(), chi.URLParam(r, "id"), reminders.UpdateInput{
		Type:              req.Type,
		Title:             req.Title,
		Notes:             req.Notes,
		Status:            req.Status,
		ScheduledDate:     req.ScheduledDate,
		ScheduledTime:     req.ScheduledTime,
		IsRecurring:       req.IsRecurring,
		RecurrencePattern: req.RecurrencePattern,
		RecurrenceEnd:     req.RecurrenceEnd,
		Medication:        req.Medication,
		Followup:          req.Followup,
		AlertSettings:     req.AlertSettings,
	}, reminderActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rem)
}

// DeleteReminder handles DELETE /reminders/{id}.
func (h *Handlers) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.reminders.Delete(r.Context(), chi.URLParam(r, "id"), reminderActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// snoozeRequest is the POST /reminders/{id}/snooze body.
type snoozeRequest struct {
	Minutes int `json:"minutes" validate:"omitempty,min=0,max=10080"`
}

// SnoozeReminder handles POST /reminders/{id}/snooze.
func (h *Handlers) SnoozeReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req snoozeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rem, err := h.reminders.Snooze(r.Context(), chi.URLParam(r, "id"), req.Minutes, reminderActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rem)
}

// completeRequest is the POST /reminders/{id}/complete body.
type completeRequest struct {
	Notes string `json:"notes"`
}

// CompleteReminder handles POST /reminders/{id}/complete.
func (h *Handlers) CompleteReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req completeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rem, err := h.reminders.Complete(r.Context(), chi.URLParam(r, "id"), reminderActor(claims), req.Notes)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rem)
}

// rescheduleRequest is the POST /reminders/{id}/reschedule body.
type rescheduleRequest struct {
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Time   string `json:"time" validate:"omitempty,datetime=15:04"`
	Status string `json:"status"`
}

// RescheduleReminder handles POST /reminders/{id}/reschedule.
func (h *Handlers) RescheduleReminder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req rescheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rem, err := h.reminders.Reschedule(r.Context(), chi.URLParam(r, "id"), req.Date, req.Time, req.Status, reminderActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rem)
}

// OverdueReminders handles GET /reminders/overdue.
func (h *Handlers) OverdueReminders(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	items, err := h.reminders.Overdue(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items = crewOnly(claims, items)
	NewResponseWriter(w, r).Success(map[string]interface{}{"items": items, "total": len(items)})
}

// TodayReminders handles GET /reminders/today.
func (h *Handlers) TodayReminders(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	items, err := h.reminders.DueToday(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items = crewOnly(claims, items)
	NewResponseWriter(w, r).Success(map[string]interface{}{"items": items, "total": len(items)})
}

// crewOnly narrows a reminder slice to the caller's crew id for crew callers;
// staff roles see everything.
func crewOnly(claims *auth.Claims, items []models.Reminder) []models.Reminder {
	if claims.Role != string(models.RoleCrew) {
		return items
	}
	out := make([]models.Reminder, 0, len(items))
	for i := range items {
		if items[i].CrewID == claims.CrewID {
			out = append(out, items[i])
		}
	}
	return out
}
