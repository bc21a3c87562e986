// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/services"
)

// announcementRequest is the POST /announcements body.
type announcementRequest struct {
	Title    string   `json:"title" validate:"required"`
	Body     string   `json:"body" validate:"required"`
	Priority string   `json:"priority"`
	Roles    []string `json:"roles"`
}

// announcementUpdateRequest is the PUT /announcements/{id} body.
type announcementUpdateRequest struct {
	Title    *string   `json:"title"`
	Body     *string   `json:"body"`
	Priority *string   `json:"priority"`
	Status   *string   `json:"status"`
	Roles    *[]string `json:"roles"`
}

// ListAnnouncements handles GET /announcements. Non-admin callers only see
// published announcements targeted at their role.
func (h *Handlers) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	q := r.URL.Query()
	f := services.AnnouncementFilter{
		Status: q.Get("status"),
		Query:  q.Get("q"),
		Page:   pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	}
	if claims.Role != string(models.RoleAdmin) {
		f.Status = string(models.AnnouncementPublished)
		f.Role = claims.Role
	}

	res, err := h.comms.ListAnnouncements(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetAnnouncement handles GET /announcements/{id}.
func (h *Handlers) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	ann, err := h.comms.GetAnnouncement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(ann)
}

// CreateAnnouncement handles POST /announcements.
func (h *Handlers) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req announcementRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ann, err := h.comms.CreateAnnouncement(r.Context(), services.CreateAnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		Priority: req.Priority,
		Roles:    req.Roles,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(ann)
}

// UpdateAnnouncement handles PUT /announcements/{id}.
func (h *Handlers) UpdateAnnouncement(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req announcementUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ann, err := h.comms.UpdateAnnouncement(r.Context(), chi.URLParam(r, "id"), services.UpdateAnnouncementInput{
		Title:    req.Title,
		Body:     req.Body,
		Priority: req.Priority,
		Status:   req.Status,
		Roles:    req.Roles,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(ann)
}

// PublishAnnouncement handles POST /announcements/{id}/publish.
func (h *Handlers) PublishAnnouncement(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	ann, err := h.comms.PublishAnnouncement(r.Context(), chi.URLParam(r, "id"), serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(ann)
}

// DeleteAnnouncement handles DELETE /announcements/{id}.
func (h *Handlers) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.comms.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// messageRequest is the POST /messages body.
type messageRequest struct {
	RecipientID string `json:"recipientId" validate:"required"`
	Subject     string `json:"subject"`
	Body        string `json:"body" validate:"required"`
}

// ListMessages handles GET /messages, scoped to the caller's own mailbox.
func (h *Handlers) ListMessages(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	unreadOnly, _ := strconv.ParseBool(r.URL.Query().Get("unread"))
	res, err := h.comms.ListMessages(r.Context(), services.MessageFilter{
		UserID:     claims.UserID,
		UnreadOnly: unreadOnly,
		Page:       pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// SendMessage handles POST /messages.
func (h *Handlers) SendMessage(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req messageRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	msg, err := h.comms.SendMessage(r.Context(), services.SendMessageInput{
		RecipientID: req.RecipientID,
		Subject:     req.Subject,
		Body:        req.Body,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(msg)
}

// ReadMessage handles POST /messages/{id}/read. Only the recipient may mark
// a message read.
func (h *Handlers) ReadMessage(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}
	rw := NewResponseWriter(w, r)

	msg, err := h.comms.GetMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if msg.RecipientID != claims.UserID {
		rw.Forbidden("not the recipient of this message")
		return
	}

	msg, err = h.comms.MarkMessageRead(r.Context(), msg.ID, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	rw.Success(msg)
}

// DeleteMessage handles DELETE /messages/{id}. Only a participant may delete.
func (h *Handlers) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}
	rw := NewResponseWriter(w, r)

	msg, err := h.comms.GetMessage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if msg.SenderID != claims.UserID && msg.RecipientID != claims.UserID {
		rw.Forbidden("not a participant of this message")
		return
	}

	if err := h.comms.DeleteMessage(r.Context(), msg.ID, serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	rw.NoContent()
}

// sessionRequest is the POST /education body.
type sessionRequest struct {
	Title       string `json:"title" validate:"required"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Presenter   string `json:"presenter"`
	SessionDate string `json:"sessionDate" validate:"required,datetime=2006-01-02"`
	SessionTime string `json:"sessionTime" validate:"omitempty,datetime=15:04"`
	Location    string `json:"location"`
}

// sessionUpdateRequest is the PUT /education/{id} body.
type sessionUpdateRequest struct {
	Title       *string `json:"title"`
	Topic       *string `json:"topic"`
	Description *string `json:"description"`
	Presenter   *string `json:"presenter"`
	SessionDate *string `json:"sessionDate" validate:"omitempty,datetime=2006-01-02"`
	SessionTime *string `json:"sessionTime"`
	Location    *string `json:"location"`
}

// ListSessions handles GET /education.
func (h *Handlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.comms.ListSessions(r.Context(), services.SessionFilter{
		DateFrom: q.Get("dateFrom"),
		DateTo:   q.Get("dateTo"),
		Query:    q.Get("q"),
		Page:     pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetSession handles GET /education/{id}.
func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.comms.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(sess)
}

// CreateSession handles POST /education.
func (h *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req sessionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.comms.CreateSession(r.Context(), services.CreateSessionInput{
		Title:       req.Title,
		Topic:       req.Topic,
		Description: req.Description,
		Presenter:   req.Presenter,
		SessionDate: req.SessionDate,
		SessionTime: req.SessionTime,
		Location:    req.Location,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(sess)
}

// UpdateSession handles PUT /education/{id}.
func (h *Handlers) UpdateSession(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req sessionUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sess, err := h.comms.UpdateSession(r.Context(), chi.URLParam(r, "id"), services.UpdateSessionInput{
		Title:       req.Title,
		Topic:       req.Topic,
		Description: req.Description,
		Presenter:   req.Presenter,
		SessionDate: req.SessionDate,
		SessionTime: req.SessionTime,
		Location:    req.Location,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(sess)
}

// DeleteSession handles DELETE /education/{id}.
func (h *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.comms.DeleteSession(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
