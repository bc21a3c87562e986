// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecare/voyagecare/internal/services"
)

// incidentRequest is the POST /emergency/incidents body.
type incidentRequest struct {
	Code        string   `json:"code" validate:"required,min=3,max=32"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Severity    string   `json:"severity"`
	CrewIDs     []string `json:"crewIds"`
}

// incidentUpdateRequest is the PUT /emergency/incidents/{id} body.
type incidentUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	Severity    *string   `json:"severity"`
	Status      *string   `json:"status"`
	CrewIDs     *[]string `json:"crewIds"`
}

// ListIncidents handles GET /emergency/incidents.
func (h *Handlers) ListIncidents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.emergency.ListIncidents(r.Context(), services.IncidentFilter{
		Status:   q.Get("status"),
		Severity: q.Get("severity"),
		Query:    q.Get("q"),
		Page:     pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetIncident handles GET /emergency/incidents/{id}.
func (h *Handlers) GetIncident(w http.ResponseWriter, r *http.Request) {
	inc, err := h.emergency.GetIncident(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(inc)
}

// CreateIncident handles POST /emergency/incidents.
func (h *Handlers) CreateIncident(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req incidentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inc, err := h.emergency.CreateIncident(r.Context(), services.CreateIncidentInput{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Severity:    req.Severity,
		CrewIDs:     req.CrewIDs,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(inc)
}

// UpdateIncident handles PUT /emergency/incidents/{id}.
func (h *Handlers) UpdateIncident(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req incidentUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inc, err := h.emergency.UpdateIncident(r.Context(), chi.URLParam(r, "id"), services.UpdateIncidentInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Severity:    req.Severity,
		Status:      req.Status,
		CrewIDs:     req.CrewIDs,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(inc)
}

// resolveIncidentRequest is the POST /emergency/incidents/{id}/resolve body.
type resolveIncidentRequest struct {
	Notes string `json:"notes"`
}

// ResolveIncident handles POST /emergency/incidents/{id}/resolve.
func (h *Handlers) ResolveIncident(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req resolveIncidentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	inc, err := h.emergency.ResolveIncident(r.Context(), chi.URLParam(r, "id"), req.Notes, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(inc)
}

// DeleteIncident handles DELETE /emergency/incidents/{id}.
func (h *Handlers) DeleteIncident(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.emergency.DeleteIncident(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// reportRequest is the POST /emergency/reports body.
type reportRequest struct {
	IncidentID string `json:"incidentId"`
	Title      string `json:"title" validate:"required"`
	Summary    string `json:"summary"`
	Findings   string `json:"findings"`
	Actions    string `json:"actions"`
	Severity   string `json:"severity"`
	ReportDate string `json:"reportDate" validate:"required,datetime=2006-01-02"`
}

// reportUpdateRequest is the PUT /emergency/reports/{id} body.
type reportUpdateRequest struct {
	Title      *string `json:"title"`
	Summary    *string `json:"summary"`
	Findings   *string `json:"findings"`
	Actions    *string `json:"actions"`
	Severity   *string `json:"severity"`
	ReportDate *string `json:"reportDate" validate:"omitempty,datetime=2006-01-02"`
}

// ListReports handles GET /emergency/reports.
func (h *Handlers) ListReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.emergency.ListReports(r.Context(), services.ReportFilter{
		IncidentID: q.Get("incidentId"),
		Severity:   q.Get("severity"),
		DateFrom:   q.Get("dateFrom"),
		DateTo:     q.Get("dateTo"),
		Query:      q.Get("q"),
		Page:       pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetReport handles GET /emergency/reports/{id}.
func (h *Handlers) GetReport(w http.ResponseWriter, r *http.Request) {
	rep, err := h.emergency.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rep)
}

// CreateReport handles POST /emergency/reports.
func (h *Handlers) CreateReport(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req reportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rep, err := h.emergency.CreateReport(r.Context(), services.CreateReportInput{
		IncidentID: req.IncidentID,
		Title:      req.Title,
		Summary:    req.Summary,
		Findings:   req.Findings,
		Actions:    req.Actions,
		Severity:   req.Severity,
		ReportDate: req.ReportDate,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(rep)
}

// UpdateReport handles PUT /emergency/reports/{id}.
func (h *Handlers) UpdateReport(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req reportUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rep, err := h.emergency.UpdateReport(r.Context(), chi.URLParam(r, "id"), services.UpdateReportInput{
		Title:      req.Title,
		Summary:    req.Summary,
		Findings:   req.Findings,
		Actions:    req.Actions,
		Severity:   req.Severity,
		ReportDate: req.ReportDate,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rep)
}

// DeleteReport handles DELETE /emergency/reports/{id}.
func (h *Handlers) DeleteReport(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.emergency.DeleteReport(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
