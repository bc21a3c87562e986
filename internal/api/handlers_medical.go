// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/services"
)

// recordRequest is the POST /medical/records body.
type recordRequest struct {
	CrewID     string `json:"crewId" validate:"required"`
	RecordType string `json:"recordType" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Diagnosis  string `json:"diagnosis"`
	Treatment  string `json:"treatment"`
	Notes      string `json:"notes"`
	Priority   string `json:"priority"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
}

// recordUpdateRequest is the PUT /medical/records/{id} body.
type recordUpdateRequest struct {
	RecordType *string `json:"recordType"`
	Title      *string `json:"title"`
	Diagnosis  *string `json:"diagnosis"`
	Treatment  *string `json:"treatment"`
	Notes      *string `json:"notes"`
	Priority   *string `json:"priority"`
	Date       *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// crewScope pins crew callers to their own records; staff roles pass the
// requested crew id through.
func crewScope(r *http.Request, requested string) string {
	claims, ok := authClaims(r)
	if ok && claims.Role == string(models.RoleCrew) {
		return claims.CrewID
	}
	return requested
}

// ListMedicalRecords handles GET /medical/records.
func (h *Handlers) ListMedicalRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.medical.ListRecords(r.Context(), services.RecordFilter{
		CrewID:     crewScope(r, q.Get("crewId")),
		RecordType: q.Get("recordType"),
		Priority:   q.Get("priority"),
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

// GetMedicalRecord handles GET /medical/records/{id}.
func (h *Handlers) GetMedicalRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := h.medical.GetRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if crewScope(r, rec.CrewID) != rec.CrewID {
		NewResponseWriter(w, r).NotFound("resource not found")
		return
	}
	NewResponseWriter(w, r).Success(rec)
}

// CreateMedicalRecord handles POST /medical/records.
func (h *Handlers) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req recordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.medical.CreateRecord(r.Context(), services.CreateRecordInput{
		CrewID:     req.CrewID,
		RecordType: req.RecordType,
		Title:      req.Title,
		Diagnosis:  req.Diagnosis,
		Treatment:  req.Treatment,
		Notes:      req.Notes,
		Priority:   req.Priority,
		Date:       req.Date,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(rec)
}

// UpdateMedicalRecord handles PUT /medical/records/{id}.
func (h *Handlers) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req recordUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := h.medical.UpdateRecord(r.Context(), chi.URLParam(r, "id"), services.UpdateRecordInput{
		RecordType: req.RecordType,
		Title:      req.Title,
		Diagnosis:  req.Diagnosis,
		Treatment:  req.Treatment,
		Notes:      req.Notes,
		Priority:   req.Priority,
		Date:       req.Date,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(rec)
}

// DeleteMedicalRecord handles DELETE /medical/records/{id}.
func (h *Handlers) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.medical.DeleteRecord(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// vaccinationRequest is the POST /vaccinations body.
type vaccinationRequest struct {
	CrewID        string `json:"crewId" validate:"required"`
	Vaccine       string `json:"vaccine" validate:"required"`
	DoseNumber    int    `json:"doseNumber" validate:"omitempty,min=1"`
	DateGiven     string `json:"dateGiven" validate:"required,datetime=2006-01-02"`
	NextDueDate   string `json:"nextDueDate" validate:"omitempty,datetime=2006-01-02"`
	Administrator string `json:"administrator"`
	BatchNumber   string `json:"batchNumber"`
	Notes         string `json:"notes"`
}

// vaccinationUpdateRequest is the PUT /vaccinations/{id} body.
type vaccinationUpdateRequest struct {
	Vaccine       *string `json:"vaccine"`
	DoseNumber    *int    `json:"doseNumber" validate:"omitempty,min=1"`
	DateGiven     *string `json:"dateGiven" validate:"omitempty,datetime=2006-01-02"`
	NextDueDate   *string `json:"nextDueDate" validate:"omitempty,datetime=2006-01-02"`
	Administrator *string `json:"administrator"`
	BatchNumber   *string `json:"batchNumber"`
	Notes         *string `json:"notes"`
}

// ListVaccinations handles GET /vaccinations.
func (h *Handlers) ListVaccinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.medical.ListVaccinations(r.Context(), services.VaccinationFilter{
		CrewID: crewScope(r, q.Get("crewId")),
		Status: q.Get("status"),
		Query:  q.Get("q"),
		Page:   pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetVaccination handles GET /vaccinations/{id}.
func (h *Handlers) GetVaccination(w http.ResponseWriter, r *http.Request) {
	vac, err := h.medical.GetVaccination(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if crewScope(r, vac.CrewID) != vac.CrewID {
		NewResponseWriter(w, r).NotFound("resource not found")
		return
	}
	NewResponseWriter(w, r).Success(vac)
}

// CreateVaccination handles POST /vaccinations.
func (h *Handlers) CreateVaccination(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req vaccinationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vac, err := h.medical.CreateVaccination(r.Context(), services.CreateVaccinationInput{
		CrewID:        req.CrewID,
		Vaccine:       req.Vaccine,
		DoseNumber:    req.DoseNumber,
		DateGiven:     req.DateGiven,
		NextDueDate:   req.NextDueDate,
		Administrator: req.Administrator,
		BatchNumber:   req.BatchNumber,
		Notes:         req.Notes,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(vac)
}

// UpdateVaccination handles PUT /vaccinations/{id}.
func (h *Handlers) UpdateVaccination(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req vaccinationUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vac, err := h.medical.UpdateVaccination(r.Context(), chi.URLParam(r, "id"), services.UpdateVaccinationInput{
		Vaccine:       req.Vaccine,
		DoseNumber:    req.DoseNumber,
		DateGiven:     req.DateGiven,
		NextDueDate:   req.NextDueDate,
		Administrator: req.Administrator,
		BatchNumber:   req.BatchNumber,
		Notes:         req.Notes,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(vac)
}

// DeleteVaccination handles DELETE /vaccinations/{id}.
func (h *Handlers) DeleteVaccination(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.medical.DeleteVaccination(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
