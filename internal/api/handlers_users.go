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

// userRequest is the POST /users body.
type userRequest struct {
	Username string              `json:"username" validate:"required,min=2,max=64"`
	Email    string              `json:"email" validate:"omitempty,email"`
	Name     string              `json:"name" validate:"required"`
	Password string              `json:"password" validate:"required,min=8"`
	Role     string              `json:"role" validate:"required"`
	CrewID   string              `json:"crewId"`
	Profile  *models.CrewProfile `json:"profile"`
}

// userUpdateRequest is the PUT /users/{id} body.
type userUpdateRequest struct {
	Email   *string             `json:"email" validate:"omitempty,email"`
	Name    *string             `json:"name"`
	Role    *string             `json:"role"`
	Active  *bool               `json:"active"`
	CrewID  *string             `json:"crewId"`
	Profile *models.CrewProfile `json:"profile"`
}

// ListUsers handles GET /users.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var active *bool
	if raw := q.Get("active"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			active = &v
		}
	}

	res, err := h.users.List(r.Context(), services.UserFilter{
		Role:   q.Get("role"),
		Active: active,
		Query:  q.Get("q"),
		Page:   pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetUser handles GET /users/{id}.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user.Public())
}

// CreateUser handles POST /users.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req userRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Create(r.Context(), services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
		CrewID:   req.CrewID,
		Profile:  req.Profile,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(user.Public())
}

// UpdateUser handles PUT /users/{id}.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req userUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Update(r.Context(), chi.URLParam(r, "id"), services.UpdateUserInput{
		Email:   req.Email,
		Name:    req.Name,
		Role:    req.Role,
		Active:  req.Active,
		CrewID:  req.CrewID,
		Profile: req.Profile,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(user.Public())
}

// resetPasswordRequest is the POST /users/{id}/reset-password body.
type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// ResetUserPassword handles POST /users/{id}/reset-password (admin).
func (h *Handlers) ResetUserPassword(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.users.SetPassword(r.Context(), chi.URLParam(r, "id"), req.Password, serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]string{"status": "password reset"})
}

// DeleteUser handles DELETE /users/{id}. Callers cannot delete themselves.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}
	rw := NewResponseWriter(w, r)

	id := chi.URLParam(r, "id")
	if id == claims.UserID {
		rw.BadRequest("cannot delete your own account")
		return
	}

	if err := h.users.Delete(r.Context(), id, serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	rw.NoContent()
}
