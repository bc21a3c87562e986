// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"errors"
	"net/http"

	"github.com/voyagecare/voyagecare/internal/logging"
	"github.com/voyagecare/voyagecare/internal/metrics"
	"github.com/voyagecare/voyagecare/internal/services"
	"github.com/voyagecare/voyagecare/internal/store"
)

// loginRequest is the POST /auth/login body.
type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse carries the issued token plus the caller's profile.
type loginResponse struct {
	Token string      `json:"token"`
	User  interface{} `json:"user"`
}

// Login verifies credentials, enforces the failed-login lockout, and issues a
// JWT. The token is also set as an HttpOnly cookie for browser clients.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if h.lockout.IsLocked(req.Username) {
		metrics.RecordLoginAttempt("locked")
		logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("login attempt on locked account")
		rw.TooManyRequests("account temporarily locked after repeated failures")
		return
	}

	user, err := h.users.VerifyCredentials(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			h.lockout.RecordFailure(req.Username)
			metrics.RecordLoginAttempt("failure")
			rw.Unauthorized("invalid username or password")
			return
		}
		rw.StoreError(err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Username, user.Name, string(user.Role), user.CrewID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("token generation failed")
		rw.InternalError("could not create session")
		return
	}

	h.lockout.Reset(req.Username)
	metrics.RecordLoginAttempt("success")

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.cfg.Security.SessionTimeout.Seconds()),
	})

	rw.Success(loginResponse{Token: token, User: user.Public()})
}

// Logout clears the session cookie. The JWT itself stays valid until expiry;
// stateless tokens cannot be revoked server-side.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	NewResponseWriter(w, r).Success(map[string]string{"status": "logged out"})
}

// Me returns the authenticated caller's account.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}
	rw := NewResponseWriter(w, r)

	user, err := h.users.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rw.Unauthorized("account no longer exists")
			return
		}
		rw.StoreError(err)
		return
	}

	rw.Success(user.Public())
}

// changePasswordRequest is the POST /auth/password body.
type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword lets the caller rotate their own password after re-proving
// the current one.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}
	rw := NewResponseWriter(w, r)

	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := h.users.VerifyCredentials(r.Context(), claims.Username, req.CurrentPassword); err != nil {
		rw.Unauthorized("current password is incorrect")
		return
	}

	if err := h.users.SetPassword(r.Context(), claims.UserID, req.NewPassword, serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}

	rw.Success(map[string]string{"status": "password changed"})
}
