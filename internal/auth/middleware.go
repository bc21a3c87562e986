// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/voyagecare/voyagecare/internal/logging"
)

type contextKey string

// ClaimsContextKey is the context key the verified claims are stored under.
const ClaimsContextKey contextKey = "claims"

// ErrorWriter writes an HTTP error response. The router installs a writer
// producing the standard response envelope so middleware failures look the
// same as handler failures.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, message string)

// Middleware enforces bearer-token authentication on protected routes.
type Middleware struct {
	jwtManager *JWTManager

	// OnError writes authentication failures; nil falls back to http.Error.
	OnError ErrorWriter
}

// NewMiddleware creates an authentication middleware.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

func (m *Middleware) fail(w http.ResponseWriter, r *http.Request, status int, message string) {
	if m.OnError != nil {
		m.OnError(w, r, status, message)
		return
	}
	http.Error(w, message, status)
}

// Authenticate verifies the bearer token (Authorization header or "token"
// cookie) and attaches the caller's claims to the request context. Requests
// without a valid token get a 401.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := extractToken(r)
		if err != nil {
			m.fail(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("token validation failed")
			m.fail(w, r, http.StatusUnauthorized, "Unauthorized: invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractToken reads the JWT from the Authorization header or the token cookie.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err != nil {
			return "", fmt.Errorf("unauthorized: missing token")
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("unauthorized: invalid authorization header")
	}

	return parts[1], nil
}

// ClaimsFromContext retrieves the verified claims from the request context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}
