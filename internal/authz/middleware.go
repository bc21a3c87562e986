// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package authz

import (
	"net/http"

	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/logging"
	"github.com/voyagecare/voyagecare/internal/metrics"
)

func (e *Enforcer) fail(w http.ResponseWriter, r *http.Request, message string) {
	if e.OnError != nil {
		e.OnError(w, r, http.StatusForbidden, message)
		return
	}
	http.Error(w, message, http.StatusForbidden)
}

// requestAct maps the HTTP method to the policy action: safe methods are
// reads, everything else is a write. Roles granted "*" pass both.
func requestAct(r *http.Request) string {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		return "read"
	}
	return "write"
}

// Require returns middleware admitting only callers whose role is allowed to
// perform the request's action on the named resource group. It must run after
// auth.Middleware.Authenticate so the claims are on the context.
func (e *Enforcer) Require(resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				e.fail(w, r, "Forbidden: invalid claims")
				return
			}

			if !e.Allowed(claims.Role, resource, requestAct(r)) {
				metrics.RecordAuthzDenied(claims.Role, resource)
				logging.Ctx(r.Context()).Warn().
					Str("role", claims.Role).
					Str("resource", resource).
					Str("act", requestAct(r)).
					Msg("authorization denied")
				e.fail(w, r, "Forbidden: insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
