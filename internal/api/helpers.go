// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/voyagecare/voyagecare/internal/auth"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/reminders"
	"github.com/voyagecare/voyagecare/internal/services"
	"github.com/voyagecare/voyagecare/internal/store"
)

// validate is the shared validator instance for request structs.
var validate = validator.New()

// maxJSONBody caps request bodies on JSON endpoints.
const maxJSONBody = 1 << 20 // 1 MiB

// decodeJSON decodes and validates a JSON request body into dst. On failure
// it writes the 400 response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	rw := NewResponseWriter(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		rw.BadRequest("invalid JSON body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make(map[string]string, len(fieldErrs))
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
			rw.ValidationError("request validation failed", details)
			return false
		}
		rw.BadRequest("invalid request")
		return false
	}

	return true
}

// pagingParams parses page/limit query parameters, clamped to the API
// defaults.
func pagingParams(r *http.Request, defaultLimit, maxLimit int) paging.Params {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return paging.Params{Page: page, Limit: limit}.Clamp(defaultLimit, maxLimit)
}

// serviceActor derives the services-layer actor from the verified claims.
func serviceActor(claims *auth.Claims) services.Actor {
	return services.Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role}
}

// reminderActor derives the reminders-layer actor from the verified claims.
func reminderActor(claims *auth.Claims) reminders.Actor {
	return reminders.Actor{ID: claims.UserID, Name: claims.Name, Role: claims.Role}
}

// authClaims fetches the verified claims without writing a response.
func authClaims(r *http.Request) (*auth.Claims, bool) {
	return auth.ClaimsFromContext(r.Context())
}

// mustClaims fetches the verified claims; the auth middleware guarantees they
// exist on protected routes. Writes a 401 and returns nil when absent.
func mustClaims(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		NewResponseWriter(w, r).Unauthorized("missing authentication")
		return nil
	}
	return claims
}

// writeServiceError maps a service-layer error onto the response envelope:
// unresolved ids become 404, unique-field duplicates 409, everything else a
// logged 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	switch {
	case errors.Is(err, store.ErrNotFound):
		rw.NotFound("resource not found")
	case errors.Is(err, services.ErrConflict):
		rw.Conflict(err.Error())
	default:
		rw.StoreError(err)
	}
}
