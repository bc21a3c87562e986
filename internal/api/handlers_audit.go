// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/voyagecare/voyagecare/internal/audit"
)

// auditListResult is the GET /audit response payload.
type auditListResult struct {
	Items []audit.Event `json:"items"`
	Total int           `json:"total"`
}

// ListAuditEvents handles GET /audit. Admin only; enforced by route policy.
func (h *Handlers) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	q := r.URL.Query()
	f := audit.DefaultQueryFilter()
	f.Resource = q.Get("resource")
	f.Action = q.Get("action")
	f.ActorID = q.Get("actorId")
	f.TargetID = q.Get("targetId")
	f.SearchText = q.Get("q")

	if v := q.Get("outcome"); v != "" {
		f.Outcome = audit.Outcome(v)
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			rw.BadRequest("from must be an RFC 3339 timestamp")
			return
		}
		f.StartTime = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			rw.BadRequest("to must be an RFC 3339 timestamp")
			return
		}
		f.EndTime = &t
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 {
		if v > h.cfg.API.MaxPageSize {
			v = h.cfg.API.MaxPageSize
		}
		f.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		f.Offset = v
	}

	events, err := h.auditStore.Query(r.Context(), f)
	if err != nil {
		rw.StoreError(err)
		return
	}
	total, err := h.auditStore.Count(r.Context(), f)
	if err != nil {
		rw.StoreError(err)
		return
	}

	rw.Success(auditListResult{Items: events, Total: total})
}
