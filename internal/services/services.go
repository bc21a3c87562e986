// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package services holds the per-entity resource services. Each service is a
// thin CRUD layer over the document store with the same shape: list with
// filters and pagination, get, create with enum normalization and a creator
// stamp, partial update, delete. Domain side effects (restock completion,
// alert acknowledgement, incident resolution, announcement publishing) live
// on the owning service. Every mutating operation records through the audit
// recorder.
package services

import (
	"errors"
	"strings"

	"github.com/voyagecare/voyagecare/internal/audit"
)

// ErrConflict is returned when a create would duplicate a unique field
// (username, email, incident code).
var ErrConflict = errors.New("duplicate value for unique field")

// Actor identifies who performs a mutating operation.
type Actor struct {
	ID   string
	Name string
	Role string
}

func (a Actor) audit() audit.Actor {
	return audit.Actor{ID: a.ID, Name: a.Name, Role: a.Role}
}

// matchText reports whether any of the fields contains query,
// case-insensitively. An empty query matches everything.
func matchText(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// inDateRange reports whether date (2006-01-02) falls inside the inclusive
// [from, to] range; empty bounds are open.
func inDateRange(date, from, to string) bool {
	if from != "" && date < from {
		return false
	}
	if to != "" && date > to {
		return false
	}
	return true
}
