// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package audit provides the append-only log of mutating actions taken across
// the system. Every resource service records through the single Recorder
// rather than making ad hoc logging calls per handler.
package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
)

// Outcome indicates whether an action succeeded or failed.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Event records one mutating action.
type Event struct {
	// ID is a unique identifier for this event.
	ID string `json:"id"`

	// Timestamp when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Resource names the entity collection acted on (e.g. "reminders").
	Resource string `json:"resource"`

	// Action names what was done (e.g. "create", "snooze", "acknowledge").
	Action string `json:"action"`

	// Outcome indicates success or failure.
	Outcome Outcome `json:"outcome"`

	// Actor who performed the action.
	Actor Actor `json:"actor"`

	// TargetID is the id of the affected record, when one exists.
	TargetID string `json:"targetId,omitempty"`

	// Details provides human-readable context.
	Details string `json:"details,omitempty"`

	// Metadata contains action-specific structured details.
	Metadata json.RawMessage `json:"metadata,omitempty"`

	// RequestID from the originating HTTP request.
	RequestID string `json:"requestId,omitempty"`
}

// Actor represents who performed an action.
type Actor struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// Store defines the interface for audit event persistence.
type Store interface {
	// Save persists an audit event.
	Save(ctx context.Context, event *Event) error

	// Query retrieves events matching the filter, most recent first.
	Query(ctx context.Context, filter QueryFilter) ([]Event, error)

	// Count returns the number of events matching the filter.
	Count(ctx context.Context, filter QueryFilter) (int, error)
}

// QueryFilter defines filtering options for audit queries.
type QueryFilter struct {
	Resource  string     `json:"resource,omitempty"`
	Action    string     `json:"action,omitempty"`
	Outcome   Outcome    `json:"outcome,omitempty"`
	ActorID   string     `json:"actorId,omitempty"`
	TargetID  string     `json:"targetId,omitempty"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	// SearchText matches against details and action.
	SearchText string `json:"searchText,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// DefaultQueryFilter returns a sensible default filter.
func DefaultQueryFilter() QueryFilter {
	return QueryFilter{Limit: 100}
}
