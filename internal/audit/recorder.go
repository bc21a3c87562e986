// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package audit

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/logging"
	"github.com/voyagecare/voyagecare/internal/metrics"
)

// Recorder is the single entry point resource services use to record mutating
// actions. Writes are fire-and-forget: a failed save is logged server-side and
// never surfaces to the caller's request.
type Recorder struct {
	store Store
}

// NewRecorder creates a recorder writing to the given store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Record saves an event. Missing ID and Timestamp are filled in; the request
// ID is taken from ctx when present.
func (r *Recorder) Record(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.RequestID == "" {
		event.RequestID = logging.RequestIDFromContext(ctx)
	}
	if event.Outcome == "" {
		event.Outcome = OutcomeSuccess
	}

	if err := r.store.Save(ctx, &event); err != nil {
		logging.Ctx(ctx).Error().Err(err).
			Str("resource", event.Resource).
			Str("action", event.Action).
			Msg("failed to save audit event")
		return
	}
	metrics.RecordAuditEvent(event.Resource, event.Action)
}

// Success records a successful mutating action.
func (r *Recorder) Success(ctx context.Context, resource, action, targetID string, actor Actor, details string) {
	r.Record(ctx, Event{
		Resource: resource,
		Action:   action,
		Outcome:  OutcomeSuccess,
		Actor:    actor,
		TargetID: targetID,
		Details:  details,
	})
}

// Failure records a failed mutating action.
func (r *Recorder) Failure(ctx context.Context, resource, action, targetID string, actor Actor, details string) {
	r.Record(ctx, Event{
		Resource: resource,
		Action:   action,
		Outcome:  OutcomeFailure,
		Actor:    actor,
		TargetID: targetID,
		Details:  details,
	})
}

// WithMetadata attaches marshaled metadata to an event and records it.
// Marshal failures drop the metadata, not the event.
func (r *Recorder) WithMetadata(ctx context.Context, event Event, metadata interface{}) {
	if metadata != nil {
		if data, err := json.Marshal(metadata); err == nil {
			event.Metadata = data
		}
	}
	r.Record(ctx, event)
}
