// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package audit

import (
	"context"
	"sort"
	"strings"

	"github.com/voyagecare/voyagecare/internal/store"
)

// Collection is the document store collection audit events live in.
const Collection = "audit_events"

// BadgerStore implements Store on top of the document store.
type BadgerStore struct {
	db *store.Store
}

// NewBadgerStore creates a document-store-backed audit store.
func NewBadgerStore(db *store.Store) *BadgerStore {
	return &BadgerStore{db: db}
}

// Save persists an audit event.
func (s *BadgerStore) Save(ctx context.Context, event *Event) error {
	return s.db.Put(ctx, Collection, event.ID, event)
}

// Query retrieves events matching the filter, most recent first.
func (s *BadgerStore) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	events, err := store.All[Event](ctx, s.db, Collection)
	if err != nil {
		return nil, err
	}

	matched := events[:0]
	for i := range events {
		if matchesFilter(&events[i], &filter) {
			matched = append(matched, events[i])
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []Event{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// Count returns the number of events matching the filter.
func (s *BadgerStore) Count(ctx context.Context, filter QueryFilter) (int, error) {
	events, err := store.All[Event](ctx, s.db, Collection)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range events {
		if matchesFilter(&events[i], &filter) {
			count++
		}
	}
	return count, nil
}

// matchesFilter returns true if the event matches all filter criteria.
func matchesFilter(event *Event, filter *QueryFilter) bool {
	if filter.Resource != "" && event.Resource != filter.Resource {
		return false
	}
	if filter.Action != "" && event.Action != filter.Action {
		return false
	}
	if filter.Outcome != "" && event.Outcome != filter.Outcome {
		return false
	}
	if filter.ActorID != "" && event.Actor.ID != filter.ActorID {
		return false
	}
	if filter.TargetID != "" && event.TargetID != filter.TargetID {
		return false
	}
	if filter.StartTime != nil && event.Timestamp.Before(*filter.StartTime) {
		return false
	}
	if filter.EndTime != nil && event.Timestamp.After(*filter.EndTime) {
		return false
	}
	if filter.SearchText != "" {
		search := strings.ToLower(filter.SearchText)
		if !strings.Contains(strings.ToLower(event.Details), search) &&
			!strings.Contains(strings.ToLower(event.Action), search) {
			return false
		}
	}
	return true
}
