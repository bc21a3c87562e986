// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/store"
)

var testActor = Actor{ID: "user-1", Name: "Dr. Chen", Role: "health"}

func TestRecorderFillsDefaults(t *testing.T) {
	mem := NewMemoryStore(10)
	r := NewRecorder(mem)

	r.Record(context.Background(), Event{Resource: "reminders", Action: "create", Actor: testActor})

	events, err := mem.Query(context.Background(), QueryFilter{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.Timestamp.IsZero())
	assert.Equal(t, OutcomeSuccess, ev.Outcome)
}

func TestRecorderSuccessAndFailureOutcomes(t *testing.T) {
	mem := NewMemoryStore(10)
	r := NewRecorder(mem)
	ctx := context.Background()

	r.Success(ctx, "users", "create", "u1", testActor, "created account")
	r.Failure(ctx, "users", "create", "", testActor, "duplicate username")

	failures, err := mem.Query(ctx, QueryFilter{Outcome: OutcomeFailure})
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "duplicate username", failures[0].Details)

	count, err := mem.Count(ctx, QueryFilter{Resource: "users"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecorderWithMetadata(t *testing.T) {
	mem := NewMemoryStore(10)
	r := NewRecorder(mem)

	r.WithMetadata(context.Background(),
		Event{Resource: "reminders", Action: "snooze", Actor: testActor},
		map[string]int{"minutes": 30})

	events, err := mem.Query(context.Background(), QueryFilter{Action: "snooze"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.JSONEq(t, `{"minutes":30}`, string(events[0].Metadata))
}

func TestMemoryStoreTrimsAtCapacity(t *testing.T) {
	mem := NewMemoryStore(10)
	ctx := context.Background()

	for i := 0; i < 11; i++ {
		require.NoError(t, mem.Save(ctx, &Event{ID: "e", Resource: "users", Action: "create"}))
	}
	assert.Less(t, mem.Len(), 11)
}

func newBadgerAuditStore(t *testing.T) *BadgerStore {
	t.Helper()
	db, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewBadgerStore(db)
}

func TestBadgerStoreQueryFilters(t *testing.T) {
	s := newBadgerAuditStore(t)
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	seed := []Event{
		{ID: "1", Timestamp: base, Resource: "reminders", Action: "create", Outcome: OutcomeSuccess, Actor: testActor, Details: "created medication reminder"},
		{ID: "2", Timestamp: base.Add(time.Minute), Resource: "reminders", Action: "snooze", Outcome: OutcomeSuccess, Actor: testActor, TargetID: "rem-1"},
		{ID: "3", Timestamp: base.Add(2 * time.Minute), Resource: "users", Action: "create", Outcome: OutcomeSuccess, Actor: Actor{ID: "admin-1"}},
	}
	for i := range seed {
		require.NoError(t, s.Save(ctx, &seed[i]))
	}

	events, err := s.Query(ctx, QueryFilter{Resource: "reminders"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	// Most recent first.
	assert.Equal(t, "2", events[0].ID)

	events, err = s.Query(ctx, QueryFilter{ActorID: "admin-1"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "3", events[0].ID)

	events, err = s.Query(ctx, QueryFilter{SearchText: "medication"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ID)

	from := base.Add(30 * time.Second)
	count, err := s.Count(ctx, QueryFilter{StartTime: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestBadgerStoreLimitAndOffset(t *testing.T) {
	s := newBadgerAuditStore(t)
	ctx := context.Background()
	base := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		ev := Event{
			ID:        string(rune('a' + i)),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Resource:  "users",
			Action:    "update",
		}
		require.NoError(t, s.Save(ctx, &ev))
	}

	events, err := s.Query(ctx, QueryFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "e", events[0].ID)

	events, err = s.Query(ctx, QueryFilter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "c", events[0].ID)

	events, err = s.Query(ctx, QueryFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, events)
}
