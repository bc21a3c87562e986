// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package reminders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

var testActor = Actor{ID: "user-1", Name: "Dr. Chen", Role: "health"}

// newTestService builds a service on an in-memory store with a fixed clock.
func newTestService(t *testing.T, now time.Time) (*Service, *audit.MemoryStore) {
	t.Helper()

	db, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auditStore := audit.NewMemoryStore(100)
	svc := NewService(db, audit.NewRecorder(auditStore))
	svc.now = func() time.Time { return now }
	return svc, auditStore
}

func TestCreateDefaults(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, auditStore := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type:          "medication",
		CrewID:        "crew-7",
		Title:         "Insulin dose",
		ScheduledDate: "2026-03-11",
		ScheduledTime: "08:00",
	}, testActor)
	require.NoError(t, err)

	assert.NotEmpty(t, rem.ID)
	assert.Equal(t, models.ReminderMedication, rem.Type)
	assert.Equal(t, models.ReminderScheduled, rem.Status)
	assert.Equal(t, 0, rem.SnoozeCount)
	assert.Equal(t, now, rem.CreatedAt)
	assert.Equal(t, testActor.ID, rem.CreatedBy)

	count, err := auditStore.Count(ctx, audit.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateNormalizesUnknownEnums(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)

	rem, err := svc.Create(context.Background(), CreateInput{
		Type:              "bogus-type",
		Status:            "bogus-status",
		CrewID:            "crew-7",
		Title:             "Check",
		ScheduledDate:     "2026-03-11",
		IsRecurring:       true,
		RecurrencePattern: "fortnightly",
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, models.ReminderOther, rem.Type)
	assert.Equal(t, models.ReminderScheduled, rem.Status)
	assert.Equal(t, models.RecurDaily, rem.RecurrencePattern)
}

func TestGetNotFound(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSnoozeIncrementsCountAndSetsUntil(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "medication", CrewID: "crew-7", Title: "Dose",
		ScheduledDate: "2026-03-10", ScheduledTime: "08:00",
	}, testActor)
	require.NoError(t, err)

	snoozed, err := svc.Snooze(ctx, rem.ID, 30, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSnoozed, snoozed.Status)
	assert.Equal(t, 1, snoozed.SnoozeCount)
	require.NotNil(t, snoozed.SnoozedUntil)
	assert.Equal(t, now.Add(30*time.Minute), *snoozed.SnoozedUntil)

	snoozed, err = svc.Snooze(ctx, rem.ID, 0, testActor)
	require.NoError(t, err)
	assert.Equal(t, 2, snoozed.SnoozeCount)
	assert.Equal(t, now.Add(DefaultSnoozeMinutes*time.Minute), *snoozed.SnoozedUntil)
}

func TestSnoozeNotFound(t *testing.T) {
	svc, _ := newTestService(t, time.Now())

	_, err := svc.Snooze(context.Background(), "nope", 30, testActor)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteSetsMetadataOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "followup", CrewID: "crew-7", Title: "BP check",
		ScheduledDate: "2026-03-10",
	}, testActor)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, rem.ID, testActor, "all normal")
	require.NoError(t, err)
	assert.Equal(t, models.ReminderCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, now, *done.CompletedAt)
	assert.Equal(t, testActor.ID, done.CompletedBy)
	assert.Equal(t, "all normal", done.CompletionNotes)

	// Completing again stays completed with the latest metadata, no duplication.
	again, err := svc.Complete(ctx, rem.ID, testActor, "rechecked")
	require.NoError(t, err)
	assert.Equal(t, models.ReminderCompleted, again.Status)
	assert.Equal(t, "rechecked", again.CompletionNotes)
}

func TestCompleteClearsSnoozeDeadline(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "medication", CrewID: "crew-7", Title: "Dose",
		ScheduledDate: "2026-03-10",
	}, testActor)
	require.NoError(t, err)

	_, err = svc.Snooze(ctx, rem.ID, 15, testActor)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, rem.ID, testActor, "")
	require.NoError(t, err)
	assert.Nil(t, done.SnoozedUntil)
	assert.Equal(t, 1, done.SnoozeCount)
}

func TestRescheduleReactivatesSnoozed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "test", CrewID: "crew-7", Title: "Blood panel",
		ScheduledDate: "2026-03-10", ScheduledTime: "10:00",
	}, testActor)
	require.NoError(t, err)

	_, err = svc.Snooze(ctx, rem.ID, 15, testActor)
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, rem.ID, "2026-03-12", "14:30", "scheduled", testActor)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", moved.ScheduledDate)
	assert.Equal(t, "14:30", moved.ScheduledTime)
	assert.Equal(t, models.ReminderScheduled, moved.Status)
	assert.Nil(t, moved.SnoozedUntil)
	// Snooze history survives rescheduling.
	assert.Equal(t, 1, moved.SnoozeCount)
}

func TestRescheduleWithoutStatusReactivates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "test", CrewID: "crew-7", Title: "Blood panel",
		ScheduledDate: "2026-03-10", ScheduledTime: "10:00",
	}, testActor)
	require.NoError(t, err)

	_, err = svc.Snooze(ctx, rem.ID, 15, testActor)
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, rem.ID, "2026-03-12", "", "", testActor)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderScheduled, moved.Status)
	assert.Nil(t, moved.SnoozedUntil)

	// An explicit status still wins over the default.
	held, err := svc.Reschedule(ctx, rem.ID, "2026-03-13", "", "pending", testActor)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderPending, held.Status)
}

func TestRescheduleKeepsTimeWhenOmitted(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "test", CrewID: "crew-7", Title: "Blood panel",
		ScheduledDate: "2026-03-10", ScheduledTime: "10:00",
	}, testActor)
	require.NoError(t, err)

	moved, err := svc.Reschedule(ctx, rem.ID, "2026-03-12", "", "", testActor)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", moved.ScheduledDate)
	assert.Equal(t, "10:00", moved.ScheduledTime)
}

func TestDeleteNotFoundLeavesStoreUntouched(t *testing.T) {
	svc, auditStore := newTestService(t, time.Now())
	ctx := context.Background()

	err := svc.Delete(ctx, "nope", testActor)
	assert.ErrorIs(t, err, store.ErrNotFound)

	count, err := auditStore.Count(ctx, audit.QueryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestOverdueExcludesTerminalAndSorts(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	mk := func(title, date, hm string) *models.Reminder {
		rem, err := svc.Create(ctx, CreateInput{
			Type: "medication", CrewID: "crew-7", Title: title,
			ScheduledDate: date, ScheduledTime: hm,
		}, testActor)
		require.NoError(t, err)
		return rem
	}

	mk("later today", "2026-03-10", "18:00") // future, not overdue
	mk("this morning", "2026-03-10", "08:00")
	mk("yesterday", "2026-03-09", "08:00")
	done := mk("finished", "2026-03-08", "08:00")
	_, err := svc.Complete(ctx, done.ID, testActor, "")
	require.NoError(t, err)

	overdue, err := svc.Overdue(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, "yesterday", overdue[0].Title)
	assert.Equal(t, "this morning", overdue[1].Title)
}

func TestOverdueAllDayUsesDateBoundary(t *testing.T) {
	now := time.Date(2026, 3, 10, 0, 30, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	// No scheduled time: due at the start of its date, so already overdue
	// half an hour into the day.
	_, err := svc.Create(ctx, CreateInput{
		Type: "other", CrewID: "crew-7", Title: "all day",
		ScheduledDate: "2026-03-10",
	}, testActor)
	require.NoError(t, err)

	overdue, err := svc.Overdue(ctx)
	require.NoError(t, err)
	assert.Len(t, overdue, 1)
}

func TestDueTodaySortsByTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	for _, c := range []struct{ title, date, hm string }{
		{"evening", "2026-03-10", "20:00"},
		{"morning", "2026-03-10", "07:00"},
		{"tomorrow", "2026-03-11", "07:00"},
	} {
		_, err := svc.Create(ctx, CreateInput{
			Type: "medication", CrewID: "crew-7", Title: c.title,
			ScheduledDate: c.date, ScheduledTime: c.hm,
		}, testActor)
		require.NoError(t, err)
	}

	due, err := svc.DueToday(ctx)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "morning", due[0].Title)
	assert.Equal(t, "evening", due[1].Title)
}

func TestListFiltersAndAggregates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	for _, c := range []struct{ typ, crew, title, date string }{
		{"medication", "crew-1", "Dose A", "2026-03-09"},
		{"medication", "crew-1", "Dose B", "2026-03-10"},
		{"followup", "crew-2", "BP check", "2026-03-11"},
	} {
		_, err := svc.Create(ctx, CreateInput{
			Type: c.typ, CrewID: c.crew, Title: c.title, ScheduledDate: c.date,
		}, testActor)
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, Filter{
		CrewID: "crew-1",
		Page:   paging.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.ByType["medication"])
	assert.Equal(t, 2, res.ByStatus["scheduled"])
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Dose A", res.Items[0].Title)
	assert.True(t, res.Items[0].IsOverdue)
	assert.True(t, res.Items[1].IsDueToday)
}

func TestListTextQueryAndPaging(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	for i, title := range []string{"Insulin morning", "Insulin evening", "Vitamin D"} {
		_, err := svc.Create(ctx, CreateInput{
			Type: "medication", CrewID: "crew-1", Title: title,
			ScheduledDate: "2026-03-1" + string(rune('0'+i)),
		}, testActor)
		require.NoError(t, err)
	}

	res, err := svc.List(ctx, Filter{
		Query: "insulin",
		Page:  paging.Params{Page: 1, Limit: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Pages)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Insulin morning", res.Items[0].Title)
}

func TestUpdatePartialMerge(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	svc, _ := newTestService(t, now)
	ctx := context.Background()

	rem, err := svc.Create(ctx, CreateInput{
		Type: "medication", CrewID: "crew-7", Title: "Dose",
		Notes: "with food", ScheduledDate: "2026-03-10", ScheduledTime: "08:00",
	}, testActor)
	require.NoError(t, err)

	title := "Dose (adjusted)"
	updated, err := svc.Update(ctx, rem.ID, UpdateInput{Title: &title}, testActor)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, "with food", updated.Notes)
	assert.Equal(t, "08:00", updated.ScheduledTime)
	assert.Equal(t, testActor.ID, updated.UpdatedBy)
}
