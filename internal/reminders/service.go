// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package reminders owns the reminder state machine: scheduling, snoozing,
// completion, rescheduling, and the read-time derived status (overdue,
// due-today). Listing and plain field edits are ordinary CRUD; the transition
// operations live here because they are the only stateful part of the system.
//
// There is no scheduler: overdue detection is purely a read-time derived flag,
// and nothing transitions a reminder into "missed" automatically. Recurrence
// fields are stored descriptively and never expanded.
package reminders

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/metrics"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

// Collection is the document store collection reminders live in.
const Collection = "reminders"

// DefaultSnoozeMinutes is applied when a snooze request carries no duration.
const DefaultSnoozeMinutes = 60

// Service owns reminder persistence and lifecycle transitions.
type Service struct {
	db       *store.Store
	recorder *audit.Recorder

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewService creates a reminder service.
func NewService(db *store.Store, recorder *audit.Recorder) *Service {
	return &Service{
		db:       db,
		recorder: recorder,
		now:      time.Now,
	}
}

// Actor identifies who performs a mutating operation.
type Actor struct {
	ID   string
	Name string
	Role string
}

func (a Actor) audit() audit.Actor {
	return audit.Actor{ID: a.ID, Name: a.Name, Role: a.Role}
}

// CreateInput carries the fields accepted on reminder creation.
type CreateInput struct {
	Type              string
	CrewID            string
	Title             string
	Notes             string
	Status            string
	ScheduledDate     string
	ScheduledTime     string
	IsRecurring       bool
	RecurrencePattern string
	RecurrenceEnd     string
	Medication        *models.MedicationDetails
	Followup          *models.FollowupDetails
	AlertSettings     *models.AlertSettings
}

// Create persists a new reminder. Type and status are normalized against the
// shared enums; the initial status defaults to scheduled.
func (s *Service) Create(ctx context.Context, in CreateInput, actor Actor) (*models.Reminder, error) {
	now := s.now()

	rem := &models.Reminder{
		ID:            uuid.New().String(),
		Type:          models.NormalizeReminderType(in.Type),
		CrewID:        in.CrewID,
		Title:         in.Title,
		Notes:         in.Notes,
		Status:        models.ReminderScheduled,
		ScheduledDate: in.ScheduledDate,
		ScheduledTime: in.ScheduledTime,
		IsRecurring:   in.IsRecurring,
		RecurrenceEnd: in.RecurrenceEnd,
		Medication:    in.Medication,
		Followup:      in.Followup,
	}
	if in.Status != "" {
		rem.Status = models.NormalizeReminderStatus(in.Status)
	}
	if in.IsRecurring {
		rem.RecurrencePattern = models.NormalizeRecurrencePattern(in.RecurrencePattern)
	}
	if in.AlertSettings != nil {
		rem.AlertSettings = *in.AlertSettings
	}
	rem.StampCreate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, Collection, rem.ID, rem); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, Collection, "create", rem.ID, actor.audit(),
		"created "+string(rem.Type)+" reminder for crew "+rem.CrewID)
	return rem, nil
}

// Get loads a reminder by id. Returns store.ErrNotFound when the id does not
// resolve.
func (s *Service) Get(ctx context.Context, id string) (*models.Reminder, error) {
	var rem models.Reminder
	if err := s.db.Get(ctx, Collection, id, &rem); err != nil {
		return nil, err
	}
	return &rem, nil
}

// UpdateInput carries the fields accepted on a partial update. Nil pointers
// leave the stored value untouched.
type UpdateInput struct {
	Type              *string
	Title             *string
	Notes             *string
	Status            *string
	ScheduledDate     *string
	ScheduledTime     *string
	IsRecurring       *bool
	RecurrencePattern *string
	RecurrenceEnd     *string
	Medication        *models.MedicationDetails
	Followup          *models.FollowupDetails
	AlertSettings     *models.AlertSettings
}

// Update merges the supplied fields into the stored reminder, re-normalizing
// any enum fields touched.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput, actor Actor) (*models.Reminder, error) {
	rem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Type != nil {
		rem.Type = models.NormalizeReminderType(*in.Type)
	}
	if in.Title != nil {
		rem.Title = *in.Title
	}
	if in.Notes != nil {
		rem.Notes = *in.Notes
	}
	if in.Status != nil {
		rem.Status = models.NormalizeReminderStatus(*in.Status)
	}
	if in.ScheduledDate != nil {
		rem.ScheduledDate = *in.ScheduledDate
	}
	if in.ScheduledTime != nil {
		rem.ScheduledTime = *in.ScheduledTime
	}
	if in.IsRecurring != nil {
		rem.IsRecurring = *in.IsRecurring
	}
	if in.RecurrencePattern != nil {
		rem.RecurrencePattern = models.NormalizeRecurrencePattern(*in.RecurrencePattern)
	}
	if in.RecurrenceEnd != nil {
		rem.RecurrenceEnd = *in.RecurrenceEnd
	}
	if in.Medication != nil {
		rem.Medication = in.Medication
	}
	if in.Followup != nil {
		rem.Followup = in.Followup
	}
	if in.AlertSettings != nil {
		rem.AlertSettings = *in.AlertSettings
	}
	rem.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, Collection, rem.ID, rem); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, Collection, "update", rem.ID, actor.audit(), "updated reminder")
	return rem, nil
}

// Delete removes a reminder permanently. Returns store.ErrNotFound when the
// id does not resolve; nothing is mutated in that case.
func (s *Service) Delete(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, Collection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, Collection, "delete", id, actor.audit(), "deleted reminder")
	return nil
}

// Snooze transitions the reminder into snoozed, bumping the snooze count and
// setting snoozedUntil to now + minutes. Zero or negative minutes fall back
// to DefaultSnoozeMinutes.
func (s *Service) Snooze(ctx context.Context, id string, minutes int, actor Actor) (*models.Reminder, error) {
	rem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if minutes <= 0 {
		minutes = DefaultSnoozeMinutes
	}

	now := s.now()
	until := now.Add(time.Duration(minutes) * time.Minute)

	rem.Status = models.ReminderSnoozed
	rem.SnoozeCount++
	rem.SnoozedUntil = &until
	rem.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, Collection, rem.ID, rem); err != nil {
		return nil, err
	}

	metrics.RecordReminderTransition("snooze")
	s.recorder.Success(ctx, Collection, "snooze", rem.ID, actor.audit(), "snoozed reminder")
	return rem, nil
}

// Complete transitions the reminder into completed, recording the actor and
// notes. Repeating the call leaves the reminder completed with the latest
// call's metadata; completion metadata is never duplicated.
func (s *Service) Complete(ctx context.Context, id string, actor Actor, notes string) (*models.Reminder, error) {
	rem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	rem.Status = models.ReminderCompleted
	rem.CompletedAt = &now
	rem.CompletedBy = actor.ID
	rem.CompletionNotes = notes
	rem.SnoozedUntil = nil
	rem.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, Collection, rem.ID, rem); err != nil {
		return nil, err
	}

	metrics.RecordReminderTransition("complete")
	s.recorder.Success(ctx, Collection, "complete", rem.ID, actor.audit(), "completed reminder")
	return rem, nil
}

// Reschedule updates the scheduled date and, when supplied, the time. With no
// explicit status a snoozed reminder reactivates to scheduled; an explicit
// status overrides that.
func (s *Service) Reschedule(ctx context.Context, id, newDate, newTime, status string, actor Actor) (*models.Reminder, error) {
	rem, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rem.ScheduledDate = newDate
	if newTime != "" {
		rem.ScheduledTime = newTime
	}
	if status != "" {
		rem.Status = models.NormalizeReminderStatus(status)
	} else if rem.Status == models.ReminderSnoozed {
		rem.Status = models.ReminderScheduled
	}
	if rem.Status != models.ReminderSnoozed {
		rem.SnoozedUntil = nil
	}
	rem.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, Collection, rem.ID, rem); err != nil {
		return nil, err
	}

	metrics.RecordReminderTransition("reschedule")
	s.recorder.Success(ctx, Collection, "reschedule", rem.ID, actor.audit(),
		"rescheduled reminder to "+newDate)
	return rem, nil
}

// Overdue returns all active reminders (scheduled or pending) whose effective
// due time is in the past, ordered by scheduled date ascending.
func (s *Service) Overdue(ctx context.Context) ([]models.Reminder, error) {
	all, err := store.All[models.Reminder](ctx, s.db, Collection)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []models.Reminder
	for i := range all {
		if all[i].Status.IsActive() && all[i].IsOverdue(now) {
			out = append(out, all[i])
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].ScheduledDate != out[j].ScheduledDate {
			return out[i].ScheduledDate < out[j].ScheduledDate
		}
		return out[i].ScheduledTime < out[j].ScheduledTime
	})

	return out, nil
}

// DueToday returns all active reminders whose scheduled date falls within
// today's calendar boundaries, ordered by scheduled time ascending.
func (s *Service) DueToday(ctx context.Context) ([]models.Reminder, error) {
	all, err := store.All[models.Reminder](ctx, s.db, Collection)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []models.Reminder
	for i := range all {
		if all[i].Status.IsActive() && all[i].IsDueToday(now) {
			out = append(out, all[i])
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledTime < out[j].ScheduledTime
	})

	return out, nil
}

// Filter selects reminders for List.
type Filter struct {
	CrewID   string
	Status   string
	Type     string
	DateFrom string
	DateTo   string
	Query    string
	Sort     string
	Page     paging.Params
}

// ListResult is one page of reminders with dashboard aggregates.
type ListResult struct {
	Items    []ReminderView `json:"items"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	Pages    int            `json:"pages"`
	ByStatus map[string]int `json:"byStatus"`
	ByType   map[string]int `json:"byType"`
}

// ReminderView is a reminder with its read-time derived flags attached.
type ReminderView struct {
	models.Reminder
	IsOverdue  bool `json:"isOverdue"`
	IsDueToday bool `json:"isDueToday"`
}

// View attaches the derived flags to a reminder.
func (s *Service) View(rem models.Reminder) ReminderView {
	now := s.now()
	return ReminderView{
		Reminder:   rem,
		IsOverdue:  rem.IsOverdue(now),
		IsDueToday: rem.IsDueToday(now),
	}
}

// List returns one page of reminders matching the filter plus status/type
// histograms over the full match set.
func (s *Service) List(ctx context.Context, f Filter) (*ListResult, error) {
	all, err := store.All[models.Reminder](ctx, s.db, Collection)
	if err != nil {
		return nil, err
	}

	var matched []models.Reminder
	for i := range all {
		if s.matches(&all[i], &f) {
			matched = append(matched, all[i])
		}
	}

	byStatus := make(map[string]int)
	byType := make(map[string]int)
	for i := range matched {
		byStatus[string(matched[i].Status)]++
		byType[string(matched[i].Type)]++
	}

	sortReminders(matched, f.Sort)

	page := paging.Slice(matched, f.Page)
	items := make([]ReminderView, 0, len(page))
	for i := range page {
		items = append(items, s.View(page[i]))
	}

	return &ListResult{
		Items:    items,
		Total:    len(matched),
		Page:     f.Page.Page,
		Pages:    paging.Pages(len(matched), f.Page.Limit),
		ByStatus: byStatus,
		ByType:   byType,
	}, nil
}

// matches reports whether the reminder passes every filter criterion.
func (s *Service) matches(rem *models.Reminder, f *Filter) bool {
	if f.CrewID != "" && rem.CrewID != f.CrewID {
		return false
	}
	if f.Status != "" && string(rem.Status) != f.Status {
		return false
	}
	if f.Type != "" && string(rem.Type) != f.Type {
		return false
	}
	if f.DateFrom != "" && rem.ScheduledDate < f.DateFrom {
		return false
	}
	if f.DateTo != "" && rem.ScheduledDate > f.DateTo {
		return false
	}
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(rem.Title), q) &&
			!strings.Contains(strings.ToLower(rem.Notes), q) {
			return false
		}
	}
	return true
}

// sortReminders orders reminders by the given sort key, defaulting to
// scheduled date then time ascending.
func sortReminders(items []models.Reminder, key string) {
	less := func(i, j int) bool {
		if items[i].ScheduledDate != items[j].ScheduledDate {
			return items[i].ScheduledDate < items[j].ScheduledDate
		}
		return items[i].ScheduledTime < items[j].ScheduledTime
	}

	switch key {
	case "created":
		less = func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) }
	case "-created":
		less = func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) }
	case "-date":
		less = func(i, j int) bool {
			if items[i].ScheduledDate != items[j].ScheduledDate {
				return items[i].ScheduledDate > items[j].ScheduledDate
			}
			return items[i].ScheduledTime > items[j].ScheduledTime
		}
	}

	sort.Slice(items, less)
}
