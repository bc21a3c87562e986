// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

import "time"

// Date and time layouts used on reminder scheduling fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Reminder is a scheduled medication/follow-up/test task tracked through a
// small status lifecycle. It is the only entity with state-machine shape; the
// transitions live in the reminders service.
type Reminder struct {
	ID     string         `json:"id"`
	Type   ReminderType   `json:"type"`
	CrewID string         `json:"crewId"`
	Title  string         `json:"title"`
	Notes  string         `json:"notes,omitempty"`
	Status ReminderStatus `json:"status"`

	// ScheduledDate is a calendar date (2006-01-02) and is always present.
	// ScheduledTime is an optional "HH:MM"; absence means an all-day reminder.
	ScheduledDate string `json:"scheduledDate"`
	ScheduledTime string `json:"scheduledTime,omitempty"`

	// Completion metadata, set only on transition into completed.
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CompletedBy     string     `json:"completedBy,omitempty"`
	CompletionNotes string     `json:"completionNotes,omitempty"`

	// Snooze metadata, meaningful only while status is snoozed.
	SnoozeCount  int        `json:"snoozeCount"`
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`

	// Recurrence is descriptive only; no code path expands a completed
	// recurring reminder into its next occurrence.
	IsRecurring       bool              `json:"isRecurring"`
	RecurrencePattern RecurrencePattern `json:"recurrencePattern,omitempty"`
	RecurrenceEnd     string            `json:"recurrenceEnd,omitempty"`

	// Type-specific payloads, contextual by Type. Not a discriminated union
	// in storage: both may be present, callers read the one matching Type.
	Medication *MedicationDetails `json:"medication,omitempty"`
	Followup   *FollowupDetails   `json:"followup,omitempty"`

	AlertSettings AlertSettings `json:"alertSettings"`

	Stamp
}

// MedicationDetails is the medication payload of a reminder.
type MedicationDetails struct {
	Name         string   `json:"name"`
	Dosage       string   `json:"dosage,omitempty"`
	Frequency    string   `json:"frequency,omitempty"`
	AdminTimes   []string `json:"adminTimes,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
}

// FollowupDetails is the follow-up payload of a reminder.
type FollowupDetails struct {
	FollowupType  string   `json:"followupType"`
	LastCheckDate string   `json:"lastCheckDate,omitempty"`
	NextCheckDate string   `json:"nextCheckDate,omitempty"`
	Priority      Priority `json:"priority,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// AlertSettings holds delivery preferences for a reminder.
type AlertSettings struct {
	Enabled         bool     `json:"enabled"`
	LeadTimeMinutes int      `json:"leadTimeMinutes,omitempty"`
	Methods         []string `json:"methods,omitempty"`
}

// IsTerminal reports whether the status admits no further transitions.
func (s ReminderStatus) IsTerminal() bool {
	return s == ReminderCompleted || s == ReminderCancelled
}

// IsActive reports whether the reminder counts toward due/overdue queries.
// Pending is treated as equivalent to scheduled.
func (s ReminderStatus) IsActive() bool {
	return s == ReminderScheduled || s == ReminderPending
}

// EffectiveDueTime combines ScheduledDate with ScheduledTime into the instant
// the reminder falls due. When ScheduledTime is absent only the date boundary
// applies (due at start of day). Returns the zero time when ScheduledDate is
// unparseable.
func (r *Reminder) EffectiveDueTime(loc *time.Location) time.Time {
	day, err := time.ParseInLocation(DateLayout, r.ScheduledDate, loc)
	if err != nil {
		return time.Time{}
	}

	if r.ScheduledTime != "" {
		if hm, err := time.Parse(TimeLayout, r.ScheduledTime); err == nil {
			return day.Add(time.Duration(hm.Hour())*time.Hour + time.Duration(hm.Minute())*time.Minute)
		}
	}

	return day
}

// IsOverdue reports whether the reminder's effective due time has passed.
// Completed and cancelled reminders are never overdue.
func (r *Reminder) IsOverdue(now time.Time) bool {
	if r.Status.IsTerminal() {
		return false
	}

	due := r.EffectiveDueTime(now.Location())
	if due.IsZero() {
		return false
	}
	return now.After(due)
}

// IsDueToday reports whether ScheduledDate falls on today's calendar date,
// independent of status.
func (r *Reminder) IsDueToday(now time.Time) bool {
	return r.ScheduledDate == now.Format(DateLayout)
}
