// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

// Package models defines the persisted entities and the shared enum
// vocabularies every resource service normalizes against. Keeping the
// allow-lists here avoids the copy-pasted per-module validation the services
// would otherwise accumulate.
package models

import "strings"

// Role identifies a user's dashboard role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleHealth    Role = "health"
	RoleEmergency Role = "emergency"
	RoleInventory Role = "inventory"
	RoleCrew      Role = "crew"
)

// Priority is the shared priority scale used by reminders, incidents,
// follow-ups and inventory alerts.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Severity is the shared severity scale for emergency incidents and alerts.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

// ReminderType classifies a reminder.
type ReminderType string

const (
	ReminderMedication ReminderType = "medication"
	ReminderFollowup   ReminderType = "followup"
	ReminderTest       ReminderType = "test"
	ReminderOther      ReminderType = "other"
)

// ReminderStatus is the reminder lifecycle state.
type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "scheduled"
	ReminderPending   ReminderStatus = "pending"
	ReminderSnoozed   ReminderStatus = "snoozed"
	ReminderCompleted ReminderStatus = "completed"
	ReminderMissed    ReminderStatus = "missed"
	ReminderCancelled ReminderStatus = "cancelled"
)

// RecurrencePattern describes a recurring reminder. Descriptive only: nothing
// in the system expands a completed recurring reminder into its next
// occurrence.
type RecurrencePattern string

const (
	RecurDaily   RecurrencePattern = "daily"
	RecurWeekly  RecurrencePattern = "weekly"
	RecurMonthly RecurrencePattern = "monthly"
	RecurCustom  RecurrencePattern = "custom"
)

// IncidentStatus is the emergency incident lifecycle state.
type IncidentStatus string

const (
	IncidentOpen     IncidentStatus = "open"
	IncidentResolved IncidentStatus = "resolved"
	IncidentClosed   IncidentStatus = "closed"
)

// AnnouncementStatus is the admin announcement state.
type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"
	AnnouncementPublished AnnouncementStatus = "published"
	AnnouncementArchived  AnnouncementStatus = "archived"
)

// AlertStatus is the inventory alert state.
type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// AlertType classifies an inventory alert.
type AlertType string

const (
	AlertLowStock   AlertType = "low_stock"
	AlertExpiring   AlertType = "expiring"
	AlertExpired    AlertType = "expired"
	AlertOutOfStock AlertType = "out_of_stock"
)

// RestockStatus is the restock order state.
type RestockStatus string

const (
	RestockPending   RestockStatus = "pending"
	RestockOrdered   RestockStatus = "ordered"
	RestockCompleted RestockStatus = "completed"
	RestockCancelled RestockStatus = "cancelled"
)

// VaccinationStatus is derived on read from the next-dose date; it is never
// persisted.
type VaccinationStatus string

const (
	VaccinationUpToDate VaccinationStatus = "up_to_date"
	VaccinationDueSoon  VaccinationStatus = "due_soon"
	VaccinationOverdue  VaccinationStatus = "overdue"
)

// normalize lowercases value and returns it when it appears in allowed,
// otherwise it returns fallback. All enum-like request fields pass through
// this so unrecognized values degrade to a default instead of failing.
func normalize(value string, allowed []string, fallback string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

// NormalizeRole maps arbitrary input to a known role, defaulting to crew.
func NormalizeRole(v string) Role {
	return Role(normalize(v, []string{"admin", "health", "emergency", "inventory", "crew"}, string(RoleCrew)))
}

// NormalizePriority maps arbitrary input to a known priority, defaulting to medium.
func NormalizePriority(v string) Priority {
	return Priority(normalize(v, []string{"low", "medium", "high", "critical"}, string(PriorityMedium)))
}

// NormalizeSeverity maps arbitrary input to a known severity, defaulting to moderate.
func NormalizeSeverity(v string) Severity {
	return Severity(normalize(v, []string{"minor", "moderate", "major", "critical"}, string(SeverityModerate)))
}

// NormalizeReminderType maps arbitrary input to a reminder type, defaulting to other.
func NormalizeReminderType(v string) ReminderType {
	return ReminderType(normalize(v, []string{"medication", "followup", "test", "other"}, string(ReminderOther)))
}

// NormalizeReminderStatus maps arbitrary input to a reminder status,
// defaulting to scheduled.
func NormalizeReminderStatus(v string) ReminderStatus {
	return ReminderStatus(normalize(v,
		[]string{"scheduled", "pending", "snoozed", "completed", "missed", "cancelled"},
		string(ReminderScheduled)))
}

// NormalizeRecurrencePattern maps arbitrary input to a recurrence pattern,
// defaulting to daily.
func NormalizeRecurrencePattern(v string) RecurrencePattern {
	return RecurrencePattern(normalize(v, []string{"daily", "weekly", "monthly", "custom"}, string(RecurDaily)))
}

// NormalizeIncidentStatus maps arbitrary input to an incident status, defaulting to open.
func NormalizeIncidentStatus(v string) IncidentStatus {
	return IncidentStatus(normalize(v, []string{"open", "resolved", "closed"}, string(IncidentOpen)))
}

// NormalizeAnnouncementStatus maps arbitrary input to an announcement status,
// defaulting to draft.
func NormalizeAnnouncementStatus(v string) AnnouncementStatus {
	return AnnouncementStatus(normalize(v, []string{"draft", "published", "archived"}, string(AnnouncementDraft)))
}

// NormalizeAlertStatus maps arbitrary input to an alert status, defaulting to active.
func NormalizeAlertStatus(v string) AlertStatus {
	return AlertStatus(normalize(v, []string{"active", "acknowledged", "resolved"}, string(AlertActive)))
}

// NormalizeAlertType maps arbitrary input to an alert type, defaulting to low_stock.
func NormalizeAlertType(v string) AlertType {
	return AlertType(normalize(v, []string{"low_stock", "expiring", "expired", "out_of_stock"}, string(AlertLowStock)))
}

// NormalizeRestockStatus maps arbitrary input to a restock status, defaulting to pending.
func NormalizeRestockStatus(v string) RestockStatus {
	return RestockStatus(normalize(v, []string{"pending", "ordered", "completed", "cancelled"}, string(RestockPending)))
}
