// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

import "time"

// EmergencyIncident is an incident tracked by the emergency officer.
// Code is unique across incidents; creating a duplicate code is a conflict.
type EmergencyIncident struct {
	ID          string         `json:"id"`
	Code        string         `json:"code"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Severity    Severity       `json:"severity"`
	Status      IncidentStatus `json:"status"`
	CrewIDs     []string       `json:"crewIds,omitempty"`

	// Resolution sub-record, stamped by the resolve action.
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolvedByName  string     `json:"resolvedByName,omitempty"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	ResolutionNotes string     `json:"resolutionNotes,omitempty"`

	Stamp
}

// EmergencyReport is a post-incident report filed by the emergency officer.
type EmergencyReport struct {
	ID         string   `json:"id"`
	IncidentID string   `json:"incidentId,omitempty"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary,omitempty"`
	Findings   string   `json:"findings,omitempty"`
	Actions    string   `json:"actions,omitempty"`
	Severity   Severity `json:"severity"`
	ReportDate string   `json:"reportDate"`

	Stamp
}
