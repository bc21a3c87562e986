// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

import "time"

// MedicalRecord is a health-event entry on a crew member's file.
type MedicalRecord struct {
	ID         string   `json:"id"`
	CrewID     string   `json:"crewId"`
	RecordType string   `json:"recordType"`
	Title      string   `json:"title"`
	Diagnosis  string   `json:"diagnosis,omitempty"`
	Treatment  string   `json:"treatment,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Priority   Priority `json:"priority"`

	// Date is the calendar date of the event (2006-01-02).
	Date string `json:"date"`

	// Attachments reference uploaded files on local disk.
	Attachments []Attachment `json:"attachments,omitempty"`

	Stamp
}

// Vaccination is a crew member's vaccination entry. Its status is derived on
// read, never stored.
type Vaccination struct {
	ID          string `json:"id"`
	CrewID      string `json:"crewId"`
	Vaccine     string `json:"vaccine"`
	DoseNumber  int    `json:"doseNumber,omitempty"`
	DateGiven   string `json:"dateGiven"`
	NextDueDate string `json:"nextDueDate,omitempty"`
	Administrator string `json:"administrator,omitempty"`
	BatchNumber string `json:"batchNumber,omitempty"`
	Notes       string `json:"notes,omitempty"`

	Stamp
}

// DueSoonWindow is the lead window in which a vaccination counts as due_soon.
const DueSoonWindow = 30 * 24 * time.Hour

// DerivedStatus computes the vaccination status from NextDueDate: overdue when
// past, due_soon within DueSoonWindow, up_to_date otherwise (including when no
// next dose is scheduled).
func (v *Vaccination) DerivedStatus(now time.Time) VaccinationStatus {
	if v.NextDueDate == "" {
		return VaccinationUpToDate
	}
	due, err := time.ParseInLocation(DateLayout, v.NextDueDate, now.Location())
	if err != nil {
		return VaccinationUpToDate
	}
	if now.After(due) {
		return VaccinationOverdue
	}
	if due.Sub(now) <= DueSoonWindow {
		return VaccinationDueSoon
	}
	return VaccinationUpToDate
}

// Attachment references a file stored on local disk by the uploads package.
type Attachment struct {
	Filename   string    `json:"filename"`
	StoredPath string    `json:"storedPath"`
	MimeType   string    `json:"mimeType,omitempty"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}
