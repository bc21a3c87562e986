// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

import "time"

// Announcement is an admin-published notice shown on every dashboard.
type Announcement struct {
	ID       string             `json:"id"`
	Title    string             `json:"title"`
	Body     string             `json:"body"`
	Priority Priority           `json:"priority"`
	Status   AnnouncementStatus `json:"status"`
	Roles    []string           `json:"roles,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`

	PublishedAt *time.Time `json:"publishedAt,omitempty"`

	Stamp
}

// Message is a direct message between two users.
type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"senderId"`
	SenderName  string     `json:"senderName,omitempty"`
	RecipientID string     `json:"recipientId"`
	Subject     string     `json:"subject,omitempty"`
	Body        string     `json:"body"`
	Read        bool       `json:"read"`
	ReadAt      *time.Time `json:"readAt,omitempty"`

	Stamp
}

// HealthEducationSession is a scheduled health-education session for the crew.
type HealthEducationSession struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Topic       string `json:"topic,omitempty"`
	Description string `json:"description,omitempty"`
	Presenter   string `json:"presenter,omitempty"`
	SessionDate string `json:"sessionDate"`
	SessionTime string `json:"sessionTime,omitempty"`
	Location    string `json:"location,omitempty"`

	Attachments []Attachment `json:"attachments,omitempty"`

	Stamp
}
