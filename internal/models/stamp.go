// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

import "time"

// Stamp carries creator/updater identity and timestamps. Embedded by every
// persisted entity; resource services fill it on create and update.
type Stamp struct {
	CreatedBy     string    `json:"createdBy,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedBy     string    `json:"updatedBy,omitempty"`
	UpdatedByName string    `json:"updatedByName,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// StampCreate fills creation and update fields for a newly created entity.
func (s *Stamp) StampCreate(actorID, actorName string, now time.Time) {
	s.CreatedBy = actorID
	s.CreatedByName = actorName
	s.CreatedAt = now
	s.UpdatedBy = actorID
	s.UpdatedByName = actorName
	s.UpdatedAt = now
}

// StampUpdate fills update fields on a modified entity.
func (s *Stamp) StampUpdate(actorID, actorName string, now time.Time) {
	s.UpdatedBy = actorID
	s.UpdatedByName = actorName
	s.UpdatedAt = now
}
