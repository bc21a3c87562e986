// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

// User is an account with a dashboard role. Crew members additionally carry a
// CrewProfile; CrewID is the loosely-typed reference other entities point at.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Active   bool   `json:"active"`

	// PasswordHash is the bcrypt hash. It must survive the JSON roundtrip
	// through the document store; API responses go through PublicUser, which
	// does not carry it.
	PasswordHash string `json:"passwordHash"`

	// CrewID is set for crew accounts and referenced by health records.
	CrewID string `json:"crewId,omitempty"`

	// Profile is the versioned crew profile sub-structure. It replaces the
	// free-form "extra" JSON blob the user record used to carry.
	Profile *CrewProfile `json:"profile,omitempty"`

	Stamp
}

// CrewProfile is an explicit, versioned value object for crew-specific
// profile data.
type CrewProfile struct {
	Version          int    `json:"version"`
	Rank             string `json:"rank,omitempty"`
	Vessel           string `json:"vessel,omitempty"`
	Cabin            string `json:"cabin,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
	BloodType        string `json:"bloodType,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	Nationality      string `json:"nationality,omitempty"`
}

// CrewProfileVersion is the current schema version for CrewProfile.
const CrewProfileVersion = 1

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID       string       `json:"id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Name     string       `json:"name"`
	Role     Role         `json:"role"`
	Active   bool         `json:"active"`
	CrewID   string       `json:"crewId,omitempty"`
	Profile  *CrewProfile `json:"profile,omitempty"`
	Stamp
}

// Public returns the client-safe projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		Role:     u.Role,
		Active:   u.Active,
		CrewID:   u.CrewID,
		Profile:  u.Profile,
		Stamp:    u.Stamp,
	}
}
