// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleResourceMatrix(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	tests := []struct {
		role     string
		resource string
		act      string
		want     bool
	}{
		{"health", "medical", "write", true},
		{"health", "vaccinations", "write", true},
		{"health", "reminders", "write", true},
		{"health", "education", "write", true},
		{"health", "reports", "read", true},
		{"health", "inventory", "read", false},
		{"health", "users", "read", false},
		{"health", "audit", "read", false},

		{"inventory", "inventory", "write", true},
		{"inventory", "medical", "read", false},
		{"inventory", "emergency", "read", false},

		{"emergency", "emergency", "write", true},
		{"emergency", "reports", "write", true},
		{"emergency", "medical", "read", false},

		// Crew reads its own slice of the health surface, never writes it.
		{"crew", "self", "read", true},
		{"crew", "reminders", "read", true},
		{"crew", "reminders", "write", false},
		{"crew", "medical", "read", true},
		{"crew", "medical", "write", false},
		{"crew", "vaccinations", "read", true},
		{"crew", "vaccinations", "write", false},
		{"crew", "inventory", "read", false},
		{"crew", "announcements", "write", false},
		{"crew", "users", "read", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, e.Allowed(tt.role, tt.resource, tt.act),
			"role %s %s on %s", tt.role, tt.act, tt.resource)
	}
}

func TestAdminInheritsEveryResource(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	for _, resource := range []string{
		"inventory", "medical", "vaccinations", "reminders", "education",
		"emergency", "reports", "users", "announcements", "audit", "self",
	} {
		for _, act := range []string{"read", "write"} {
			assert.True(t, e.Allowed("admin", resource, act), "admin %s on %s", act, resource)
		}
	}
}

func TestUnknownRoleDenied(t *testing.T) {
	e, err := NewEnforcer()
	require.NoError(t, err)

	assert.False(t, e.Allowed("stowaway", "medical", "read"))
	assert.False(t, e.Allowed("", "medical", "read"))
}
