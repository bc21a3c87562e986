// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/store"
)

var testActor = Actor{ID: "user-1", Name: "Dr. Chen", Role: "health"}

// newTestStore opens an in-memory store plus an audit recorder backed by a
// memory sink the tests can inspect.
func newTestStore(t *testing.T) (*store.Store, *audit.Recorder, *audit.MemoryStore) {
	t.Helper()

	db, err := store.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sink := audit.NewMemoryStore(1000)
	return db, audit.NewRecorder(sink), sink
}
