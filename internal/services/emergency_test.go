// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

func newEmergencyService(t *testing.T, now time.Time) *EmergencyService {
	db, recorder, _ := newTestStore(t)
	svc := NewEmergencyService(db, recorder)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateIncidentDuplicateCodeConflicts(t *testing.T) {
	svc := newEmergencyService(t, time.Now())
	ctx := context.Background()

	_, err := svc.CreateIncident(ctx, CreateIncidentInput{Code: "inc-001", Title: "Fire drill injury"}, testActor)
	require.NoError(t, err)

	// Codes compare uppercased.
	_, err = svc.CreateIncident(ctx, CreateIncidentInput{Code: "INC-001", Title: "Other"}, testActor)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestResolveIncidentStampsResolution(t *testing.T) {
	now := time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)
	svc := newEmergencyService(t, now)
	ctx := context.Background()

	inc, err := svc.CreateIncident(ctx, CreateIncidentInput{
		Code: "INC-002", Title: "Galley burn", Severity: "major",
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentOpen, inc.Status)

	resolved, err := svc.ResolveIncident(ctx, inc.ID, "treated on board", testActor)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentResolved, resolved.Status)
	assert.Equal(t, testActor.ID, resolved.ResolvedBy)
	assert.Equal(t, "treated on board", resolved.ResolutionNotes)
	require.NotNil(t, resolved.ResolvedAt)
	assert.Equal(t, now, *resolved.ResolvedAt)
}

func TestCreateReportRequiresExistingIncident(t *testing.T) {
	svc := newEmergencyService(t, time.Now())
	ctx := context.Background()

	_, err := svc.CreateReport(ctx, CreateReportInput{IncidentID: "nope", Title: "Orphan"}, testActor)
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Standalone reports need no incident reference.
	rep, err := svc.CreateReport(ctx, CreateReportInput{Title: "Quarterly summary", ReportDate: "2026-05-01"}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.SeverityModerate, rep.Severity)
}

func TestListIncidentsHistograms(t *testing.T) {
	svc := newEmergencyService(t, time.Now())
	ctx := context.Background()

	for i, c := range []struct{ sev, status string }{
		{"minor", ""}, {"major", ""}, {"major", "resolved"},
	} {
		inc, err := svc.CreateIncident(ctx, CreateIncidentInput{
			Code: "INC-10" + string(rune('0'+i)), Title: "t", Severity: c.sev,
		}, testActor)
		require.NoError(t, err)
		if c.status == "resolved" {
			_, err = svc.ResolveIncident(ctx, inc.ID, "", testActor)
			require.NoError(t, err)
		}
	}

	res, err := svc.ListIncidents(ctx, IncidentFilter{Page: paging.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.ByStatus["open"])
	assert.Equal(t, 1, res.ByStatus["resolved"])
	assert.Equal(t, 2, res.BySeverity["major"])
}
