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
)

func newMedicalService(t *testing.T, now time.Time) *MedicalService {
	db, recorder, _ := newTestStore(t)
	svc := NewMedicalService(db, recorder)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateRecordNormalizesPriority(t *testing.T) {
	svc := newMedicalService(t, time.Now())

	rec, err := svc.CreateRecord(context.Background(), CreateRecordInput{
		CrewID: "crew-1", RecordType: "injury", Title: "Sprained ankle",
		Priority: "urgent", // unknown, degrades to medium
		Date:     "2026-04-02",
	}, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, rec.Priority)
}

func TestAttachToRecordAppends(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	svc := newMedicalService(t, now)
	ctx := context.Background()

	rec, err := svc.CreateRecord(ctx, CreateRecordInput{
		CrewID: "crew-1", RecordType: "checkup", Title: "Annual", Date: "2026-04-02",
	}, testActor)
	require.NoError(t, err)

	updated, err := svc.AttachToRecord(ctx, rec.ID, models.Attachment{
		Filename: "xray.png", StoredPath: "medical/xray.png", SizeBytes: 2048, UploadedAt: now,
	}, testActor)
	require.NoError(t, err)
	require.Len(t, updated.Attachments, 1)
	assert.Equal(t, "xray.png", updated.Attachments[0].Filename)
}

func TestListRecordsDateRangeAndCrewScope(t *testing.T) {
	svc := newMedicalService(t, time.Now())
	ctx := context.Background()

	for _, c := range []struct{ crew, date, prio string }{
		{"crew-1", "2026-03-01", "low"},
		{"crew-1", "2026-04-01", "high"},
		{"crew-2", "2026-04-01", "high"},
	} {
		_, err := svc.CreateRecord(ctx, CreateRecordInput{
			CrewID: c.crew, RecordType: "injury", Title: "t", Priority: c.prio, Date: c.date,
		}, testActor)
		require.NoError(t, err)
	}

	res, err := svc.ListRecords(ctx, RecordFilter{
		CrewID: "crew-1", DateFrom: "2026-03-15",
		Page: paging.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, 1, res.ByPriority["high"])
}

func TestVaccinationDerivedStatusInList(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := newMedicalService(t, now)
	ctx := context.Background()

	for _, c := range []struct{ vaccine, nextDue string }{
		{"Tetanus", "2026-03-01"},  // overdue
		{"Hep B", "2026-04-15"},    // due soon
		{"Typhoid", "2027-04-01"},  // up to date
		{"Influenza", ""},          // no next dose -> up to date
	} {
		_, err := svc.CreateVaccination(ctx, CreateVaccinationInput{
			CrewID: "crew-1", Vaccine: c.vaccine, DateGiven: "2025-04-01", NextDueDate: c.nextDue,
		}, testActor)
		require.NoError(t, err)
	}

	res, err := svc.ListVaccinations(ctx, VaccinationFilter{Page: paging.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Total)
	assert.Equal(t, 1, res.ByStatus["overdue"])
	assert.Equal(t, 1, res.ByStatus["due_soon"])
	assert.Equal(t, 2, res.ByStatus["up_to_date"])

	filtered, err := svc.ListVaccinations(ctx, VaccinationFilter{
		Status: "overdue", Page: paging.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	require.Len(t, filtered.Items, 1)
	assert.Equal(t, "Tetanus", filtered.Items[0].Vaccine)
}
