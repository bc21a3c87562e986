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

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

func newInventoryService(t *testing.T, now time.Time) (*InventoryService, *audit.MemoryStore) {
	db, recorder, sink := newTestStore(t)
	svc := NewInventoryService(db, recorder)
	svc.now = func() time.Time { return now }
	return svc, sink
}

func TestCreateAlertResolvesItemFields(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newInventoryService(t, now)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemInput{
		Name: "Saline 0.9%", Category: "fluids", Quantity: 4, MinQuantity: 10,
	}, testActor)
	require.NoError(t, err)

	alert, err := svc.CreateAlert(ctx, CreateAlertInput{
		ItemID: item.ID, Type: "low_stock", Severity: "major", Message: "below minimum",
	}, testActor)
	require.NoError(t, err)

	assert.Equal(t, "Saline 0.9%", alert.ItemName)
	assert.Equal(t, "fluids", alert.Category)
	assert.Equal(t, models.AlertActive, alert.Status)
}

func TestCreateAlertUnknownItem(t *testing.T) {
	svc, _ := newInventoryService(t, time.Now())

	_, err := svc.CreateAlert(context.Background(), CreateAlertInput{ItemID: "nope", Type: "low_stock"}, testActor)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAcknowledgeAlertStampsSubRecord(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newInventoryService(t, now)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemInput{Name: "Gauze", Category: "dressings", Quantity: 1, MinQuantity: 5}, testActor)
	require.NoError(t, err)
	alert, err := svc.CreateAlert(ctx, CreateAlertInput{ItemID: item.ID, Type: "low_stock", Severity: "minor"}, testActor)
	require.NoError(t, err)

	acked, err := svc.AcknowledgeAlert(ctx, alert.ID, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.AlertAcknowledged, acked.Status)
	assert.Equal(t, testActor.ID, acked.AcknowledgedBy)
	assert.Equal(t, testActor.Name, acked.AcknowledgedByName)
	require.NotNil(t, acked.AcknowledgedAt)
	assert.Equal(t, now, *acked.AcknowledgedAt)
}

func TestCompleteRestockIncrementsItemAndSetsExpiry(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, sink := newInventoryService(t, now)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemInput{
		Name: "Amoxicillin", Category: "antibiotics", Quantity: 3, MinQuantity: 10,
		ExpiryDate: "2026-05-01",
	}, testActor)
	require.NoError(t, err)

	order, err := svc.CreateRestock(ctx, CreateRestockInput{
		ItemID: item.ID, Quantity: 20, NewExpiryDate: "2027-05-01",
	}, testActor)
	require.NoError(t, err)

	done, err := svc.CompleteRestock(ctx, order.ID, testActor)
	require.NoError(t, err)
	assert.Equal(t, models.RestockCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 23, got.Quantity)
	assert.Equal(t, "2027-05-01", got.ExpiryDate)

	completes, err := sink.Query(ctx, audit.QueryFilter{Resource: RestockCollection, Action: "complete"})
	require.NoError(t, err)
	assert.Len(t, completes, 1)
}

func TestCompleteRestockKeepsExpiryWhenAbsent(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newInventoryService(t, now)
	ctx := context.Background()

	item, err := svc.CreateItem(ctx, CreateItemInput{
		Name: "Ibuprofen", Category: "analgesics", Quantity: 5, MinQuantity: 10,
		ExpiryDate: "2026-12-01",
	}, testActor)
	require.NoError(t, err)

	order, err := svc.CreateRestock(ctx, CreateRestockInput{ItemID: item.ID, Quantity: 10}, testActor)
	require.NoError(t, err)
	_, err = svc.CompleteRestock(ctx, order.ID, testActor)
	require.NoError(t, err)

	got, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-12-01", got.ExpiryDate)
}

func TestListItemsLowStockFilterAndAggregates(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newInventoryService(t, now)
	ctx := context.Background()

	for _, c := range []struct {
		name   string
		qty    int
		min    int
		expiry string
	}{
		{"Saline", 2, 10, ""},
		{"Gauze", 50, 10, ""},
		{"Aspirin", 5, 5, "2026-01-01"}, // low and expired
	} {
		_, err := svc.CreateItem(ctx, CreateItemInput{
			Name: c.name, Category: "misc", Quantity: c.qty, MinQuantity: c.min, ExpiryDate: c.expiry,
		}, testActor)
		require.NoError(t, err)
	}

	res, err := svc.ListItems(ctx, ItemFilter{LowStock: true, Page: paging.Params{Page: 1, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.LowStock)
	assert.Equal(t, 1, res.Expired)
	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[0].IsLowStock)
}

func TestExpiringItemsWindow(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newInventoryService(t, now)
	ctx := context.Background()

	for _, c := range []struct{ name, expiry string }{
		{"soon", "2026-04-20"},
		{"later", "2026-12-01"},
		{"past", "2026-03-01"},
		{"none", ""},
	} {
		_, err := svc.CreateItem(ctx, CreateItemInput{
			Name: c.name, Category: "misc", Quantity: 10, MinQuantity: 1, ExpiryDate: c.expiry,
		}, testActor)
		require.NoError(t, err)
	}

	expiring, err := svc.ExpiringItems(ctx)
	require.NoError(t, err)
	require.Len(t, expiring, 2)
	assert.Equal(t, "past", expiring[0].Name)
	assert.Equal(t, "soon", expiring[1].Name)
}
