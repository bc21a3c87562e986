// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/voyagecare/voyagecare/internal/audit"
	"github.com/voyagecare/voyagecare/internal/models"
	"github.com/voyagecare/voyagecare/internal/paging"
	"github.com/voyagecare/voyagecare/internal/store"
)

// Collections owned by the inventory service.
const (
	ItemsCollection   = "inventory_items"
	AlertsCollection  = "inventory_alerts"
	RestockCollection = "restock_orders"
)

// ExpiryWarningWindow is how far ahead the expiring-items query looks.
const ExpiryWarningWindow = 30 * 24 * time.Hour

// InventoryService manages medical supply items, the alerts raised on them,
// and restock orders.
type InventoryService struct {
	db       *store.Store
	recorder *audit.Recorder
	now      func() time.Time
}

// NewInventoryService creates an inventory service.
func NewInventoryService(db *store.Store, recorder *audit.Recorder) *InventoryService {
	return &InventoryService{db: db, recorder: recorder, now: time.Now}
}

// --- Items ---

// CreateItemInput carries the fields accepted on item creation.
type CreateItemInput struct {
	Name        string
	Category    string
	Description string
	Unit        string
	Quantity    int
	MinQuantity int
	Location    string
	ExpiryDate  string
	BatchNumber string
	Supplier    string
}

// CreateItem adds a supply item to the inventory.
func (s *InventoryService) CreateItem(ctx context.Context, in CreateItemInput, actor Actor) (*models.InventoryItem, error) {
	item := &models.InventoryItem{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Unit:        in.Unit,
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Location:    in.Location,
		ExpiryDate:  in.ExpiryDate,
		BatchNumber: in.BatchNumber,
		Supplier:    in.Supplier,
	}
	item.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, ItemsCollection, item.ID, item); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, ItemsCollection, "create", item.ID, actor.audit(),
		"added item "+item.Name)
	return item, nil
}

// GetItem loads an item by id.
func (s *InventoryService) GetItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Get(ctx, ItemsCollection, id, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemFilter selects items for ListItems.
type ItemFilter struct {
	Category string
	LowStock bool
	Query    string
	Page     paging.Params
}

// ItemView is an item with its derived stock/expiry flags attached.
type ItemView struct {
	models.InventoryItem
	IsLowStock bool `json:"isLowStock"`
	IsExpired  bool `json:"isExpired"`
}

// ItemListResult is one page of items with dashboard aggregates.
type ItemListResult struct {
	Items      []ItemView     `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Pages      int            `json:"pages"`
	ByCategory map[string]int `json:"byCategory"`
	LowStock   int            `json:"lowStock"`
	Expired    int            `json:"expired"`
}

// ListItems returns one page of items matching the filter plus category and
// stock-condition aggregates over the full match set, ordered by name.
func (s *InventoryService) ListItems(ctx context.Context, f ItemFilter) (*ItemListResult, error) {
	all, err := store.All[models.InventoryItem](ctx, s.db, ItemsCollection)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var matched []models.InventoryItem
	for i := range all {
		it := &all[i]
		if f.Category != "" && it.Category != f.Category {
			continue
		}
		if f.LowStock && !it.IsLowStock() {
			continue
		}
		if !matchText(f.Query, it.Name, it.Description, it.BatchNumber) {
			continue
		}
		matched = append(matched, all[i])
	}

	byCategory := make(map[string]int)
	lowStock, expired := 0, 0
	for i := range matched {
		byCategory[matched[i].Category]++
		if matched[i].IsLowStock() {
			lowStock++
		}
		if matched[i].IsExpired(now) {
			expired++
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	page := paging.Slice(matched, f.Page)
	items := make([]ItemView, 0, len(page))
	for i := range page {
		items = append(items, ItemView{
			InventoryItem: page[i],
			IsLowStock:    page[i].IsLowStock(),
			IsExpired:     page[i].IsExpired(now),
		})
	}

	return &ItemListResult{
		Items:      items,
		Total:      len(matched),
		Page:       f.Page.Page,
		Pages:      paging.Pages(len(matched), f.Page.Limit),
		ByCategory: byCategory,
		LowStock:   lowStock,
		Expired:    expired,
	}, nil
}

// UpdateItemInput carries the fields accepted on a partial item update.
type UpdateItemInput struct {
	Name        *string
	Category    *string
	Description *string
	Unit        *string
	Quantity    *int
	MinQuantity *int
	Location    *string
	ExpiryDate  *string
	BatchNumber *string
	Supplier    *string
}

// UpdateItem merges the supplied fields into the stored item.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, in UpdateItemInput, actor Actor) (*models.InventoryItem, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.Quantity != nil {
		item.Quantity = *in.Quantity
	}
	if in.MinQuantity != nil {
		item.MinQuantity = *in.MinQuantity
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = *in.ExpiryDate
	}
	if in.BatchNumber != nil {
		item.BatchNumber = *in.BatchNumber
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	item.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, ItemsCollection, item.ID, item); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, ItemsCollection, "update", item.ID, actor.audit(), "updated item "+item.Name)
	return item, nil
}

// DeleteItem removes an item permanently.
func (s *InventoryService) DeleteItem(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, ItemsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, ItemsCollection, "delete", id, actor.audit(), "deleted item")
	return nil
}

// LowStockItems returns every item at or below its minimum quantity, lowest
// stock ratio first.
func (s *InventoryService) LowStockItems(ctx context.Context) ([]models.InventoryItem, error) {
	all, err := store.All[models.InventoryItem](ctx, s.db, ItemsCollection)
	if err != nil {
		return nil, err
	}

	var out []models.InventoryItem
	for i := range all {
		if all[i].IsLowStock() {
			out = append(out, all[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

// ExpiringItems returns every item that is expired or expires within the
// warning window, earliest expiry first.
func (s *InventoryService) ExpiringItems(ctx context.Context) ([]models.InventoryItem, error) {
	all, err := store.All[models.InventoryItem](ctx, s.db, ItemsCollection)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var out []models.InventoryItem
	for i := range all {
		if all[i].ExpiresWithin(now, ExpiryWarningWindow) {
			out = append(out, all[i])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate < out[j].ExpiryDate })
	return out, nil
}

// --- Alerts ---

// CreateAlertInput carries the fields accepted on alert creation. Item name
// and category are resolved from the referenced item, not taken from the
// caller.
type CreateAlertInput struct {
	ItemID   string
	Type     string
	Severity string
	Message  string
}

// CreateAlert raises an alert on an inventory item. The referenced item must
// exist; its name and category are denormalized onto the alert.
func (s *InventoryService) CreateAlert(ctx context.Context, in CreateAlertInput, actor Actor) (*models.InventoryAlert, error) {
	item, err := s.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	alert := &models.InventoryAlert{
		ID:       uuid.New().String(),
		ItemID:   item.ID,
		ItemName: item.Name,
		Category: item.Category,
		Type:     models.NormalizeAlertType(in.Type),
		Severity: models.NormalizeSeverity(in.Severity),
		Status:   models.AlertActive,
		Message:  in.Message,
	}
	alert.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, AlertsCollection, alert.ID, alert); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AlertsCollection, "create", alert.ID, actor.audit(),
		"raised "+string(alert.Type)+" alert on "+item.Name)
	return alert, nil
}

// GetAlert loads an alert by id.
func (s *InventoryService) GetAlert(ctx context.Context, id string) (*models.InventoryAlert, error) {
	var alert models.InventoryAlert
	if err := s.db.Get(ctx, AlertsCollection, id, &alert); err != nil {
		return nil, err
	}
	return &alert, nil
}

// AlertFilter selects alerts for ListAlerts.
type AlertFilter struct {
	Status string
	Type   string
	ItemID string
	Page   paging.Params
}

// AlertListResult is one page of alerts with status/severity histograms.
type AlertListResult struct {
	Items      []models.InventoryAlert `json:"items"`
	Total      int                     `json:"total"`
	Page       int                     `json:"page"`
	Pages      int                     `json:"pages"`
	ByStatus   map[string]int          `json:"byStatus"`
	BySeverity map[string]int          `json:"bySeverity"`
}

// ListAlerts returns one page of alerts, newest first.
func (s *InventoryService) ListAlerts(ctx context.Context, f AlertFilter) (*AlertListResult, error) {
	all, err := store.All[models.InventoryAlert](ctx, s.db, AlertsCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.InventoryAlert
	for i := range all {
		a := &all[i]
		if f.Status != "" && string(a.Status) != f.Status {
			continue
		}
		if f.Type != "" && string(a.Type) != f.Type {
			continue
		}
		if f.ItemID != "" && a.ItemID != f.ItemID {
			continue
		}
		matched = append(matched, all[i])
	}

	byStatus := make(map[string]int)
	bySeverity := make(map[string]int)
	for i := range matched {
		byStatus[string(matched[i].Status)]++
		bySeverity[string(matched[i].Severity)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return &AlertListResult{
		Items:      paging.Slice(matched, f.Page),
		Total:      len(matched),
		Page:       f.Page.Page,
		Pages:      paging.Pages(len(matched), f.Page.Limit),
		ByStatus:   byStatus,
		BySeverity: bySeverity,
	}, nil
}

// AcknowledgeAlert stamps the acknowledgement sub-record and moves the alert
// to acknowledged.
func (s *InventoryService) AcknowledgeAlert(ctx context.Context, id string, actor Actor) (*models.InventoryAlert, error) {
	alert, err := s.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	alert.Status = models.AlertAcknowledged
	alert.AcknowledgedBy = actor.ID
	alert.AcknowledgedByName = actor.Name
	alert.AcknowledgedAt = &now
	alert.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, AlertsCollection, alert.ID, alert); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AlertsCollection, "acknowledge", alert.ID, actor.audit(), "acknowledged alert")
	return alert, nil
}

// ResolveAlert moves the alert to resolved.
func (s *InventoryService) ResolveAlert(ctx context.Context, id string, actor Actor) (*models.InventoryAlert, error) {
	alert, err := s.GetAlert(ctx, id)
	if err != nil {
		return nil, err
	}

	alert.Status = models.AlertResolved
	alert.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, AlertsCollection, alert.ID, alert); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, AlertsCollection, "resolve", alert.ID, actor.audit(), "resolved alert")
	return alert, nil
}

// DeleteAlert removes an alert permanently.
func (s *InventoryService) DeleteAlert(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, AlertsCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, AlertsCollection, "delete", id, actor.audit(), "deleted alert")
	return nil
}

// --- Restock orders ---

// CreateRestockInput carries the fields accepted on restock order creation.
type CreateRestockInput struct {
	ItemID        string
	Quantity      int
	Supplier      string
	Notes         string
	NewExpiryDate string
}

// CreateRestock opens a restock order against an existing item.
func (s *InventoryService) CreateRestock(ctx context.Context, in CreateRestockInput, actor Actor) (*models.RestockOrder, error) {
	item, err := s.GetItem(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}

	order := &models.RestockOrder{
		ID:            uuid.New().String(),
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      in.Quantity,
		Status:        models.RestockPending,
		Supplier:      in.Supplier,
		Notes:         in.Notes,
		NewExpiryDate: in.NewExpiryDate,
	}
	order.StampCreate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, RestockCollection, order.ID, order); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, RestockCollection, "create", order.ID, actor.audit(),
		"opened restock order for "+item.Name)
	return order, nil
}

// GetRestock loads a restock order by id.
func (s *InventoryService) GetRestock(ctx context.Context, id string) (*models.RestockOrder, error) {
	var order models.RestockOrder
	if err := s.db.Get(ctx, RestockCollection, id, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// RestockFilter selects restock orders for ListRestocks.
type RestockFilter struct {
	Status string
	ItemID string
	Page   paging.Params
}

// RestockListResult is one page of restock orders with a status histogram.
type RestockListResult struct {
	Items    []models.RestockOrder `json:"items"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	Pages    int                   `json:"pages"`
	ByStatus map[string]int        `json:"byStatus"`
}

// ListRestocks returns one page of restock orders, newest first.
func (s *InventoryService) ListRestocks(ctx context.Context, f RestockFilter) (*RestockListResult, error) {
	all, err := store.All[models.RestockOrder](ctx, s.db, RestockCollection)
	if err != nil {
		return nil, err
	}

	var matched []models.RestockOrder
	for i := range all {
		if f.Status != "" && string(all[i].Status) != f.Status {
			continue
		}
		if f.ItemID != "" && all[i].ItemID != f.ItemID {
			continue
		}
		matched = append(matched, all[i])
	}

	byStatus := make(map[string]int)
	for i := range matched {
		byStatus[string(matched[i].Status)]++
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	return &RestockListResult{
		Items:    paging.Slice(matched, f.Page),
		Total:    len(matched),
		Page:     f.Page.Page,
		Pages:    paging.Pages(len(matched), f.Page.Limit),
		ByStatus: byStatus,
	}, nil
}

// UpdateRestockStatus moves an order through pending/ordered/cancelled. Use
// CompleteRestock for the completing transition; it carries the inventory
// side effect.
func (s *InventoryService) UpdateRestockStatus(ctx context.Context, id, status string, actor Actor) (*models.RestockOrder, error) {
	order, err := s.GetRestock(ctx, id)
	if err != nil {
		return nil, err
	}

	order.Status = models.NormalizeRestockStatus(status)
	order.StampUpdate(actor.ID, actor.Name, s.now())

	if err := s.db.Put(ctx, RestockCollection, order.ID, order); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, RestockCollection, "update", order.ID, actor.audit(),
		"restock order status "+string(order.Status))
	return order, nil
}

// CompleteRestock marks the order completed and applies the replenishment to
// the referenced item: quantity is incremented and, when the order carries a
// new expiry date, the item's expiry is replaced.
func (s *InventoryService) CompleteRestock(ctx context.Context, id string, actor Actor) (*models.RestockOrder, error) {
	order, err := s.GetRestock(ctx, id)
	if err != nil {
		return nil, err
	}

	item, err := s.GetItem(ctx, order.ItemID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item.Quantity += order.Quantity
	if order.NewExpiryDate != "" {
		item.ExpiryDate = order.NewExpiryDate
	}
	item.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, ItemsCollection, item.ID, item); err != nil {
		return nil, err
	}

	order.Status = models.RestockCompleted
	order.CompletedAt = &now
	order.StampUpdate(actor.ID, actor.Name, now)

	if err := s.db.Put(ctx, RestockCollection, order.ID, order); err != nil {
		return nil, err
	}

	s.recorder.Success(ctx, RestockCollection, "complete", order.ID, actor.audit(),
		"completed restock of "+item.Name)
	return order, nil
}

// DeleteRestock removes a restock order permanently.
func (s *InventoryService) DeleteRestock(ctx context.Context, id string, actor Actor) error {
	if err := s.db.Delete(ctx, RestockCollection, id); err != nil {
		return err
	}

	s.recorder.Success(ctx, RestockCollection, "delete", id, actor.audit(), "deleted restock order")
	return nil
}
