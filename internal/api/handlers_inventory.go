// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/voyagecare/voyagecare/internal/services"
)

// itemRequest is the POST /inventory/items body.
type itemRequest struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	Quantity    int    `json:"quantity" validate:"min=0"`
	MinQuantity int    `json:"minQuantity" validate:"min=0"`
	Location    string `json:"location"`
	ExpiryDate  string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	BatchNumber string `json:"batchNumber"`
	Supplier    string `json:"supplier"`
}

// itemUpdateRequest is the PUT /inventory/items/{id} body.
type itemUpdateRequest struct {
	Name        *string `json:"name"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
	Quantity    *int    `json:"quantity" validate:"omitempty,min=0"`
	MinQuantity *int    `json:"minQuantity" validate:"omitempty,min=0"`
	Location    *string `json:"location"`
	ExpiryDate  *string `json:"expiryDate" validate:"omitempty,datetime=2006-01-02"`
	BatchNumber *string `json:"batchNumber"`
	Supplier    *string `json:"supplier"`
}

// ListInventoryItems handles GET /inventory/items.
func (h *Handlers) ListInventoryItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lowStock, _ := strconv.ParseBool(q.Get("lowStock"))

	res, err := h.inventory.ListItems(r.Context(), services.ItemFilter{
		Category: q.Get("category"),
		LowStock: lowStock,
		Query:    q.Get("q"),
		Page:     pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// GetInventoryItem handles GET /inventory/items/{id}.
func (h *Handlers) GetInventoryItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.inventory.GetItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(item)
}

// CreateInventoryItem handles POST /inventory/items.
func (h *Handlers) CreateInventoryItem(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req itemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.inventory.CreateItem(r.Context(), services.CreateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Location:    req.Location,
		ExpiryDate:  req.ExpiryDate,
		BatchNumber: req.BatchNumber,
		Supplier:    req.Supplier,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(item)
}

// UpdateInventoryItem handles PUT /inventory/items/{id}.
func (h *Handlers) UpdateInventoryItem(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req itemUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.inventory.UpdateItem(r.Context(), chi.URLParam(r, "id"), services.UpdateItemInput{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		Location:    req.Location,
		ExpiryDate:  req.ExpiryDate,
		BatchNumber: req.BatchNumber,
		Supplier:    req.Supplier,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(item)
}

// DeleteInventoryItem handles DELETE /inventory/items/{id}.
func (h *Handlers) DeleteInventoryItem(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.inventory.DeleteItem(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// LowStockItems handles GET /inventory/items/low-stock.
func (h *Handlers) LowStockItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.LowStockItems(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]interface{}{"items": items, "total": len(items)})
}

// ExpiringItems handles GET /inventory/items/expiring.
func (h *Handlers) ExpiringItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.ExpiringItems(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(map[string]interface{}{"items": items, "total": len(items)})
}

// alertRequest is the POST /inventory/alerts body.
type alertRequest struct {
	ItemID   string `json:"itemId" validate:"required"`
	Type     string `json:"type" validate:"required"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ListInventoryAlerts handles GET /inventory/alerts.
func (h *Handlers) ListInventoryAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.inventory.ListAlerts(r.Context(), services.AlertFilter{
		Status: q.Get("status"),
		Type:   q.Get("type"),
		ItemID: q.Get("itemId"),
		Page:   pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// CreateInventoryAlert handles POST /inventory/alerts.
func (h *Handlers) CreateInventoryAlert(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req alertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	alert, err := h.inventory.CreateAlert(r.Context(), services.CreateAlertInput{
		ItemID:   req.ItemID,
		Type:     req.Type,
		Severity: req.Severity,
		Message:  req.Message,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(alert)
}

// AcknowledgeInventoryAlert handles POST /inventory/alerts/{id}/acknowledge.
func (h *Handlers) AcknowledgeInventoryAlert(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	alert, err := h.inventory.AcknowledgeAlert(r.Context(), chi.URLParam(r, "id"), serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(alert)
}

// ResolveInventoryAlert handles POST /inventory/alerts/{id}/resolve.
func (h *Handlers) ResolveInventoryAlert(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	alert, err := h.inventory.ResolveAlert(r.Context(), chi.URLParam(r, "id"), serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(alert)
}

// DeleteInventoryAlert handles DELETE /inventory/alerts/{id}.
func (h *Handlers) DeleteInventoryAlert(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.inventory.DeleteAlert(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}

// restockRequest is the POST /restock-orders body.
type restockRequest struct {
	ItemID        string `json:"itemId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	Supplier      string `json:"supplier"`
	Notes         string `json:"notes"`
	NewExpiryDate string `json:"newExpiryDate" validate:"omitempty,datetime=2006-01-02"`
}

// restockStatusRequest is the PUT /restock-orders/{id} body.
type restockStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ListRestockOrders handles GET /restock-orders.
func (h *Handlers) ListRestockOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.inventory.ListRestocks(r.Context(), services.RestockFilter{
		Status: q.Get("status"),
		ItemID: q.Get("itemId"),
		Page:   pagingParams(r, h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(res)
}

// CreateRestockOrder handles POST /restock-orders.
func (h *Handlers) CreateRestockOrder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req restockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.inventory.CreateRestock(r.Context(), services.CreateRestockInput{
		ItemID:        req.ItemID,
		Quantity:      req.Quantity,
		Supplier:      req.Supplier,
		Notes:         req.Notes,
		NewExpiryDate: req.NewExpiryDate,
	}, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Created(order)
}

// UpdateRestockOrder handles PUT /restock-orders/{id} (status changes short
// of completion).
func (h *Handlers) UpdateRestockOrder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	var req restockStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.inventory.UpdateRestockStatus(r.Context(), chi.URLParam(r, "id"), req.Status, serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(order)
}

// CompleteRestockOrder handles POST /restock-orders/{id}/complete.
func (h *Handlers) CompleteRestockOrder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	order, err := h.inventory.CompleteRestock(r.Context(), chi.URLParam(r, "id"), serviceActor(claims))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).Success(order)
}

// DeleteRestockOrder handles DELETE /restock-orders/{id}.
func (h *Handlers) DeleteRestockOrder(w http.ResponseWriter, r *http.Request) {
	claims := mustClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.inventory.DeleteRestock(r.Context(), chi.URLParam(r, "id"), serviceActor(claims)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	NewResponseWriter(w, r).NoContent()
}
