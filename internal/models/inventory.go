// VoyageCare - Maritime Crew Health Management
// Copyright 2026 VoyageCare Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/voyagecare/voyagecare

package models

import "time"

// InventoryItem is a medical supply tracked in the ship's inventory.
type InventoryItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"minQuantity"`
	Location    string `json:"location,omitempty"`

	// ExpiryDate is a calendar date (2006-01-02); empty means no expiry.
	ExpiryDate string `json:"expiryDate,omitempty"`

	BatchNumber string `json:"batchNumber,omitempty"`
	Supplier    string `json:"supplier,omitempty"`

	Stamp
}

// IsLowStock reports whether the quantity has fallen to the minimum threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinQuantity
}

// IsExpired reports whether the expiry date has passed.
func (i *InventoryItem) IsExpired(now time.Time) bool {
	if i.ExpiryDate == "" {
		return false
	}
	exp, err := time.ParseInLocation(DateLayout, i.ExpiryDate, now.Location())
	if err != nil {
		return false
	}
	return now.After(exp.AddDate(0, 0, 1))
}

// ExpiresWithin reports whether the item expires within d from now.
func (i *InventoryItem) ExpiresWithin(now time.Time, d time.Duration) bool {
	if i.ExpiryDate == "" {
		return false
	}
	exp, err := time.ParseInLocation(DateLayout, i.ExpiryDate, now.Location())
	if err != nil {
		return false
	}
	return exp.Sub(now) <= d
}

// InventoryAlert flags an inventory condition (low stock, expiry) for the
// inventory manager dashboard.
type InventoryAlert struct {
	ID       string      `json:"id"`
	ItemID   string      `json:"itemId"`
	ItemName string      `json:"itemName,omitempty"`
	Category string      `json:"category,omitempty"`
	Type     AlertType   `json:"type"`
	Severity Severity    `json:"severity"`
	Status   AlertStatus `json:"status"`
	Message  string      `json:"message,omitempty"`

	// Acknowledgement sub-record, stamped by the acknowledge action.
	AcknowledgedBy     string     `json:"acknowledgedBy,omitempty"`
	AcknowledgedByName string     `json:"acknowledgedByName,omitempty"`
	AcknowledgedAt     *time.Time `json:"acknowledgedAt,omitempty"`

	Stamp
}

// RestockOrder requests replenishment of an inventory item. Completing the
// order increments the referenced item's quantity.
type RestockOrder struct {
	ID       string        `json:"id"`
	ItemID   string        `json:"itemId"`
	ItemName string        `json:"itemName,omitempty"`
	Quantity int           `json:"quantity"`
	Status   RestockStatus `json:"status"`
	Supplier string        `json:"supplier,omitempty"`
	Notes    string        `json:"notes,omitempty"`

	// NewExpiryDate optionally updates the item's expiry on completion.
	NewExpiryDate string `json:"newExpiryDate,omitempty"`

	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Stamp
}
