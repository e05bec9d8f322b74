package domain

import (
	"time"
)

// DateFormat is the calendar-day key format used by the sales ledger and
// calendar events ("yyyy-MM-dd").
const DateFormat = "2006-01-02"

// Product represents a product in the catalog. Prices are stored as plain
// amounts; ProfitMargin is derived from them and recomputed whenever either
// price changes.
type Product struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Category     string     `json:"category,omitempty"`
	Description  string     `json:"description,omitempty"`
	BuyPrice     float64    `json:"buyPrice"`
	SellPrice    float64    `json:"sellPrice"`
	ProfitMargin float64    `json:"profitMargin"`
	Image        string     `json:"image,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// ProductPatch is a partial product record. Pointer fields distinguish
// "field absent" from "field set to its zero value", so a merge only touches
// the fields the caller actually sent.
type ProductPatch struct {
	ID          string     `json:"id,omitempty"`
	Name        *string    `json:"name,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Description *string    `json:"description,omitempty"`
	BuyPrice    *float64   `json:"buyPrice,omitempty"`
	SellPrice   *float64   `json:"sellPrice,omitempty"`
	Image       *string    `json:"image,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

// Apply merges the patch into the product field by field; fields absent from
// the patch are left untouched. ID and CreatedAt are identity fields and are
// never overwritten here.
func (p *Product) Apply(patch ProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.BuyPrice != nil {
		p.BuyPrice = *patch.BuyPrice
	}
	if patch.SellPrice != nil {
		p.SellPrice = *patch.SellPrice
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
}

// HasPriceChange reports whether the patch touches either price, which
// requires the profit margin to be recomputed.
func (p ProductPatch) HasPriceChange() bool {
	return p.BuyPrice != nil || p.SellPrice != nil
}
