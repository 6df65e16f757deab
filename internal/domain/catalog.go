package domain

import "time"

type Product struct {
	ID         string    `db:"id" json:"id"`
	VendorID   string    `db:"vendor_id" json:"vendor_id"`
	CategoryID string    `db:"category_id" json:"category_id"`
	SKU        string    `db:"sku" json:"sku"`
	Name       string    `db:"name" json:"name"`
	PriceCents int64     `db:"price_cents" json:"price_cents"`
	Currency   string    `db:"currency" json:"currency"`
	Active     bool      `db:"active" json:"active"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type Category struct {
	ID       string `db:"id" json:"id"`
	ParentID string `db:"parent_id" json:"parent_id,omitempty"`
	Slug     string `db:"slug" json:"slug"`
	Name     string `db:"name" json:"name"`
	Position int32  `db:"position" json:"position"`
}

type Vendor struct {
	ID     string `db:"id" json:"id"`
	Name   string `db:"name" json:"name"`
	Email  string `db:"email" json:"email"`
	Active bool   `db:"active" json:"active"`
}

// InventoryItem - складской остаток товара (ключ - product_id).
type InventoryItem struct {
	ProductID string    `db:"product_id" json:"product_id"`
	Quantity  int64     `db:"quantity" json:"quantity"`
	Reserved  int64     `db:"reserved" json:"reserved"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Available - сколько единиц можно продать.
func (i InventoryItem) Available() int64 {
	if a := i.Quantity - i.Reserved; a > 0 {
		return a
	}
	return 0
}

type StockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type StockShortage struct {
	ProductID string `json:"product_id"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// PriceChange - новая цена товара (в копейках/центах).
type PriceChange struct {
	ProductID  string `json:"product_id"`
	PriceCents int64  `json:"price_cents"`
}
