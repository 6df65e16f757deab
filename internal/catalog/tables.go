// Пакет catalog - реестр таблиц витрины: имя, ключ, колонки и класс TTL.
package catalog

import (
	"sort"

	"github.com/Gunvolt24/storefront/internal/domain"
)

var Products = domain.Table[domain.Product]{
	Name:      "products",
	KeyColumn: "id",
	Columns: []string{
		"id", "vendor_id", "category_id", "sku", "name",
		"price_cents", "currency", "active", "updated_at",
	},
	Tier:       domain.TierMedium,
	ListTier:   domain.TierShort,
	Filterable: []string{"category_id", "vendor_id"},
	Key:        func(p domain.Product) string { return p.ID },
	Values: func(p domain.Product) []any {
		return []any{p.ID, p.VendorID, p.CategoryID, p.SKU, p.Name, p.PriceCents, p.Currency, p.Active, p.UpdatedAt}
	},
}

var Categories = domain.Table[domain.Category]{
	Name:       "categories",
	KeyColumn:  "id",
	Columns:    []string{"id", "parent_id", "slug", "name", "position"},
	Tier:       domain.TierLong,
	ListTier:   domain.TierLong,
	Filterable: []string{"parent_id"},
	Key:        func(c domain.Category) string { return c.ID },
	Values: func(c domain.Category) []any {
		return []any{c.ID, c.ParentID, c.Slug, c.Name, c.Position}
	},
}

var Vendors = domain.Table[domain.Vendor]{
	Name:      "vendors",
	KeyColumn: "id",
	Columns:   []string{"id", "name", "email", "active"},
	Tier:      domain.TierLong,
	Key:       func(v domain.Vendor) string { return v.ID },
	Values: func(v domain.Vendor) []any {
		return []any{v.ID, v.Name, v.Email, v.Active}
	},
}

// Inventory - остатки меняются постоянно, поэтому короткий TTL.
var Inventory = domain.Table[domain.InventoryItem]{
	Name:      "inventory",
	KeyColumn: "product_id",
	Columns:   []string{"product_id", "quantity", "reserved", "updated_at"},
	Tier:      domain.TierShort,
	Key:       func(i domain.InventoryItem) string { return i.ProductID },
	Values: func(i domain.InventoryItem) []any {
		return []any{i.ProductID, i.Quantity, i.Reserved, i.UpdatedAt}
	},
}

var Carts = domain.Table[domain.Cart]{
	Name:       "carts",
	KeyColumn:  "id",
	Columns:    []string{"id", "user_id", "currency", "created_at", "updated_at"},
	Tier:       domain.TierShort,
	Filterable: []string{"user_id"},
	Key:        func(c domain.Cart) string { return c.ID },
	Values: func(c domain.Cart) []any {
		return []any{c.ID, c.UserID, c.Currency, c.CreatedAt, c.UpdatedAt}
	},
}

var CartItems = domain.Table[domain.CartItem]{
	Name:       "cart_items",
	KeyColumn:  "id",
	Columns:    []string{"id", "cart_id", "product_id", "quantity", "added_at"},
	Tier:       domain.TierShort,
	Filterable: []string{"cart_id"},
	Key:        func(i domain.CartItem) string { return i.ID },
	Values: func(i domain.CartItem) []any {
		return []any{i.ID, i.CartID, i.ProductID, i.Quantity, i.AddedAt}
	},
}

var known = map[string]struct{}{
	Products.Name:   {},
	Categories.Name: {},
	Vendors.Name:    {},
	Inventory.Name:  {},
	Carts.Name:      {},
	CartItems.Name:  {},
}

// Known - таблица есть в реестре.
func Known(table string) bool {
	_, ok := known[table]
	return ok
}

// Names - имена всех таблиц по алфавиту.
func Names() []string {
	out := make([]string, 0, len(known))
	for n := range known {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
