package postgres

import (
	"testing"

	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
)

func TestUpdateSQL_SortedColumnsAndKeyLast(t *testing.T) {
	s := NewStore[domain.Product](nil, catalog.Products)

	q, args, err := s.updateSQL(domain.RowUpdate{
		ID:     "p1",
		Fields: map[string]any{"price_cents": int64(10), "name": "n", "active": false},
	})
	if err != nil {
		t.Fatalf("updateSQL: %v", err)
	}

	want := `UPDATE "products" SET "active" = $1, "name" = $2, "price_cents" = $3 WHERE "id" = $4`
	if q != want {
		t.Fatalf("sql:\n got  %s\n want %s", q, want)
	}
	if len(args) != 4 || args[0] != false || args[1] != "n" || args[2] != int64(10) || args[3] != "p1" {
		t.Fatalf("args = %v", args)
	}
}

func TestUpdateSQL_Rejects(t *testing.T) {
	s := NewStore[domain.Product](nil, catalog.Products)

	bad := []domain.RowUpdate{
		{ID: "p1"},
		{ID: "p1", Fields: map[string]any{"id": "p2"}},
		{ID: "p1", Fields: map[string]any{"drop table": 1}},
	}
	for _, u := range bad {
		if _, _, err := s.updateSQL(u); err == nil {
			t.Fatalf("update %+v must be rejected", u)
		}
	}
}

func TestNewStore_QuotesIdentifiers(t *testing.T) {
	s := NewStore[domain.CartItem](nil, catalog.CartItems)

	if s.ident != `"cart_items"` || s.keyCol != `"id"` {
		t.Fatalf("ident=%s key=%s", s.ident, s.keyCol)
	}
	if s.columns != `"id", "cart_id", "product_id", "quantity", "added_at"` {
		t.Fatalf("columns = %s", s.columns)
	}
}
