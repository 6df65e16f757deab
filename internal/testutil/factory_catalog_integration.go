//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeProduct - валидный товар с уникальными id/sku.
func MakeProduct(opts ...func(*domain.Product)) domain.Product {
	sfx := UniqSuffix()
	p := domain.Product{
		ID:         "p-" + sfx,
		VendorID:   "v-1",
		CategoryID: "c-1",
		SKU:        "SKU-" + sfx,
		Name:       "Widget " + sfx,
		PriceCents: 1999,
		Currency:   "USD",
		Active:     true,
		UpdatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, fn := range opts {
		fn(&p)
	}
	return p
}

func WithCategory(id string) func(*domain.Product) {
	return func(p *domain.Product) { p.CategoryID = id }
}

func WithPrice(cents int64) func(*domain.Product) {
	return func(p *domain.Product) { p.PriceCents = cents }
}

func MakeProducts(n int, opts ...func(*domain.Product)) []domain.Product {
	out := make([]domain.Product, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, MakeProduct(opts...))
	}
	return out
}
