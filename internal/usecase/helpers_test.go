package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront/internal/cache"
	"github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/query"
	"github.com/Gunvolt24/storefront/internal/testutil"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

var ts = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func product(id string, price int64, active bool) domain.Product {
	return domain.Product{
		ID: id, VendorID: "v1", CategoryID: "c1", SKU: "SKU-" + id, Name: "Product " + id,
		PriceCents: price, Currency: "USD", Active: active, UpdatedAt: ts,
	}
}

// env - хранилища в памяти за общим кэшем.
type env struct {
	svc       *query.Service
	cache     *memory.LRUCacheTTL
	products  *testutil.FakeStore[domain.Product]
	inventory *testutil.FakeStore[domain.InventoryItem]
	carts     *testutil.FakeStore[domain.Cart]
	items     *testutil.FakeStore[domain.CartItem]

	productRepo   *query.Repository[domain.Product]
	inventoryRepo *query.Repository[domain.InventoryItem]
	cartRepo      *query.Repository[domain.Cart]
	itemRepo      *query.Repository[domain.CartItem]
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mem := memory.NewLRUCacheTTL(1000)
	aside := cache.NewAside(cache.NewClient(mem, noopLogger{}), cache.DefaultTTLs(), noopLogger{})
	svc := query.NewService(aside, cache.NewKeys("sf"), noopLogger{})

	e := &env{
		svc:       svc,
		cache:     mem,
		products:  testutil.NewFakeStore(catalog.Products),
		inventory: testutil.NewFakeStore(catalog.Inventory),
		carts:     testutil.NewFakeStore(catalog.Carts),
		items:     testutil.NewFakeStore(catalog.CartItems),
	}
	e.productRepo = query.NewRepository(svc, catalog.Products, e.products)
	e.inventoryRepo = query.NewRepository(svc, catalog.Inventory, e.inventory)
	e.cartRepo = query.NewRepository(svc, catalog.Carts, e.carts)
	e.itemRepo = query.NewRepository(svc, catalog.CartItems, e.items)
	return e
}

func cachedKeys(t *testing.T, e *env) int64 {
	t.Helper()
	st, err := e.cache.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	return st.TotalKeys
}
