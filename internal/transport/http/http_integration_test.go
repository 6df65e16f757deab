//go:build integration

package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/cache"
	"github.com/Gunvolt24/storefront/internal/cache/rediscache"
	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/query"
	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/testutil"
	rest "github.com/Gunvolt24/storefront/internal/transport/http"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

type itcStack struct {
	ctx      context.Context
	server   *httptest.Server
	products *usecase.ProductService
	carts    *usecase.CartService
	cartRepo *query.Repository[domain.Cart]
	admin    *query.Service
}

// newITCStack - Postgres и Redis в контейнерах, весь HTTP-стек поверх них.
func newITCStack(t *testing.T) *itcStack {
	t.Helper()

	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancelStart)

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	rd, stopRD, err := testutil.StartRedisTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopRD(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	t.Cleanup(cancel)

	logg, cleanup, err := logger.NewZapLogger(false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	backend, err := rediscache.New(ctx, rediscache.Options{URL: rd.URL, PoolSize: 4, DialTimeout: time.Second, OpTimeout: time.Second})
	require.NoError(t, err)
	client := cache.NewClient(backend, logg)
	t.Cleanup(func() { _ = client.Close() })

	aside := cache.NewAside(client, cache.DefaultTTLs(), logg)
	svc := query.NewService(aside, cache.NewKeys("itc"), logg)

	productRepo := query.NewRepository(svc, catalog.Products, pgrepo.NewStore(pg.Pool, catalog.Products))
	inventoryRepo := query.NewRepository(svc, catalog.Inventory, pgrepo.NewStore(pg.Pool, catalog.Inventory))
	cartRepo := query.NewRepository(svc, catalog.Carts, pgrepo.NewStore(pg.Pool, catalog.Carts))
	itemRepo := query.NewRepository(svc, catalog.CartItems, pgrepo.NewStore(pg.Pool, catalog.CartItems))

	products := usecase.NewProductService(productRepo, validate.NewProductValidator(), logg)
	carts := usecase.NewCartService(cartRepo, itemRepo, productRepo, logg)

	inventory := usecase.NewInventoryService(inventoryRepo, logg)

	h := rest.NewHandler(rest.Services{
		Catalog: products,
		Stock:   inventory,
		Carts:   carts,
		Admin:   svc,

		CatalogWriter: products,
		StockWriter:   inventory,
		CartWriter:    carts,
	}, logg, 2*time.Second)
	ts := httptest.NewServer(rest.NewRouter(h, ""))
	t.Cleanup(ts.Close)

	return &itcStack{ctx: ctx, server: ts, products: products, carts: carts, cartRepo: cartRepo, admin: svc}
}

func getJSON(t *testing.T, url string, dst any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if dst != nil && resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
	}
	return resp.StatusCode
}

// 1) GET /products/:id и GET /products?ids= через Redis; 404 для отсутствующего.
func TestHTTP_Products_RedisCache_TC(t *testing.T) {
	s := newITCStack(t)

	rows := testutil.MakeProducts(3, testutil.WithCategory("cat-itc"))
	require.NoError(t, s.products.CreateProducts(s.ctx, rows))

	var one domain.Product
	require.Equal(t, http.StatusOK, getJSON(t, s.server.URL+"/products/"+rows[0].ID, &one))
	require.Equal(t, rows[0].SKU, one.SKU)

	require.Equal(t, http.StatusNotFound, getJSON(t, s.server.URL+"/products/nope", nil))

	var batch struct {
		Items   []domain.Product `json:"items"`
		Missing []string         `json:"missing"`
	}
	ids := []string{rows[2].ID, "ghost", rows[1].ID}
	require.Equal(t, http.StatusOK, getJSON(t, s.server.URL+"/products?ids="+strings.Join(ids, ","), &batch))
	require.Len(t, batch.Items, 2)
	require.Equal(t, rows[2].ID, batch.Items[0].ID)
	require.Equal(t, []string{"ghost"}, batch.Missing)

	st, err := s.admin.CacheStats(s.ctx)
	require.NoError(t, err)
	require.Equal(t, "redis", st.Backend)
	require.GreaterOrEqual(t, st.TotalKeys, int64(3))
}

// 2) Цена меняется через PATCH /admin/products/prices, следующий GET видит новое значение.
func TestHTTP_UpdateThenRead_TC(t *testing.T) {
	s := newITCStack(t)

	p := testutil.MakeProduct(testutil.WithPrice(1000))
	require.NoError(t, s.products.CreateProducts(s.ctx, []domain.Product{p}))

	var got domain.Product
	require.Equal(t, http.StatusOK, getJSON(t, s.server.URL+"/products/"+p.ID, &got))
	require.EqualValues(t, 1000, got.PriceCents)

	body := `{"items":[{"product_id":"` + p.ID + `","price_cents":1500}]}`
	req, _ := http.NewRequest(http.MethodPatch, s.server.URL+"/admin/products/prices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Updated int64 `json:"updated"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.EqualValues(t, 1, out.Updated)

	require.Equal(t, http.StatusOK, getJSON(t, s.server.URL+"/products/"+p.ID, &got))
	require.EqualValues(t, 1500, got.PriceCents)
}

// 3) Корзина собирается из трёх таблиц; админский сброс таблицы удаляет её ключи.
func TestHTTP_CartAndAdmin_TC(t *testing.T) {
	s := newITCStack(t)

	p := testutil.MakeProduct(testutil.WithPrice(250))
	require.NoError(t, s.products.CreateProducts(s.ctx, []domain.Product{p}))

	now := time.Now().UTC().Truncate(time.Microsecond)
	cart := domain.Cart{ID: "cart-" + testutil.UniqSuffix(), UserID: "u-1", Currency: "USD", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.cartRepo.BatchInsert(s.ctx, []domain.Cart{cart}))

	_, err := s.carts.AddItems(s.ctx, cart.ID, []domain.StockRequest{{ProductID: p.ID, Quantity: 2}})
	require.NoError(t, err)

	var view domain.CartView
	require.Equal(t, http.StatusOK, getJSON(t, s.server.URL+"/carts/"+cart.ID, &view))
	require.Len(t, view.Lines, 1)
	require.EqualValues(t, 500, view.TotalCents)

	req, _ := http.NewRequest(http.MethodDelete, s.server.URL+"/admin/cache/carts", http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Deleted int64 `json:"deleted"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.GreaterOrEqual(t, out.Deleted, int64(1))
}

// 4) 405 с JSON-телом.
func TestHTTP_MethodNotAllowed_TC(t *testing.T) {
	s := newITCStack(t)

	req, _ := http.NewRequest(http.MethodPost, s.server.URL+"/products/some-id", http.NoBody)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "method not allowed", got["error"])
}
