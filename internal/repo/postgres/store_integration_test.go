//go:build integration

package postgres_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/domain"
	pgrepo "github.com/Gunvolt24/storefront/internal/repo/postgres"
	"github.com/Gunvolt24/storefront/internal/testutil"
)

// startDB поднимает Postgres со схемой витрины.
func startDB(t *testing.T) (*pgxpool.Pool, context.Context) {
	t.Helper()

	// длинный контекст - только на подъём контейнера
	ctxStart, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelStart()

	pg, stopPG, err := testutil.StartPostgresTC(ctxStart)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stopPG(context.Background()) })

	// короткий контекст - на сами БД-операции
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	return pg.Pool, ctx
}

func TestStore_InsertAndQuery_TC(t *testing.T) {
	t.Parallel()
	pool, ctx := startDB(t)

	store := pgrepo.NewStore(pool, catalog.Products)
	rows := testutil.MakeProducts(3, testutil.WithCategory("cat-a"))

	n, err := store.InsertMany(ctx, rows)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	got, err := store.QuerySingle(ctx, rows[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, rows[0].SKU, got.SKU)
	require.True(t, rows[0].UpdatedAt.Equal(got.UpdatedAt))

	missing, err := store.QuerySingle(ctx, "nope")
	require.NoError(t, err)
	require.Nil(t, missing)

	many, err := store.QueryMany(ctx, []string{rows[2].ID, "nope", rows[1].ID})
	require.NoError(t, err)
	require.Len(t, many, 2)

	byCat, err := store.QueryBy(ctx, "category_id", "cat-a")
	require.NoError(t, err)
	require.Len(t, byCat, 3)
	require.True(t, sort.SliceIsSorted(byCat, func(i, j int) bool { return byCat[i].ID < byCat[j].ID }))
}

func TestStore_InsertMany_AllOrNothing_TC(t *testing.T) {
	t.Parallel()
	pool, ctx := startDB(t)

	store := pgrepo.NewStore(pool, catalog.Products)
	existing := testutil.MakeProduct()
	_, err := store.InsertMany(ctx, []domain.Product{existing})
	require.NoError(t, err)

	fresh := testutil.MakeProduct()
	_, err = store.InsertMany(ctx, []domain.Product{fresh, existing})
	require.Error(t, err)

	got, err := store.QuerySingle(ctx, fresh.ID)
	require.NoError(t, err)
	require.Nil(t, got, "failed COPY must roll back the whole batch")
}

func TestStore_UpdateMany_TC(t *testing.T) {
	t.Parallel()
	pool, ctx := startDB(t)

	store := pgrepo.NewStore(pool, catalog.Products)
	rows := testutil.MakeProducts(2, testutil.WithPrice(100))
	_, err := store.InsertMany(ctx, rows)
	require.NoError(t, err)

	n, err := store.UpdateMany(ctx, []domain.RowUpdate{
		{ID: rows[0].ID, Fields: map[string]any{"price_cents": int64(250), "name": "Renamed"}},
		{ID: rows[1].ID, Fields: map[string]any{"active": false}},
		{ID: "nope", Fields: map[string]any{"active": false}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	got, err := store.QueryMany(ctx, []string{rows[0].ID, rows[1].ID})
	require.NoError(t, err)
	byID := map[string]domain.Product{}
	for _, p := range got {
		byID[p.ID] = p
	}
	require.EqualValues(t, 250, byID[rows[0].ID].PriceCents)
	require.Equal(t, "Renamed", byID[rows[0].ID].Name)
	require.False(t, byID[rows[1].ID].Active)
}

func TestStore_UpdateMany_RollsBackOnConstraint_TC(t *testing.T) {
	t.Parallel()
	pool, ctx := startDB(t)

	store := pgrepo.NewStore(pool, catalog.Products)
	rows := testutil.MakeProducts(2, testutil.WithPrice(100))
	_, err := store.InsertMany(ctx, rows)
	require.NoError(t, err)

	_, err = store.UpdateMany(ctx, []domain.RowUpdate{
		{ID: rows[0].ID, Fields: map[string]any{"price_cents": int64(1)}},
		{ID: rows[1].ID, Fields: map[string]any{"price_cents": int64(-5)}}, // CHECK price_cents >= 0
	})
	require.Error(t, err)

	got, err := store.QuerySingle(ctx, rows[0].ID)
	require.NoError(t, err)
	require.EqualValues(t, 100, got.PriceCents, "batch must be atomic")
}

func TestStore_CartItems_TC(t *testing.T) {
	t.Parallel()
	pool, ctx := startDB(t)

	carts := pgrepo.NewStore(pool, catalog.Carts)
	items := pgrepo.NewStore(pool, catalog.CartItems)
	now := time.Now().UTC().Truncate(time.Microsecond)

	_, err := carts.InsertMany(ctx, []domain.Cart{{ID: "cart-1", UserID: "u1", Currency: "USD", CreatedAt: now, UpdatedAt: now}})
	require.NoError(t, err)
	_, err = items.InsertMany(ctx, []domain.CartItem{
		{ID: "i1", CartID: "cart-1", ProductID: "p1", Quantity: 2, AddedAt: now},
		{ID: "i2", CartID: "cart-1", ProductID: "p2", Quantity: 1, AddedAt: now},
	})
	require.NoError(t, err)

	got, err := items.QueryBy(ctx, "cart_id", "cart-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "i1", got[0].ID)
}
