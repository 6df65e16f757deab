package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CatalogReader - чтение витрины товаров.
type CatalogReader interface {
	Product(ctx context.Context, id string) (*domain.Product, error)
	Products(ctx context.Context, ids []string) (map[string]domain.Product, error)
	ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error)
}

// StockChecker - проверка остатков; strict читает мимо кэша.
type StockChecker interface {
	CheckStock(ctx context.Context, reqs []domain.StockRequest, strict bool) ([]domain.StockShortage, error)
}

type CartReader interface {
	CartWithItems(ctx context.Context, cartID string) (*domain.CartView, error)
}

// CacheAdmin - операции обслуживания кэша для админки.
// В отличие от пути запроса, ошибки кэша здесь возвращаются.
type CacheAdmin interface {
	CacheStats(ctx context.Context) (domain.CacheStats, error)
	InvalidateTableCache(ctx context.Context, table string) (int64, error)
	FlushCache(ctx context.Context) error
}
