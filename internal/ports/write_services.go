package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CatalogWriter - пакетная запись каталога для админки.
type CatalogWriter interface {
	CreateProducts(ctx context.Context, rows []domain.Product) error
	UpdatePrices(ctx context.Context, changes []domain.PriceChange) (int64, error)
}

// StockWriter - резервная проверка перед записью и выставление остатков.
type StockWriter interface {
	EnsureAvailable(ctx context.Context, reqs []domain.StockRequest) ([]domain.StockShortage, error)
	SetStock(ctx context.Context, quantities map[string]int64) (int64, error)
}

type CartWriter interface {
	AddItems(ctx context.Context, cartID string, reqs []domain.StockRequest) ([]domain.CartItem, error)
	SetQuantities(ctx context.Context, cartID string, quantities map[string]int64) (int64, error)
}
