package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/query"
)

var (
	_ ports.CatalogReader = (*ProductService)(nil)
	_ ports.CatalogWriter = (*ProductService)(nil)
)

// ProductService - витрина товаров поверх кэширующего репозитория.
type ProductService struct {
	products  *query.Repository[domain.Product]
	validator ports.ProductValidator
	log       ports.Logger
	now       func() time.Time
}

func NewProductService(products *query.Repository[domain.Product], validator ports.ProductValidator, log ports.Logger) *ProductService {
	return &ProductService{products: products, validator: validator, log: log, now: time.Now}
}

// Product - товар по id; (nil, nil), если товара нет.
func (s *ProductService) Product(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "products.FindByID failed id=%s err=%v", id, err)
		return nil, err
	}
	return p, nil
}

// Products - пачка товаров за один поход в хранилище; отсутствующих id в ответе нет.
func (s *ProductService) Products(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	out, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Errorf(ctx, "products.FindByIDs failed n=%d err=%v", len(ids), err)
		return nil, err
	}
	return out, nil
}

func (s *ProductService) ProductsByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return s.products.FindAllBy(ctx, "category_id", categoryID)
}

// CreateProducts - валидация всей пачки, затем одна вставка.
// Пачка с хотя бы одним невалидным товаром не пишется вовсе.
func (s *ProductService) CreateProducts(ctx context.Context, rows []domain.Product) error {
	now := s.now().UTC()
	for i := range rows {
		if err := s.validator.Validate(ctx, &rows[i]); err != nil {
			s.log.Warnf(ctx, "product rejected idx=%d id=%s err=%v", i, rows[i].ID, err)
			return fmt.Errorf("product %d: %w", i, err)
		}
		if rows[i].UpdatedAt.IsZero() {
			rows[i].UpdatedAt = now
		}
	}

	if err := s.products.BatchInsert(ctx, rows); err != nil {
		s.log.Errorf(ctx, "products.BatchInsert failed n=%d err=%v", len(rows), err)
		return err
	}
	s.log.Infof(ctx, "products created n=%d", len(rows))
	return nil
}

// UpdatePrices - новые цены одной пачкой; возвращает число обновлённых товаров.
func (s *ProductService) UpdatePrices(ctx context.Context, changes []domain.PriceChange) (int64, error) {
	now := s.now().UTC()
	updates := make([]domain.RowUpdate, 0, len(changes))
	for _, c := range changes {
		if c.PriceCents < 0 {
			return 0, fmt.Errorf("%w: product %s: negative price", domain.ErrInvalidInput, c.ProductID)
		}
		updates = append(updates, domain.RowUpdate{
			ID:     c.ProductID,
			Fields: map[string]any{"price_cents": c.PriceCents, "updated_at": now},
		})
	}

	n, err := s.products.BatchUpdate(ctx, updates)
	if err != nil {
		s.log.Errorf(ctx, "products.BatchUpdate failed n=%d err=%v", len(updates), err)
		return 0, err
	}
	s.log.Infof(ctx, "prices updated requested=%d affected=%d", len(updates), n)
	return n, nil
}
