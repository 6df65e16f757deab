package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/query"
)

var (
	_ ports.CartReader = (*CartService)(nil)
	_ ports.CartWriter = (*CartService)(nil)
)

// ErrCartNotFound - корзины с таким id нет.
var ErrCartNotFound = domain.ErrCartNotFound

// CartService - корзины. Сборка корзины занимает не больше трёх походов
// в хранилище при любом числе позиций.
type CartService struct {
	carts    *query.Repository[domain.Cart]
	items    *query.Repository[domain.CartItem]
	products *query.Repository[domain.Product]
	log      ports.Logger
	now      func() time.Time
	newID    func() string
}

func NewCartService(
	carts *query.Repository[domain.Cart],
	items *query.Repository[domain.CartItem],
	products *query.Repository[domain.Product],
	log ports.Logger,
) *CartService {
	return &CartService{
		carts:    carts,
		items:    items,
		products: products,
		log:      log,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}
}

// CartWithItems - корзина с карточками товаров; (nil, nil), если корзины нет.
// Позиции с удалённым или снятым с продажи товаром попадают в Unavailable
// и в сумму не входят.
func (s *CartService) CartWithItems(ctx context.Context, cartID string) (*domain.CartView, error) {
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		s.log.Errorf(ctx, "carts.FindByID failed cart_id=%s err=%v", cartID, err)
		return nil, err
	}
	if cart == nil {
		return nil, nil
	}

	items, err := s.items.FindAllBy(ctx, "cart_id", cartID)
	if err != nil {
		s.log.Errorf(ctx, "cart_items.FindAllBy failed cart_id=%s err=%v", cartID, err)
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].AddedAt.Before(items[j].AddedAt) })

	view := &domain.CartView{Cart: *cart, Lines: make([]domain.CartLine, 0, len(items))}
	if len(items) == 0 {
		return view, nil
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		s.log.Errorf(ctx, "products.FindByIDs failed cart_id=%s err=%v", cartID, err)
		return nil, err
	}

	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok || !p.Active {
			view.Unavailable = append(view.Unavailable, it)
			continue
		}
		line := domain.CartLine{Item: it, Product: p, LineTotalCents: p.PriceCents * it.Quantity}
		view.Lines = append(view.Lines, line)
		view.TotalCents += line.LineTotalCents
	}
	return view, nil
}

// AddItems - добавить позиции одной вставкой. Идентификаторы и время
// добавления проставляются здесь; возвращаются сохранённые позиции.
func (s *CartService) AddItems(ctx context.Context, cartID string, reqs []domain.StockRequest) ([]domain.CartItem, error) {
	if len(reqs) == 0 {
		return nil, query.ErrEmptyBatch
	}
	cart, err := s.carts.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, fmt.Errorf("%w: %s", ErrCartNotFound, cartID)
	}

	now := s.now().UTC()
	rows := make([]domain.CartItem, 0, len(reqs))
	for _, r := range reqs {
		if r.ProductID == "" || r.Quantity <= 0 {
			return nil, fmt.Errorf("%w: cart item %q: product_id and positive quantity required", domain.ErrInvalidInput, r.ProductID)
		}
		rows = append(rows, domain.CartItem{
			ID:        s.newID(),
			CartID:    cartID,
			ProductID: r.ProductID,
			Quantity:  r.Quantity,
			AddedAt:   now,
		})
	}

	if err := s.items.BatchInsert(ctx, rows); err != nil {
		s.log.Errorf(ctx, "cart_items.BatchInsert failed cart_id=%s n=%d err=%v", cartID, len(rows), err)
		return nil, err
	}
	s.log.Infof(ctx, "cart items added cart_id=%s n=%d", cartID, len(rows))
	return rows, nil
}

// SetQuantities - новые количества позиций корзины одной пачкой.
// Позиции проверяются по текущему составу корзины (мимо кэша): чужую
// позицию этим вызовом не изменить.
func (s *CartService) SetQuantities(ctx context.Context, cartID string, quantities map[string]int64) (int64, error) {
	if len(quantities) == 0 {
		return 0, query.ErrEmptyBatch
	}
	ids := make([]string, 0, len(quantities))
	for id, q := range quantities {
		if q <= 0 {
			return 0, fmt.Errorf("%w: cart item %s: quantity must be positive", domain.ErrInvalidInput, id)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items, err := s.items.FindAllBy(ctx, "cart_id", cartID, query.WithoutCache())
	if err != nil {
		s.log.Errorf(ctx, "cart_items.FindAllBy failed cart_id=%s err=%v", cartID, err)
		return 0, err
	}
	owned := make(map[string]struct{}, len(items))
	for _, it := range items {
		owned[it.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := owned[id]; !ok {
			return 0, fmt.Errorf("%w: cart item %s is not in cart %s", domain.ErrInvalidInput, id, cartID)
		}
	}

	updates := make([]domain.RowUpdate, 0, len(ids))
	for _, id := range ids {
		updates = append(updates, domain.RowUpdate{ID: id, Fields: map[string]any{"quantity": quantities[id]}})
	}

	n, err := s.items.BatchUpdate(ctx, updates)
	if err != nil {
		s.log.Errorf(ctx, "cart_items.BatchUpdate failed cart_id=%s n=%d err=%v", cartID, len(updates), err)
		return 0, err
	}
	s.log.Infof(ctx, "cart quantities updated cart_id=%s affected=%d", cartID, n)
	return n, nil
}
