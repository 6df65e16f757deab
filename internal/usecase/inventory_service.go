package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/query"
)

var (
	_ ports.StockChecker = (*InventoryService)(nil)
	_ ports.StockWriter  = (*InventoryService)(nil)
)

// ErrInsufficientStock - остатков не хватает хотя бы по одному товару.
var ErrInsufficientStock = domain.ErrInsufficientStock

type InventoryService struct {
	inventory *query.Repository[domain.InventoryItem]
	log       ports.Logger
	now       func() time.Time
}

func NewInventoryService(inventory *query.Repository[domain.InventoryItem], log ports.Logger) *InventoryService {
	return &InventoryService{inventory: inventory, log: log, now: time.Now}
}

// CheckStock - нехватки по списку запросов за один поход в хранилище.
// Запросы на один товар суммируются; товар без записи остатков считается
// отсутствующим. strict читает остатки мимо кэша.
func (s *InventoryService) CheckStock(ctx context.Context, reqs []domain.StockRequest, strict bool) ([]domain.StockShortage, error) {
	want := make(map[string]int64, len(reqs))
	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		if r.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s: quantity must be positive", domain.ErrInvalidInput, r.ProductID)
		}
		if _, seen := want[r.ProductID]; !seen {
			ids = append(ids, r.ProductID)
		}
		want[r.ProductID] += r.Quantity
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var opts []query.FindOption
	if strict {
		opts = append(opts, query.WithoutCache())
	}
	levels, err := s.inventory.FindByIDs(ctx, ids, opts...)
	if err != nil {
		s.log.Errorf(ctx, "inventory.FindByIDs failed n=%d strict=%t err=%v", len(ids), strict, err)
		return nil, err
	}

	var shortages []domain.StockShortage
	for _, id := range ids {
		var available int64
		if item, ok := levels[id]; ok {
			available = item.Available()
		}
		if available < want[id] {
			shortages = append(shortages, domain.StockShortage{ProductID: id, Requested: want[id], Available: available})
		}
	}
	return shortages, nil
}

// EnsureAvailable - строгая проверка; при нехватке ErrInsufficientStock и список нехваток.
func (s *InventoryService) EnsureAvailable(ctx context.Context, reqs []domain.StockRequest) ([]domain.StockShortage, error) {
	shortages, err := s.CheckStock(ctx, reqs, true)
	if err != nil {
		return nil, err
	}
	if len(shortages) > 0 {
		return shortages, fmt.Errorf("%w: %d product(s)", ErrInsufficientStock, len(shortages))
	}
	return nil, nil
}

// SetStock - выставить остатки пачкой; возвращает число обновлённых записей.
func (s *InventoryService) SetStock(ctx context.Context, levels map[string]int64) (int64, error) {
	ids := make([]string, 0, len(levels))
	for id, q := range levels {
		if q < 0 {
			return 0, fmt.Errorf("%w: product %s: negative quantity", domain.ErrInvalidInput, id)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	now := s.now().UTC()
	updates := make([]domain.RowUpdate, 0, len(ids))
	for _, id := range ids {
		updates = append(updates, domain.RowUpdate{
			ID:     id,
			Fields: map[string]any{"quantity": levels[id], "updated_at": now},
		})
	}

	n, err := s.inventory.BatchUpdate(ctx, updates)
	if err != nil {
		s.log.Errorf(ctx, "inventory.BatchUpdate failed n=%d err=%v", len(updates), err)
		return 0, err
	}
	s.log.Infof(ctx, "stock updated requested=%d affected=%d", len(updates), n)
	return n, nil
}
