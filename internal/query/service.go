// Пакет query - единый слой доступа к данным: cache-aside чтения,
// пакетные выборки без N+1, пакетные записи с инвалидацией кэша.
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/cache"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrUnknownColumn = errors.New("query: unknown column")
	ErrEmptyBatch    = errors.New("query: empty batch")
)

const defaultSetConcurrency = 8

// Service - общее состояние слоя запросов: кэш, ключи, логгер.
// Типизированные операции живут в Repository[T].
type Service struct {
	aside          *cache.Aside
	keys           cache.Keys
	log            ports.Logger
	tracer         trace.Tracer
	setConcurrency int
}

var _ ports.CacheAdmin = (*Service)(nil)

type Option func(*Service)

// WithSetConcurrency - сколько записей в кэш выполнять параллельно после пакетной выборки.
func WithSetConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.setConcurrency = n
		}
	}
}

func NewService(aside *cache.Aside, keys cache.Keys, log ports.Logger, opts ...Option) *Service {
	s := &Service{
		aside:          aside,
		keys:           keys,
		log:            log,
		tracer:         otel.Tracer("github.com/Gunvolt24/storefront/internal/query"),
		setConcurrency: defaultSetConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// InvalidateTableCache удаляет все ключи таблицы: сущности и списки.
// Ошибка бэкенда возвращается: вызывающий (админка, консьюмер) решает, повторять ли.
func (s *Service) InvalidateTableCache(ctx context.Context, table string) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "query.InvalidateTableCache",
		trace.WithAttributes(attribute.String("db.table", table)))
	defer span.End()

	n, err := s.aside.Client().DeleteByPatternErr(ctx, s.keys.TablePattern(table))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return n, fmt.Errorf("invalidate table %s: %w", table, err)
	}
	metrics.Invalidations.WithLabelValues(table, "table").Inc()
	s.log.Infof(ctx, "cache invalidated table=%s keys=%d", table, n)
	return n, nil
}

// InvalidateEntities удаляет ключи сущностей и все списки таблицы.
// Списки сносятся целиком: по ключу списка нельзя понять, входит ли в него строка.
// Списки удаляются, даже если удаление сущностей упало.
func (s *Service) InvalidateEntities(ctx context.Context, table string, ids []string) error {
	ids = uniqueIDs(ids)
	var entErr error
	if len(ids) > 0 {
		entErr = s.aside.Client().DeleteErr(ctx, s.keys.Entities(table, ids)...)
	}
	lists, listErr := s.aside.Client().DeleteByPatternErr(ctx, s.keys.ListPattern(table))
	if err := errors.Join(entErr, listErr); err != nil {
		return fmt.Errorf("invalidate %s ids=%d: %w", table, len(ids), err)
	}
	metrics.Invalidations.WithLabelValues(table, "entities").Inc()
	s.log.Infof(ctx, "cache invalidated table=%s ids=%d lists=%d", table, len(ids), lists)
	return nil
}

// FlushCache - сброс всего кэша (админка, cachectl).
func (s *Service) FlushCache(ctx context.Context) error {
	if err := s.aside.Client().FlushErr(ctx); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}
	metrics.Invalidations.WithLabelValues("*", "flush").Inc()
	s.log.Warnf(ctx, "cache flushed backend=%s", s.aside.Client().Backend())
	return nil
}

func (s *Service) CacheStats(ctx context.Context) (domain.CacheStats, error) {
	return s.aside.Client().Stats(ctx)
}

// uniqueIDs - без пустых и повторов, в порядке первого вхождения.
func uniqueIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
