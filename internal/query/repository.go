package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/storefront/internal/cache"
	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Repository - типизированный доступ к одной таблице через кэш.
// Ошибки хранилища возвращаются без изменений, ошибки кэша наружу не выходят.
type Repository[T any] struct {
	svc   *Service
	table domain.Table[T]
	store ports.Store[T]
}

func NewRepository[T any](svc *Service, table domain.Table[T], store ports.Store[T]) *Repository[T] {
	return &Repository[T]{svc: svc, table: table, store: store}
}

func (r *Repository[T]) Table() domain.Table[T] { return r.table }

// FindByID - строка по ключу; (nil, nil), если строки нет. Отсутствие не кэшируется.
func (r *Repository[T]) FindByID(ctx context.Context, id string, opts ...FindOption) (*T, error) {
	ctx, span := r.start(ctx, "query.FindByID", attribute.String("db.id", id))
	defer span.End()

	if resolveFind(ctx, opts).bypass {
		row, err := r.store.QuerySingle(ctx, id)
		return row, r.storeErr(span, err)
	}

	row, err := cache.WithCache(ctx, r.svc.aside, r.svc.keys.Entity(r.table.Name, id), r.table.Tier,
		func(ctx context.Context) (T, error) {
			var zero T
			row, err := r.store.QuerySingle(ctx, id)
			if err != nil {
				return zero, err
			}
			if row == nil {
				return zero, cache.ErrAbsent
			}
			return *row, nil
		})
	switch {
	case errors.Is(err, cache.ErrAbsent):
		return nil, nil
	case err != nil:
		return nil, r.storeErr(span, err)
	}
	return &row, nil
}

// FindByIDs - строки по набору ключей без N+1: один MGET в кэш и не больше
// одного запроса в хранилище за промахами. Отсутствующих ключей нет в ответе.
func (r *Repository[T]) FindByIDs(ctx context.Context, ids []string, opts ...FindOption) (map[string]T, error) {
	ids = uniqueIDs(ids)
	ctx, span := r.start(ctx, "query.FindByIDs", attribute.Int("db.ids", len(ids)))
	defer span.End()

	result := make(map[string]T, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	metrics.BatchSize.WithLabelValues(r.table.Name).Observe(float64(len(ids)))

	if resolveFind(ctx, opts).bypass {
		rows, err := r.store.QueryMany(ctx, ids)
		if err != nil {
			return nil, r.storeErr(span, err)
		}
		for _, row := range rows {
			result[r.table.Key(row)] = row
		}
		return result, nil
	}

	keys := r.svc.keys.Entities(r.table.Name, ids)
	lookups := r.svc.aside.Client().GetMany(ctx, keys)

	missing := make([]string, 0, len(ids))
	for i, id := range ids {
		if lookups[i].Found() {
			var v T
			if r.svc.aside.Decode(ctx, keys[i], lookups[i].Value, &v) {
				result[id] = v
				continue
			}
		}
		missing = append(missing, id)
	}
	span.SetAttributes(attribute.Int("cache.missing", len(missing)))
	if len(missing) == 0 {
		return result, nil
	}

	rows, err := r.store.QueryMany(ctx, missing)
	if err != nil {
		return nil, r.storeErr(span, err)
	}

	g := new(errgroup.Group)
	g.SetLimit(r.svc.setConcurrency)
	for _, row := range rows {
		id := r.table.Key(row)
		result[id] = row
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.svc.aside.Put(ctx, r.svc.keys.Entity(r.table.Name, id), r.table.Tier, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// строки уже в result; недописанные ключи доберёт следующий промах
		r.svc.log.Warnf(ctx, "cache populate interrupted table=%s rows=%d err=%v", r.table.Name, len(rows), err)
	}

	return result, nil
}

// FindAllBy - строки с column = value; список кэшируется целиком под префиксом
// списков таблицы и сносится при любой записи в таблицу.
func (r *Repository[T]) FindAllBy(ctx context.Context, column, value string, opts ...FindOption) ([]T, error) {
	ctx, span := r.start(ctx, "query.FindAllBy", attribute.String("db.column", column))
	defer span.End()

	if !r.table.CanFilterBy(column) {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, r.table.Name, column)
	}

	if resolveFind(ctx, opts).bypass {
		rows, err := r.store.QueryBy(ctx, column, value)
		return rows, r.storeErr(span, err)
	}

	key := r.svc.keys.List(r.table.Name, column, value)
	rows, err := cache.WithCache(ctx, r.svc.aside, key, r.table.EffectiveListTier(),
		func(ctx context.Context) ([]T, error) {
			rows, err := r.store.QueryBy(ctx, column, value)
			if err != nil {
				return nil, err
			}
			if rows == nil {
				rows = []T{}
			}
			return rows, nil
		})
	if err != nil {
		return nil, r.storeErr(span, err)
	}
	return rows, nil
}

// BatchInsert - все строки одной операцией хранилища. После успеха
// инвалидируются ключи вставленных строк и списки таблицы; при ошибке кэш не трогается.
func (r *Repository[T]) BatchInsert(ctx context.Context, rows []T) error {
	ctx, span := r.start(ctx, "query.BatchInsert", attribute.Int("db.rows", len(rows)))
	defer span.End()

	if len(rows) == 0 {
		return ErrEmptyBatch
	}

	if _, err := r.store.InsertMany(ctx, rows); err != nil {
		return r.storeErr(span, err)
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = r.table.Key(row)
	}
	r.invalidateAfterWrite(ctx, ids)
	return nil
}

// BatchUpdate - частичные обновления одной операцией хранилища; возвращает
// число затронутых строк. Колонки проверяются до обращения к хранилищу.
func (r *Repository[T]) BatchUpdate(ctx context.Context, updates []domain.RowUpdate) (int64, error) {
	ctx, span := r.start(ctx, "query.BatchUpdate", attribute.Int("db.rows", len(updates)))
	defer span.End()

	if len(updates) == 0 {
		return 0, ErrEmptyBatch
	}
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		if len(u.Fields) == 0 {
			return 0, fmt.Errorf("%w: update %s has no fields", ErrEmptyBatch, u.ID)
		}
		for col := range u.Fields {
			if col == r.table.KeyColumn || !r.table.HasColumn(col) {
				return 0, fmt.Errorf("%w: %s.%s", ErrUnknownColumn, r.table.Name, col)
			}
		}
		ids = append(ids, u.ID)
	}

	n, err := r.store.UpdateMany(ctx, updates)
	if err != nil {
		return 0, r.storeErr(span, err)
	}

	r.invalidateAfterWrite(ctx, ids)
	return n, nil
}

// invalidateAfterWrite - запись уже зафиксирована, поэтому ошибка кэша её не отменяет:
// клиент её залогировал, устаревшие записи доживут максимум до TTL.
func (r *Repository[T]) invalidateAfterWrite(ctx context.Context, ids []string) {
	if err := r.svc.InvalidateEntities(ctx, r.table.Name, ids); err != nil {
		r.svc.log.Warnf(ctx, "post-write invalidation failed table=%s err=%v", r.table.Name, err)
	}
}

// InvalidateCache - сбросить все ключи таблицы.
func (r *Repository[T]) InvalidateCache(ctx context.Context) (int64, error) {
	return r.svc.InvalidateTableCache(ctx, r.table.Name)
}

func (r *Repository[T]) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("db.table", r.table.Name))
	return r.svc.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// storeErr отмечает ошибку хранилища в спане и возвращает её без изменений.
func (r *Repository[T]) storeErr(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
