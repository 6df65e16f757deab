package postgres

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store - хранилище одной таблицы на Postgres (pgxpool).
// Строки сканируются в T по тегам db (pgx.RowToStructByName).
type Store[T any] struct {
	pool  *pgxpool.Pool
	table domain.Table[T]

	ident   string // имя таблицы, экранированное
	keyCol  string
	columns string // список колонок для SELECT
}

var _ ports.Store[domain.Product] = (*Store[domain.Product])(nil)

func NewStore[T any](pool *pgxpool.Pool, table domain.Table[T]) *Store[T] {
	cols := make([]string, len(table.Columns))
	for i, c := range table.Columns {
		cols[i] = pgx.Identifier{c}.Sanitize()
	}
	return &Store[T]{
		pool:    pool,
		table:   table,
		ident:   pgx.Identifier{table.Name}.Sanitize(),
		keyCol:  pgx.Identifier{table.KeyColumn}.Sanitize(),
		columns: strings.Join(cols, ", "),
	}
}

// QuerySingle - строка по ключу или (nil, nil).
func (s *Store[T]) QuerySingle(ctx context.Context, id string) (*T, error) {
	metrics.StoreQueries.WithLabelValues(s.table.Name, "single").Inc()

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, s.columns, s.ident, s.keyCol)
	rows, err := s.pool.Query(ctx, q, id)
	if err != nil {
		return nil, fmt.Errorf("select %s by key: %w", s.table.Name, err)
	}
	row, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.table.Name, err)
	}
	return &row, nil
}

// QueryMany - один запрос "key = ANY($1)" на весь набор ключей.
func (s *Store[T]) QueryMany(ctx context.Context, ids []string) ([]T, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	metrics.StoreQueries.WithLabelValues(s.table.Name, "many").Inc()

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1::text[])`, s.columns, s.ident, s.keyCol)
	rows, err := s.pool.Query(ctx, q, ids)
	if err != nil {
		return nil, fmt.Errorf("select %s by keys: %w", s.table.Name, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.table.Name, err)
	}
	return out, nil
}

// QueryBy - строки с column = value, по возрастанию ключа.
func (s *Store[T]) QueryBy(ctx context.Context, column string, value any) ([]T, error) {
	if !s.table.HasColumn(column) {
		return nil, fmt.Errorf("select %s: unknown column %q", s.table.Name, column)
	}
	metrics.StoreQueries.WithLabelValues(s.table.Name, "by").Inc()

	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		s.columns, s.ident, pgx.Identifier{column}.Sanitize(), s.keyCol)
	rows, err := s.pool.Query(ctx, q, value)
	if err != nil {
		return nil, fmt.Errorf("select %s by %s: %w", s.table.Name, column, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", s.table.Name, err)
	}
	return out, nil
}

// InsertMany - COPY всех строк в одной транзакции: либо все, либо ни одной.
func (s *Store[T]) InsertMany(ctx context.Context, rows []T) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	metrics.StoreQueries.WithLabelValues(s.table.Name, "insert").Inc()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer rollback(ctx, tx)

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{s.table.Name},
		s.table.Columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return s.table.Values(rows[i]), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into %s: %w", s.table.Name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s insert: %w", s.table.Name, err)
	}
	return n, nil
}

// UpdateMany - все UPDATE одним pgx.Batch внутри транзакции.
// Возвращает суммарное число затронутых строк.
func (s *Store[T]) UpdateMany(ctx context.Context, updates []domain.RowUpdate) (int64, error) {
	if len(updates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		q, args, err := s.updateSQL(u)
		if err != nil {
			return 0, err
		}
		batch.Queue(q, args...)
	}
	metrics.StoreQueries.WithLabelValues(s.table.Name, "update").Inc()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer rollback(ctx, tx)

	br := tx.SendBatch(ctx, batch)
	var total int64
	for _, u := range updates {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return 0, fmt.Errorf("update %s %s: %w", s.table.Name, u.ID, err)
		}
		total += tag.RowsAffected()
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close %s batch: %w", s.table.Name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s update: %w", s.table.Name, err)
	}
	return total, nil
}

// updateSQL - UPDATE с колонками в отсортированном порядке, чтобы текст запроса
// был стабильным и кэшировался pgx как prepared statement.
func (s *Store[T]) updateSQL(u domain.RowUpdate) (string, []any, error) {
	if len(u.Fields) == 0 {
		return "", nil, fmt.Errorf("update %s %s: no fields", s.table.Name, u.ID)
	}
	cols := make([]string, 0, len(u.Fields))
	for c := range u.Fields {
		if c == s.table.KeyColumn || !s.table.HasColumn(c) {
			return "", nil, fmt.Errorf("update %s: unknown column %q", s.table.Name, c)
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]any, 0, len(cols)+1)
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", pgx.Identifier{c}.Sanitize(), i+1)
		args = append(args, u.Fields[c])
	}
	args = append(args, u.ID)

	q := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $%d`, s.ident, strings.Join(sets, ", "), s.keyCol, len(args))
	return q, args, nil
}

// rollback - при уже завершённой транзакции Rollback вернёт ErrTxClosed, это норма.
func rollback(ctx context.Context, tx pgx.Tx) {
	_ = tx.Rollback(ctx)
}
