package ports

import (
	"context"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// Store - реляционное хранилище одной таблицы со строками типа T.
// Многострочные операции выполняются за один round trip и атомарно.
type Store[T any] interface {
	// QuerySingle - строка по ключу; (nil, nil), если строки нет.
	QuerySingle(ctx context.Context, id string) (*T, error)

	// QueryMany - строки по набору ключей; отсутствующие пропускаются.
	QueryMany(ctx context.Context, ids []string) ([]T, error)

	// QueryBy - строки, у которых column = value.
	QueryBy(ctx context.Context, column string, value any) ([]T, error)

	InsertMany(ctx context.Context, rows []T) (int64, error)
	UpdateMany(ctx context.Context, updates []domain.RowUpdate) (int64, error)
}
