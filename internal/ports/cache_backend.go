package ports

import (
	"context"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
)

// CacheBackend - сырое хранилище ключ/значение с TTL (Redis, память, заглушка).
// Значения непрозрачны; сериализацией владеет слой выше.
// Ошибки возвращаются как есть - решение "fail-open" принимает cache.Client.
type CacheBackend interface {
	// Name - короткое имя бэкенда для логов и статистики.
	Name() string

	// Get - (value, true, nil) при попадании, (nil, false, nil) при промахе.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// GetMany - значения по ключам одним запросом; отсутствующих ключей нет в ответе.
	GetMany(ctx context.Context, keys []string) (map[string][]byte, error)

	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// DeleteByPattern - удалить ключи по шаблону вида "prefix*"; возвращает число удалённых.
	DeleteByPattern(ctx context.Context, pattern string) (int64, error)

	Flush(ctx context.Context) error
	Stats(ctx context.Context) (domain.CacheStats, error)
	Close() error
}
