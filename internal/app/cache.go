package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/cache"
	"github.com/Gunvolt24/storefront/internal/cache/memory"
	"github.com/Gunvolt24/storefront/internal/cache/rediscache"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/query"
)

// ErrCacheUnavailable - бэкенд настроен, но подключиться к нему не удалось.
var ErrCacheUnavailable = errors.New("cache backend unavailable")

// NewCacheBackend выбирает бэкенд кэша по конфигурации.
// Недоступный Redis не мешает старту: сервис работает без кэша (Noop)
// и пишет предупреждение.
func NewCacheBackend(ctx context.Context, cc config.Cache, rc config.Redis, log ports.Logger) (ports.CacheBackend, error) {
	b, err := OpenCacheBackend(ctx, cc, rc)
	if errors.Is(err, ErrCacheUnavailable) {
		log.Warnf(ctx, "caching disabled: %v", err)
		return cache.Noop{}, nil
	}
	return b, err
}

// OpenCacheBackend - то же без запасного Noop: ошибка подключения возвращается
// (ErrCacheUnavailable). Нужен инструментам, которым важен реальный результат.
func OpenCacheBackend(ctx context.Context, cc config.Cache, rc config.Redis) (ports.CacheBackend, error) {
	switch strings.ToLower(strings.TrimSpace(cc.Backend)) {
	case "redis":
		if rc.URL == "" {
			return nil, fmt.Errorf("%w: backend=redis but REDIS_URL is empty", ErrCacheUnavailable)
		}
		b, err := rediscache.New(ctx, rediscache.Options{
			URL:         rc.URL,
			PoolSize:    rc.PoolSize,
			DialTimeout: rc.DialTimeout,
			OpTimeout:   rc.OpTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCacheUnavailable, err)
		}
		return b, nil
	case "memory":
		return memory.NewLRUCacheTTL(cc.MemoryCapacity), nil
	case "none", "":
		return cache.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (want redis|memory|none)", cc.Backend)
	}
}

// TTLsFrom - длительности уровней TTL из конфигурации.
func TTLsFrom(cc config.Cache) cache.TTLs {
	return cache.TTLs{Short: cc.ShortTTL, Medium: cc.MediumTTL, Long: cc.LongTTL}
}

// NewQueryService - клиент кэша и сервис запросов поверх выбранного бэкенда.
func NewQueryService(backend ports.CacheBackend, cc config.Cache, log ports.Logger) (*query.Service, *cache.Client) {
	client := cache.NewClient(backend, log)

	var asideOpts []cache.AsideOption
	if cc.SingleFlight {
		asideOpts = append(asideOpts, cache.WithSingleFlight())
	}
	if cc.FlightTimeout > 0 {
		asideOpts = append(asideOpts, cache.WithFlightTimeout(cc.FlightTimeout))
	}
	aside := cache.NewAside(client, TTLsFrom(cc), log, asideOpts...)

	return query.NewService(aside, cache.NewKeys(cc.Namespace), log, query.WithSetConcurrency(cc.SetConcurrency)), client
}
