// Пакет rediscache - бэкенд кэша поверх Redis (go-redis/v9).
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/redis/go-redis/v9"
)

const (
	scanCount   = 500
	unlinkBatch = 500
)

// Options - параметры подключения; нулевые значения оставляют умолчания go-redis.
type Options struct {
	URL         string
	PoolSize    int
	DialTimeout time.Duration
	OpTimeout   time.Duration // таймаут чтения/записи одной команды
}

type Backend struct {
	rdb *redis.Client
}

var _ ports.CacheBackend = (*Backend)(nil)

// New подключается к Redis и проверяет соединение через PING.
func New(ctx context.Context, o Options) (*Backend, error) {
	opt, err := redis.ParseURL(o.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if o.PoolSize > 0 {
		opt.PoolSize = o.PoolSize
	}
	if o.DialTimeout > 0 {
		opt.DialTimeout = o.DialTimeout
	}
	if o.OpTimeout > 0 {
		opt.ReadTimeout = o.OpTimeout
		opt.WriteTimeout = o.OpTimeout
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Backend{rdb: rdb}, nil
}

// NewWithClient - обёртка над уже созданным клиентом.
func NewWithClient(rdb *redis.Client) *Backend {
	return &Backend{rdb: rdb}
}

func (b *Backend) Name() string { return "redis" }

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := b.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// GetMany - один MGET на все ключи.
func (b *Backend) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	vals, err := b.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[keys[i]] = []byte(s)
		}
	}
	return out, nil
}

// Set требует положительный TTL: 0 в go-redis означает "без срока", -1 - KEEPTTL.
func (b *Backend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("redis set %s: ttl must be positive, got %s", key, ttl)
	}
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

// Delete использует UNLINK: память освобождается в фоне, команда не блокирует Redis.
func (b *Backend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return b.rdb.Unlink(ctx, keys...).Err()
}

// DeleteByPattern обходит keyspace через SCAN MATCH и удаляет найденное пачками.
func (b *Backend) DeleteByPattern(ctx context.Context, pattern string) (int64, error) {
	var (
		deleted int64
		batch   = make([]string, 0, unlinkBatch)
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := b.rdb.Unlink(ctx, batch...).Result()
		if err != nil {
			return err
		}
		deleted += n
		batch = batch[:0]
		return nil
	}

	iter := b.rdb.Scan(ctx, 0, pattern, scanCount).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == unlinkBatch {
			if err := flush(); err != nil {
				return deleted, fmt.Errorf("unlink %q: %w", pattern, err)
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("scan %q: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return deleted, fmt.Errorf("unlink %q: %w", pattern, err)
	}
	return deleted, nil
}

// Flush очищает текущую БД Redis (FLUSHDB), а не весь инстанс.
func (b *Backend) Flush(ctx context.Context) error {
	return b.rdb.FlushDB(ctx).Err()
}

func (b *Backend) Stats(ctx context.Context) (domain.CacheStats, error) {
	keys, err := b.rdb.DBSize(ctx).Result()
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("dbsize: %w", err)
	}
	info, err := b.rdb.Info(ctx, "memory").Result()
	if err != nil {
		return domain.CacheStats{}, fmt.Errorf("info memory: %w", err)
	}

	used, human := parseMemoryInfo(info)
	return domain.CacheStats{
		Backend:          b.Name(),
		TotalKeys:        keys,
		MemoryUsageBytes: used,
		MemoryUsageHuman: human,
	}, nil
}

func (b *Backend) Close() error { return b.rdb.Close() }

// parseMemoryInfo достаёт used_memory и used_memory_human из ответа INFO memory.
func parseMemoryInfo(info string) (int64, string) {
	var (
		used  int64
		human string
	)
	for _, line := range strings.Split(info, "\n") {
		k, v, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		switch k {
		case "used_memory":
			used, _ = strconv.ParseInt(v, 10, 64)
		case "used_memory_human":
			human = v
		}
	}
	return used, human
}
