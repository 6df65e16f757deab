package cache

import (
	"context"
	"errors"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// deleteChunk - сколько ключей удаляем одной командой.
const deleteChunk = 500

// Client - фасад над CacheBackend, который не отдаёт ошибки кэша на пути запроса:
// ошибки чтения превращаются в Outcome BackendError, ошибки записи логируются.
// Варианты *Err нужны инвалидации и админке: там ошибку надо увидеть.
type Client struct {
	backend ports.CacheBackend
	log     ports.Logger
}

// NewClient - backend == nil означает "кэш не настроен" (Noop).
func NewClient(backend ports.CacheBackend, log ports.Logger) *Client {
	if backend == nil {
		backend = Noop{}
	}
	return &Client{backend: backend, log: log}
}

// Backend - имя активного бэкенда.
func (c *Client) Backend() string { return c.backend.Name() }

func (c *Client) Get(ctx context.Context, key string) Lookup {
	val, ok, err := c.backend.Get(ctx, key)
	switch {
	case err != nil:
		c.fail(ctx, "get", key, err)
		return Lookup{Outcome: BackendError, Err: err}
	case !ok:
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return Lookup{Outcome: Miss}
	default:
		metrics.CacheOps.WithLabelValues("hit").Inc()
		return Lookup{Outcome: Hit, Value: val}
	}
}

// GetMany - один запрос к бэкенду на все ключи. Результат выровнен по keys.
// При ошибке бэкенда каждый элемент - BackendError.
func (c *Client) GetMany(ctx context.Context, keys []string) []Lookup {
	out := make([]Lookup, len(keys))
	if len(keys) == 0 {
		return out
	}

	vals, err := c.backend.GetMany(ctx, keys)
	if err != nil {
		c.fail(ctx, "mget", keys[0], err)
		for i := range out {
			out[i] = Lookup{Outcome: BackendError, Err: err}
		}
		return out
	}

	var hits int
	for i, k := range keys {
		if v, ok := vals[k]; ok {
			out[i] = Lookup{Outcome: Hit, Value: v}
			hits++
			continue
		}
		out[i] = Lookup{Outcome: Miss}
	}
	metrics.CacheOps.WithLabelValues("hit").Add(float64(hits))
	metrics.CacheOps.WithLabelValues("miss").Add(float64(len(keys) - hits))
	return out
}

// Set - ошибка записи только логируется.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.backend.Set(ctx, key, value, ttl); err != nil {
		c.fail(ctx, "set", key, err)
		return
	}
	metrics.CacheOps.WithLabelValues("set").Inc()
}

// Delete удаляет ключи пачками по deleteChunk; ошибки только логируются.
func (c *Client) Delete(ctx context.Context, keys ...string) {
	_ = c.DeleteErr(ctx, keys...)
}

// DeleteErr - как Delete, но возвращает ошибки бэкенда. Упавшая пачка
// не останавливает удаление остальных.
func (c *Client) DeleteErr(ctx context.Context, keys ...string) error {
	var errs []error
	for start := 0; start < len(keys); start += deleteChunk {
		end := min(start+deleteChunk, len(keys))
		if err := c.backend.Delete(ctx, keys[start:end]...); err != nil {
			c.fail(ctx, "delete", keys[start], err)
			errs = append(errs, err)
			continue
		}
		metrics.CacheOps.WithLabelValues("delete").Add(float64(end - start))
	}
	return errors.Join(errs...)
}

// DeleteByPattern - число удалённых ключей; при ошибке бэкенда столько,
// сколько успели удалить до неё.
func (c *Client) DeleteByPattern(ctx context.Context, pattern string) int64 {
	n, _ := c.DeleteByPatternErr(ctx, pattern)
	return n
}

func (c *Client) DeleteByPatternErr(ctx context.Context, pattern string) (int64, error) {
	n, err := c.backend.DeleteByPattern(ctx, pattern)
	metrics.CacheKeysDeleted.Add(float64(n))
	if err != nil {
		c.fail(ctx, "delete_pattern", pattern, err)
		return n, err
	}
	return n, nil
}

func (c *Client) Flush(ctx context.Context) {
	_ = c.FlushErr(ctx)
}

func (c *Client) FlushErr(ctx context.Context) error {
	if err := c.backend.Flush(ctx); err != nil {
		c.fail(ctx, "flush", "*", err)
		return err
	}
	return nil
}

// Stats - единственный метод, который возвращает ошибку бэкенда: это диагностика.
func (c *Client) Stats(ctx context.Context) (domain.CacheStats, error) {
	st, err := c.backend.Stats(ctx)
	if err != nil {
		return domain.CacheStats{Backend: c.backend.Name()}, err
	}
	if st.Backend == "" {
		st.Backend = c.backend.Name()
	}
	return st, nil
}

func (c *Client) Close() error { return c.backend.Close() }

func (c *Client) fail(ctx context.Context, op, key string, err error) {
	metrics.CacheOps.WithLabelValues("error").Inc()
	if c.log != nil {
		c.log.Warnf(ctx, "cache %s failed backend=%s key=%s err=%v", op, c.backend.Name(), key, err)
	}
}
