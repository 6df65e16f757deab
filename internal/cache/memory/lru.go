package memory

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
)

type entry struct {
	key       string
	value     []byte
	expiresAt time.Time // нулевое значение - без срока
}

// LRUCacheTTL - кэш в памяти процесса: LRU по ёмкости плюс TTL на каждую запись.
// Используется как бэкенд без Redis (локальный запуск, тесты).
// Срок записи не продлевается при чтении: значение не старше TTL класса.
type LRUCacheTTL struct {
	capacity int

	ll    *list.List
	index map[string]*list.Element
	bytes int64

	now func() time.Time

	mu sync.Mutex
}

var _ ports.CacheBackend = (*LRUCacheTTL)(nil)

func NewLRUCacheTTL(capacity int) *LRUCacheTTL {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCacheTTL{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

func (c *LRUCacheTTL) Name() string { return "memory" }

func (c *LRUCacheTTL) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lookup(key, now)
	return v, ok, nil
}

func (c *LRUCacheTTL) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	now := c.now()
	out := make(map[string][]byte, len(keys))

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		if v, ok := c.lookup(k, now); ok {
			out[k] = v
		}
	}
	return out, nil
}

func (c *LRUCacheTTL) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return nil
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		ent := elem.Value.(*entry)
		c.bytes += int64(len(value) - len(ent.value))
		ent.value = cloneBytes(value)
		ent.expiresAt = expiryFrom(now, ttl)
		c.ll.MoveToFront(elem)
		return nil
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		key:       key,
		value:     cloneBytes(value),
		expiresAt: expiryFrom(now, ttl),
	})
	c.index[key] = elem
	c.bytes += int64(len(value))
	metrics.CacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	return nil
}

func (c *LRUCacheTTL) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range keys {
		if elem, ok := c.index[k]; ok {
			c.removeElement(elem)
		}
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return nil
}

// DeleteByPattern понимает шаблоны вида "prefix*"; без звёздочки - точный ключ.
func (c *LRUCacheTTL) DeleteByPattern(_ context.Context, pattern string) (int64, error) {
	prefix, isPrefix := strings.CutSuffix(pattern, "*")

	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for e := c.ll.Front(); e != nil; {
		next := e.Next()
		key := e.Value.(*entry).key
		if (isPrefix && strings.HasPrefix(key, prefix)) || (!isPrefix && key == pattern) {
			c.removeElement(e)
			n++
		}
		e = next
	}
	metrics.CacheSize.Set(float64(len(c.index)))
	return n, nil
}

func (c *LRUCacheTTL) Flush(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ll.Init()
	c.index = make(map[string]*list.Element)
	c.bytes = 0
	metrics.CacheSize.Set(0)
	return nil
}

func (c *LRUCacheTTL) Stats(context.Context) (domain.CacheStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pruneExpiredFromBack(c.now())
	return domain.CacheStats{
		Backend:          c.Name(),
		TotalKeys:        int64(len(c.index)),
		MemoryUsageBytes: c.bytes,
		MemoryUsageHuman: humanBytes(c.bytes),
	}, nil
}

func (c *LRUCacheTTL) Close() error { return nil }
