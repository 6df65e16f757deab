package memory

import (
	"container/list"
	"fmt"
	"time"

	"github.com/Gunvolt24/storefront/pkg/metrics"
)

// lookup - значение по ключу с учётом срока; вызывать под c.mu.
func (c *LRUCacheTTL) lookup(key string, now time.Time) ([]byte, bool) {
	elem, ok := c.index[key]
	if !ok {
		return nil, false
	}
	ent := elem.Value.(*entry)
	if isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return nil, false
	}
	c.ll.MoveToFront(elem)
	return cloneBytes(ent.value), true
}

// evictLRU - удаляет наименее используемый элемент.
func (c *LRUCacheTTL) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

func (c *LRUCacheTTL) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(c.index, ent.key)
	c.bytes -= int64(len(ent.value))
	c.ll.Remove(elem)
}

// pruneExpiredFromBack - снимает просроченные записи с хвоста до первой живой.
// Сроки у записей разные, поэтому это только дешёвая уборка, а не полный проход.
func (c *LRUCacheTTL) pruneExpiredFromBack(now time.Time) {
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		if !isExpired(back.Value.(*entry), now) {
			return
		}
		c.removeElement(back)
		metrics.CacheOps.WithLabelValues("expired").Inc()
		metrics.CacheSize.Set(float64(len(c.index)))
	}
}

func isExpired(ent *entry, now time.Time) bool {
	return !ent.expiresAt.IsZero() && now.After(ent.expiresAt)
}

func expiryFrom(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f%c", float64(n)/float64(div), "KMGTPE"[exp])
}
