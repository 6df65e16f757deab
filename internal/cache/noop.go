package cache

import (
	"context"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// Noop - бэкенд для ненастроенного кэша: любое чтение - промах, запись игнорируется.
type Noop struct{}

var _ ports.CacheBackend = Noop{}

func (Noop) Name() string { return "none" }

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) GetMany(context.Context, []string) (map[string][]byte, error) {
	return map[string][]byte{}, nil
}

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error                  { return nil }
func (Noop) DeleteByPattern(context.Context, string) (int64, error)   { return 0, nil }
func (Noop) Flush(context.Context) error                              { return nil }

func (Noop) Stats(context.Context) (domain.CacheStats, error) {
	return domain.CacheStats{Backend: "none", MemoryUsageHuman: "0B"}, nil
}

func (Noop) Close() error { return nil }
