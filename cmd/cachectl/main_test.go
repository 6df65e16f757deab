package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/app"
)

// cachectl не должен молча работать с локальным или недоступным кэшем.
func TestOpenSharedCache_RejectsNonShared(t *testing.T) {
	ctx := context.Background()

	for _, backend := range []string{"memory", "none", ""} {
		_, err := openSharedCache(ctx, config.Cache{Backend: backend, MemoryCapacity: 10}, config.Redis{})
		if err == nil || !strings.Contains(err.Error(), "shared redis cache") {
			t.Fatalf("backend %q: want rejection, got %v", backend, err)
		}
	}

	_, err := openSharedCache(ctx, config.Cache{Backend: "redis"},
		config.Redis{URL: "redis://127.0.0.1:1/0", DialTimeout: 100 * time.Millisecond})
	if !errors.Is(err, app.ErrCacheUnavailable) {
		t.Fatalf("unreachable redis: want ErrCacheUnavailable, got %v", err)
	}
}
