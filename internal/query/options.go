package query

import (
	"context"

	"github.com/Gunvolt24/storefront/pkg/ctxmeta"
)

type findOptions struct {
	bypass bool
}

// FindOption - настройка чтения.
type FindOption func(*findOptions)

// WithoutCache - читать прямо из хранилища и не трогать кэш.
func WithoutCache() FindOption {
	return func(o *findOptions) { o.bypass = true }
}

func resolveFind(ctx context.Context, opts []FindOption) findOptions {
	o := findOptions{bypass: ctxmeta.CacheBypassFromContext(ctx)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
