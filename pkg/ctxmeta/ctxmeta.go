// Пакет ctxmeta - нейтральный слой для метаданных запроса, которые
// прокидываются через context.Context (request_id, trace_id, обход кэша).
// HTTP-слой, логгер и слой запросов зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	KeyRequestID   ctxKey = "request_id"
	KeyCacheBypass ctxKey = "cache_bypass"
)

// WithRequestID кладёт request_id в контекст (если пусто - ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithCacheBypass помечает запрос как "читать мимо кэша".
func WithCacheBypass(ctx context.Context) context.Context {
	if ctx == nil {
		return ctx
	}
	return context.WithValue(ctx, KeyCacheBypass, true)
}

func CacheBypassFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	v, _ := ctx.Value(KeyCacheBypass).(bool)
	return v
}
