package cache

import (
	"context"
	"time"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/sync/singleflight"
)

// Aside - cache-aside поверх Client: сериализация значений (msgpack),
// TTL по классам и, опционально, склейка одновременных промахов по ключу.
type Aside struct {
	client *Client
	ttls   TTLs
	log    ports.Logger
	group  *singleflight.Group // nil - каждый промах вызывает producer

	flightTimeout time.Duration
}

// defaultFlightTimeout - предел для общего producer при склейке промахов.
const defaultFlightTimeout = 10 * time.Second

type AsideOption func(*Aside)

// WithSingleFlight - одновременные промахи по одному ключу ждут один producer.
// Каждый ждущий уходит по своему контексту, общий producer ограничен flightTimeout.
func WithSingleFlight() AsideOption {
	return func(a *Aside) { a.group = &singleflight.Group{} }
}

// WithFlightTimeout - таймаут общего producer; <= 0 оставляет значение по умолчанию.
func WithFlightTimeout(d time.Duration) AsideOption {
	return func(a *Aside) {
		if d > 0 {
			a.flightTimeout = d
		}
	}
}

func NewAside(client *Client, ttls TTLs, log ports.Logger, opts ...AsideOption) *Aside {
	a := &Aside{client: client, ttls: ttls, log: log, flightTimeout: defaultFlightTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aside) Client() *Client { return a.client }
func (a *Aside) TTLs() TTLs      { return a.ttls }

// Put сериализует v и пишет в кэш с TTL класса. Ошибки только логируются.
// Без положительного TTL запись не делается: вечная запись нарушила бы
// границу устаревания.
func (a *Aside) Put(ctx context.Context, key string, tier domain.Tier, v any) {
	ttl := a.ttls.For(tier)
	if ttl <= 0 {
		a.log.Warnf(ctx, "cache write skipped key=%s tier=%s ttl=%s", key, tier, ttl)
		return
	}
	raw, err := msgpack.Marshal(v)
	if err != nil {
		a.log.Warnf(ctx, "cache encode failed key=%s err=%v", key, err)
		return
	}
	a.client.Set(ctx, key, raw, ttl)
}

// Decode разбирает значение из кэша в dst. false - значение битое, это промах.
func (a *Aside) Decode(ctx context.Context, key string, raw []byte, dst any) bool {
	if err := msgpack.Unmarshal(raw, dst); err != nil {
		metrics.CacheOps.WithLabelValues("decode_error").Inc()
		a.log.Warnf(ctx, "cache decode failed key=%s err=%v", key, err)
		return false
	}
	return true
}

// WithCache - прочитать key из кэша или вычислить через producer и сохранить.
//
// Попадание: producer не вызывается. Промах, ошибка кэша или битое значение:
// producer вызывается ровно один раз, результат пишется с TTL класса tier.
// Ошибка producer (в т.ч. ErrAbsent) возвращается как есть, в кэш ничего не пишется.
func WithCache[T any](ctx context.Context, a *Aside, key string, tier domain.Tier, producer func(context.Context) (T, error)) (T, error) {
	if lookup := a.client.Get(ctx, key); lookup.Found() {
		var v T
		if a.Decode(ctx, key, lookup.Value, &v) {
			return v, nil
		}
	}

	if a.group == nil {
		return produce(ctx, a, key, tier, producer)
	}

	// общий producer не зависит от отмены первого вызвавшего: иначе его
	// отмена уронила бы всех, кто ждёт тот же ключ
	ch := a.group.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.flightTimeout)
		defer cancel()
		return produce(fctx, a, key, tier, producer)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

func produce[T any](ctx context.Context, a *Aside, key string, tier domain.Tier, producer func(context.Context) (T, error)) (T, error) {
	v, err := producer(ctx)
	if err != nil {
		return v, err
	}
	a.Put(ctx, key, tier, v)
	return v, nil
}
