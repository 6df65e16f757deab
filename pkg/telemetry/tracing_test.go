package telemetry

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/Gunvolt24/storefront/config"
)

func TestProvider_ResourceCarriesCacheAttributes(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := newProvider(
		config.Tracing{ServiceName: "storefront-test", SampleRatio: 1},
		sdktrace.WithSyncer(exp),
		CacheAttributes("redis", "sf")...,
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	spans := exp.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("spans = %d", len(spans))
	}
	got := map[attribute.Key]string{}
	for _, kv := range spans[0].Resource.Attributes() {
		got[kv.Key] = kv.Value.Emit()
	}
	if got["service.name"] != "storefront-test" || got[AttrCacheBackend] != "redis" || got[AttrCacheNamespace] != "sf" {
		t.Fatalf("resource = %v", got)
	}
}

func TestProvider_ZeroRatioDropsSpans(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := newProvider(config.Tracing{ServiceName: "s", SampleRatio: 0}, sdktrace.WithSyncer(exp))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	span.End()

	if n := len(exp.GetSpans()); n != 0 {
		t.Fatalf("sampled spans = %d", n)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-0.5: 0, 0: 0, 0.25: 0.25, 1: 1, 3: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v) = %v, want %v", in, got, want)
		}
	}
}
