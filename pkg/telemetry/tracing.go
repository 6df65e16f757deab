package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"

	"github.com/Gunvolt24/storefront/config"
)

const defaultEndpoint = "localhost:4318"

// Ключи ресурса, по которым спаны разных инстансов делятся по кэшу.
const (
	AttrCacheBackend   = attribute.Key("storefront.cache.backend")
	AttrCacheNamespace = attribute.Key("storefront.cache.namespace")
)

// CacheAttributes - атрибуты ресурса для активного бэкенда кэша.
func CacheAttributes(backend, namespace string) []attribute.KeyValue {
	return []attribute.KeyValue{
		AttrCacheBackend.String(backend),
		AttrCacheNamespace.String(namespace),
	}
}

// SetupTracing - OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// extra дописываются в ресурс рядом с именем сервиса.
// Возвращает Shutdown провайдера.
func SetupTracing(ctx context.Context, cfg config.Tracing, extra ...attribute.KeyValue) (func(context.Context) error, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	traceProvider := newProvider(cfg, sdktrace.WithBatcher(exporter), extra...)

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)
	return traceProvider.Shutdown, nil
}

// newProvider - провайдер без глобальной регистрации; exporter задаёт вызывающий.
func newProvider(cfg config.Tracing, exporter sdktrace.TracerProviderOption, extra ...attribute.KeyValue) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		exporter,
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(newResource(cfg.ServiceName, extra...)),
	)
}

func newResource(serviceName string, extra ...attribute.KeyValue) *resource.Resource {
	attrs := make([]attribute.KeyValue, 0, len(extra)+2)
	attrs = append(attrs, semconv.ServiceName(serviceName), attribute.String("telemetry.sdk", "opentelemetry"))
	attrs = append(attrs, extra...)
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

// clampRatio - доля семплинга в [0..1].
func clampRatio(r float64) float64 {
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}
