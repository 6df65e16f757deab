package metrics_test

import (
	"testing"

	"github.com/Gunvolt24/storefront/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMustRegister_IsIdempotent(t *testing.T) {
	// Должно выполняться без паники даже при повторном вызове.
	metrics.MustRegister()
	metrics.MustRegister()
}

func TestKafkaCounters_Inc(t *testing.T) {
	metrics.MustRegister()

	const topic = "cache-invalidation"
	beforeConsumed := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues(topic))
	beforeFailed := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues(topic))

	metrics.KafkaMessagesConsumed.WithLabelValues(topic).Inc()
	metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()

	if got := testutil.ToFloat64(metrics.KafkaMessagesConsumed.WithLabelValues(topic)); got != beforeConsumed+1 {
		t.Fatalf("KafkaMessagesConsumed: got=%v want=%v", got, beforeConsumed+1)
	}
	if got := testutil.ToFloat64(metrics.KafkaMessagesFailed.WithLabelValues(topic)); got != beforeFailed+1 {
		t.Fatalf("KafkaMessagesFailed: got=%v want=%v", got, beforeFailed+1)
	}
}

func TestCacheOps_CountersByLabel(t *testing.T) {
	metrics.MustRegister()

	hitBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit"))
	errBefore := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("error"))

	metrics.CacheOps.WithLabelValues("hit").Inc()
	metrics.CacheOps.WithLabelValues("hit").Inc()

	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("hit")); got != hitBefore+2 {
		t.Fatalf("CacheOps(hit): got=%v want=%v", got, hitBefore+2)
	}
	if got := testutil.ToFloat64(metrics.CacheOps.WithLabelValues("error")); got != errBefore {
		t.Fatalf("CacheOps(error): got=%v want=%v", got, errBefore)
	}
}

func TestStoreQueries_ByTableAndOp(t *testing.T) {
	metrics.MustRegister()

	before := testutil.ToFloat64(metrics.StoreQueries.WithLabelValues("products", "many"))
	metrics.StoreQueries.WithLabelValues("products", "many").Inc()

	if got := testutil.ToFloat64(metrics.StoreQueries.WithLabelValues("products", "many")); got != before+1 {
		t.Fatalf("StoreQueries: got=%v want=%v", got, before+1)
	}
}

func TestCacheSize_GaugeSet(t *testing.T) {
	metrics.MustRegister()

	cur := testutil.ToFloat64(metrics.CacheSize)

	metrics.CacheSize.Set(cur + 5)
	if got := testutil.ToFloat64(metrics.CacheSize); got != cur+5 {
		t.Fatalf("CacheSize after +5: got=%v want=%v", got, cur+5)
	}

	metrics.CacheSize.Set(cur) // вернуть как было
}
