package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_consumed_total",
			Help: "Number of invalidation events fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_processed_total",
			Help: "Number of invalidation events applied",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_failed_total",
			Help: "Number of invalidation events that failed to apply",
		},
		[]string{"topic"},
	)
	KafkaMessagesRetried = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invalidation_messages_retried_total",
			Help: "Retries of an invalidation event held back by a cache failure",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|error|decode_error|set|delete|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in the in-process cache",
		},
	)
	CacheKeysDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_keys_deleted_total",
			Help: "Keys removed by pattern invalidation",
		},
	)
)

var (
	StoreQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_queries_total",
			Help: "Round trips to the relational store",
		},
		[]string{"table", "op"}, // single|many|by|insert|update
	)
	BatchSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "query_batch_size",
			Help:    "Distinct ids requested by batched lookups",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"table"},
	)
	Invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_invalidations_total",
			Help: "Cache invalidations by table and kind",
		},
		[]string{"table", "kind"}, // entities|table|flush
	)
)

var registerOnce sync.Once

// MustRegister регистрирует метрики в глобальном реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed, KafkaMessagesRetried,
			CacheOps, CacheSize, CacheKeysDeleted,
			StoreQueries, BatchSize, Invalidations,
		)
	})
}
