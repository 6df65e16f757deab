package config_test

import (
	"errors"
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/storefront/config"
)

// TestLoadWithPrefix_Defaults - значения по умолчанию без переменных окружения.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("SF_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" || c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP defaults wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}

	// Tracing
	if c.Tracing.Enabled || c.Tracing.ServiceName != "storefront" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Postgres
	if c.Postgres.DSN == "" || c.Postgres.MaxConns != 10 {
		t.Fatalf("Postgres defaults wrong: %+v", c.Postgres)
	}

	// Redis
	if c.Redis.URL != "redis://redis:6379/0" || c.Redis.PoolSize != 20 || c.Redis.OpTimeout != 200*time.Millisecond {
		t.Fatalf("Redis defaults wrong: %+v", c.Redis)
	}

	// Cache: уровни TTL
	if c.Cache.Backend != "redis" || c.Cache.Namespace != "sf" {
		t.Fatalf("Cache backend/namespace wrong: %+v", c.Cache)
	}
	if c.Cache.ShortTTL != time.Minute || c.Cache.MediumTTL != 5*time.Minute || c.Cache.LongTTL != time.Hour {
		t.Fatalf("Cache TTL tiers wrong: %+v", c.Cache)
	}
	if c.Cache.SingleFlight || c.Cache.SetConcurrency != 8 || c.Cache.MemoryCapacity != 10000 {
		t.Fatalf("Cache tuning defaults wrong: %+v", c.Cache)
	}

	// Kafka
	if !c.Kafka.Enabled || !slices.Equal(c.Kafka.Brokers, []string{"kafka:9092"}) {
		t.Fatalf("Kafka defaults wrong: %+v", c.Kafka)
	}
	if c.Kafka.Topic != "cache-invalidation" || c.Kafka.GroupID != "storefront" || c.Kafka.StartOffset != "last" {
		t.Fatalf("Kafka topic defaults wrong: %+v", c.Kafka)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "SF_TEST_OVR"

	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_POSTGRES_MAX_CONNS", "42")
	t.Setenv(p+"_REDIS_URL", "")
	t.Setenv(p+"_CACHE_BACKEND", "memory")
	t.Setenv(p+"_CACHE_SHORT_TTL", "15s")
	t.Setenv(p+"_CACHE_LONG_TTL", "24h")
	t.Setenv(p+"_CACHE_SINGLE_FLIGHT", "true")
	t.Setenv(p+"_KAFKA_ENABLED", "false")
	t.Setenv(p+"_KAFKA_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	if c.HTTP.Addr != ":9999" || c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.Postgres.MaxConns != 42 {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if c.Redis.URL != "" {
		t.Fatalf("Redis.URL: want empty (cache not configured), got %q", c.Redis.URL)
	}
	if c.Cache.Backend != "memory" || c.Cache.ShortTTL != 15*time.Second || c.Cache.LongTTL != 24*time.Hour || !c.Cache.SingleFlight {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Kafka.Enabled || !slices.Equal(c.Kafka.Brokers, []string{"k1:9092", "k2:9093"}) {
		t.Fatalf("Kafka overrides wrong: %+v", c.Kafka)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Невалидное значение - ошибка.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "SF_TEST_BAD"
	t.Setenv(p+"_CACHE_MEDIUM_TTL", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}

// Значения, ломающие инварианты кэша, отклоняются при загрузке.
func TestLoadWithPrefix_RejectsUnsafeValues(t *testing.T) {
	cases := []struct {
		env, value, field string
	}{
		{"CACHE_SHORT_TTL", "0s", "Cache.ShortTTL"},
		{"CACHE_MEDIUM_TTL", "-1m", "Cache.MediumTTL"},
		{"CACHE_LONG_TTL", "0", "Cache.LongTTL"},
		{"CACHE_FLIGHT_TIMEOUT", "0s", "Cache.FlightTimeout"},
		{"CACHE_SET_CONCURRENCY", "0", "Cache.SetConcurrency"},
		{"CACHE_MEMORY_CAPACITY", "-5", "Cache.MemoryCapacity"},
		{"CACHE_BACKEND", "memcached", "Cache.Backend"},
		{"KAFKA_PROCESS_TIMEOUT", "0s", "Kafka.ProcessTimeout"},
		{"TRACING_SAMPLE_RATIO", "1.5", "Tracing.SampleRatio"},
		{"POSTGRES_MIN_CONNS", "20", "Postgres.MinConns"},
	}
	for _, tc := range cases {
		t.Run(tc.env, func(t *testing.T) {
			p := "SF_TEST_UNSAFE_" + tc.env
			t.Setenv(p+"_"+tc.env, tc.value)

			_, err := cfg.LoadWithPrefix(p)
			var ce *cfg.ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("want *ConfigError, got %v", err)
			}
			if ce.Field != tc.field {
				t.Fatalf("field = %q, want %q", ce.Field, tc.field)
			}
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	c, err := cfg.LoadWithPrefix("SF_TEST_VALIDATE")
	if err != nil {
		t.Fatalf("defaults must be valid: %v", err)
	}
	if c.Cache.FlightTimeout != 5*time.Second {
		t.Fatalf("FlightTimeout default = %s", c.Cache.FlightTimeout)
	}
	if c.Kafka.MaxWait != 250*time.Millisecond || c.Postgres.StatementTimeout != 10*time.Second {
		t.Fatalf("kafka max wait = %s, statement timeout = %s", c.Kafka.MaxWait, c.Postgres.StatementTimeout)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}
