//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/repo/postgres"
)

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// lifecycle - одна строка лога на старт и остановку контейнера.
func lifecycle(name string) tc.CustomizeRequestOption {
	short := func(c tc.Container) string {
		if id := c.GetContainerID(); len(id) > 12 {
			return id[:12]
		}
		return c.GetContainerID()
	}
	return tc.WithLifecycleHooks(tc.ContainerLifecycleHooks{
		PostReadies: []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			tcLogger.Printf("%s ready id=%s", name, short(c))
			return nil
		}},
		PostTerminates: []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			tcLogger.Printf("%s terminated id=%s", name, short(c))
			return nil
		}},
	})
}

type PGContainer struct {
	Container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

// StartPostgresTC - Postgres со схемой витрины; пул собирается тем же
// postgres.NewPool, что и в сервисе.
func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		lifecycle("postgres"),
		tcpostgres.WithDatabase("storefront"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("app"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}
	fail := func(step string, err error) (*PGContainer, func(context.Context) error, error) {
		_ = tc.TerminateContainer(pg)
		return nil, nil, fmt.Errorf("%s: %w", step, err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return fail("conn string", err)
	}
	if err := ApplyMigrations(dsn); err != nil {
		return fail("migrations", err)
	}
	pool, err := postgres.NewPool(ctx, config.Postgres{DSN: dsn, MaxConns: 5, StatementTimeout: 30 * time.Second})
	if err != nil {
		return fail("pool", err)
	}

	stop := func(context.Context) error {
		pool.Close()
		return tc.TerminateContainer(pg)
	}
	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// StartKafkaTC - Redpanda как Kafka-совместимый брокер для топика инвалидаций.
func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(ctx, "docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		lifecycle("redpanda"),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}
	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}
	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}

type RedisEnv struct {
	Container *tcredis.RedisContainer
	URL       string // redis://host:port
}

// StartRedisTC - общий кэш витрины.
func StartRedisTC(ctx context.Context) (*RedisEnv, func(context.Context) error, error) {
	rc, err := tcredis.Run(ctx, "redis:7-alpine", lifecycle("redis"))
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}
	url, err := rc.ConnectionString(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rc)
		return nil, nil, fmt.Errorf("redis conn string: %w", err)
	}
	stop := func(context.Context) error { return tc.TerminateContainer(rc) }
	return &RedisEnv{Container: rc, URL: url}, stop, nil
}
