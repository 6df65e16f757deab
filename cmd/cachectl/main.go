// cachectl - обслуживание кэша витрины из командной строки.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Gunvolt24/storefront/config"
	"github.com/Gunvolt24/storefront/internal/app"
	"github.com/Gunvolt24/storefront/internal/catalog"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/query"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/logger"
	"github.com/Gunvolt24/storefront/pkg/validate"
)

func main() {
	_ = godotenv.Load(".env.local")

	cliApp := cli.App{
		Name:  "cachectl",
		Usage: "inspect and invalidate the storefront cache",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "timeout for a single command",
				Value: 30 * time.Second,
			},
		},
	}
	cliApp.Commands = []*cli.Command{
		{
			Name:   "stats",
			Usage:  "print backend, key count and memory usage",
			Action: runStats,
		},
		{
			Name:  "invalidate",
			Usage: "delete every cached key of a table",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "table", Required: true, Usage: "table name: " + fmt.Sprint(catalog.Names())},
			},
			Action: runInvalidate,
		},
		{
			Name:   "flush",
			Usage:  "drop the whole cache",
			Action: runFlush,
		},
		{
			Name:  "replay",
			Usage: "apply invalidation events from a file (.json object or array, .jsonl); stdin when --in is empty",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "in", Usage: "path to input file"},
				&cli.StringFlag{Name: "format", Value: "auto", Usage: "input format: auto|json|jsonl"},
			},
			Action: runReplay,
		},
	}
	cliApp.RunAndExitOnError()
}

// withService собирает сервис запросов без хранилища: командам нужен только кэш.
func withService(cctx *cli.Context, fn func(ctx context.Context, svc *query.Service) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, cancel := context.WithTimeout(cctx.Context, cctx.Duration("timeout"))
	defer cancel()

	logg, cleanup, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	backend, err := openSharedCache(ctx, cfg.Cache, cfg.Redis)
	if err != nil {
		return err
	}
	svc, client := app.NewQueryService(backend, cfg.Cache, logg)
	defer func() { _ = client.Close() }()

	return fn(ctx, svc)
}

// openSharedCache - бэкенд, общий с сервером. Локальный memory/none кэш
// процесса cachectl ничего не говорит о кэше сервиса, поэтому это ошибка,
// как и недоступный Redis.
func openSharedCache(ctx context.Context, cc config.Cache, rc config.Redis) (ports.CacheBackend, error) {
	b, err := app.OpenCacheBackend(ctx, cc, rc)
	if err != nil {
		return nil, err
	}
	if b.Name() != "redis" {
		_ = b.Close()
		return nil, fmt.Errorf("cachectl needs the shared redis cache, configured backend=%q", b.Name())
	}
	return b, nil
}

func runStats(cctx *cli.Context) error {
	return withService(cctx, func(ctx context.Context, svc *query.Service) error {
		st, err := svc.CacheStats(ctx)
		if err != nil {
			return fmt.Errorf("cache stats: %w", err)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	})
}

func runInvalidate(cctx *cli.Context) error {
	table := cctx.String("table")
	if !catalog.Known(table) {
		return fmt.Errorf("unknown table %q, known: %v", table, catalog.Names())
	}
	return withService(cctx, func(ctx context.Context, svc *query.Service) error {
		n, err := svc.InvalidateTableCache(ctx, table)
		if err != nil {
			return fmt.Errorf("invalidate (deleted %d before failure): %w", n, err)
		}
		fmt.Printf("invalidated table=%s keys=%d\n", table, n)
		return nil
	})
}

func runFlush(cctx *cli.Context) error {
	return withService(cctx, func(ctx context.Context, svc *query.Service) error {
		if err := svc.FlushCache(ctx); err != nil {
			return err
		}
		fmt.Println("cache flushed")
		return nil
	})
}

func runReplay(cctx *cli.Context) error {
	path := cctx.String("in")
	if path == "" {
		path = validate.StdinPath
	}
	format := validate.InputFormat(cctx.String("format"))

	return withService(cctx, func(ctx context.Context, svc *query.Service) error {
		v := validate.NewInvalidationValidator(catalog.Known)
		handler := usecase.NewInvalidationService(svc, v, logger.NewNop())

		summary, err := validate.ReplayFile(ctx, v, path, format, handler.Apply)
		if err != nil {
			fmt.Fprintf(os.Stderr, "replay: %v (%s)\n", err, summary)
			return err
		}
		fmt.Fprintf(os.Stderr, "replay ok (%s)\n", summary)
		return nil
	})
}
