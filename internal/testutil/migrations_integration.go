//go:build integration

package testutil

import (
	"database/sql"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/storefront/migrations"
)

// goose держит FS и диалект глобально; тесты пакета могут идти параллельно.
var gooseMu sync.Mutex

// ApplyMigrations накатывает схему витрины (встроенный migrations.FS).
func ApplyMigrations(dsn string) error {
	return ApplyMigrationsFS(dsn, migrations.FS, ".")
}

// ApplyMigrationsFS - goose up по каталогу dir внутри fsys.
func ApplyMigrationsFS(dsn string, fsys fs.FS, dir string) error {
	entries, err := fs.Glob(fsys, path.Join(dir, "*.sql"))
	if err != nil || len(entries) == 0 {
		return fmt.Errorf("no migrations in %q: %v", dir, err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(log.New(os.Stdout, "", 0))
	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up (%d files): %w", len(entries), err)
	}
	return nil
}
