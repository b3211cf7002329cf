// Package dbtest opens migrated databases for package tests.
package dbtest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/migrate"
)

// PostgresDSNEnv enables the postgres-backed variants of repository tests.
const PostgresDSNEnv = "STOREFRONT_TEST_DB_DSN"

// OpenSQLite returns a client on a private in-memory sqlite database with
// every migration applied, including the seeded catalog.
func OpenSQLite(t testing.TB) *db.Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DBConfig{
		Driver: config.DBDriverSQLite,
		DSN:    "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on",
	}
	return open(t, cfg)
}

// OpenPostgres connects to the database named by STOREFRONT_TEST_DB_DSN or
// skips the test when it is unset.
func OpenPostgres(t testing.TB) *db.Client {
	t.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s is not set", PostgresDSNEnv)
	}
	return open(t, config.DBConfig{Driver: config.DBDriverPostgres, DSN: dsn, MaxOpenConns: 4, MaxIdleConns: 2})
}

func open(t testing.TB, cfg config.DBConfig) *db.Client {
	t.Helper()
	ctx := context.Background()
	client, err := db.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if err := migrate.Up(ctx, sqlDB, client.Dialect()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return client
}
