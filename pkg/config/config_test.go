package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if !cfg.App.IsDev() {
		t.Fatalf("expected dev env by default, got %q", cfg.App.Env)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080" {
		t.Fatalf("unexpected base url %q", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 0 {
		t.Fatalf("expected no client timeout by default, got %v", cfg.Backend.Timeout)
	}
	if cfg.Session.Key != "sessionId" {
		t.Fatalf("unexpected session key %q", cfg.Session.Key)
	}
	if cfg.DB.DSN != defaultSQLiteDSN {
		t.Fatalf("expected sqlite default dsn, got %q", cfg.DB.DSN)
	}
	if cfg.App.MetricsFile != "" {
		t.Fatalf("expected metrics file off by default, got %q", cfg.App.MetricsFile)
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "https://shop.example.com")
	t.Setenv(EnvHTTPTimeout, "3s")
	t.Setenv(EnvGuardStale, "true")
	t.Setenv(EnvSessionStore, "redis")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvMetricsFile, "/tmp/storefront.prom")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if got := cfg.Backend.Timeout; got != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %v", got)
	}
	if !cfg.Backend.GuardStale {
		t.Fatal("expected stale guard enabled")
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.App.MetricsFile != "/tmp/storefront.prom" {
		t.Fatalf("unexpected metrics file: %q", cfg.App.MetricsFile)
	}
}

func TestLoad_RejectsBadBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBaseURL, "ftp://nope")

	if _, err := Load(); err == nil {
		t.Fatal("expected non-http base url to be rejected")
	}
}

func TestLoad_RejectsUnknownSessionStore(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSessionStore, "cookie")

	if _, err := Load(); err == nil {
		t.Fatal("expected unknown session store to be rejected")
	}
}

func TestLoad_PostgresRequiresDSNOrLegacy(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBDriver, "postgres")

	_, err := Load()
	if err == nil {
		t.Fatal("expected missing postgres settings to fail")
	}
	if !strings.Contains(err.Error(), EnvDBDSN) {
		t.Fatalf("expected error to mention %s, got %v", EnvDBDSN, err)
	}
}

func TestEnsureDSN_BuildsPostgresURL(t *testing.T) {
	db := DBConfig{
		Driver:         DBDriverPostgres,
		LegacyHost:     "db",
		LegacyPort:     5432,
		LegacyUser:     "shop",
		LegacyPassword: "secret",
		LegacyName:     "storefront",
		LegacySSLMode:  "disable",
	}
	if err := db.ensureDSN(); err != nil {
		t.Fatalf("ensureDSN: %v", err)
	}
	if db.DSN != "postgres://shop:secret@db:5432/storefront?sslmode=disable" {
		t.Fatalf("unexpected dsn %q", db.DSN)
	}
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "prod"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvAppEnv, EnvLogLevel, EnvBaseURL, EnvHTTPTimeout, EnvGuardStale,
		EnvSessionStore, EnvSessionFile, EnvSessionKey, EnvDBDSN, EnvDBDriver,
		EnvDBHost, EnvDBUser, EnvDBName, EnvRedisURL, EnvAPIPort, EnvMetricsFile,
	} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("failed to unset %s: %v", key, err)
		}
	}
}
