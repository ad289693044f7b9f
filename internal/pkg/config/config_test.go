package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Port != "4000" {
		t.Fatalf("expected default port 4000, got %s", cfg.Port)
	}
	if cfg.JWT.ExpiresIn != 1000*time.Second {
		t.Fatalf("expected default token lifetime 1000s, got %s", cfg.JWT.ExpiresIn)
	}
	if !cfg.Mongo.Enabled || !cfg.Redis.Enabled || cfg.Archive.Enabled {
		t.Fatalf("unexpected feature defaults: audit=%v revocation=%v archive=%v",
			cfg.Mongo.Enabled, cfg.Redis.Enabled, cfg.Archive.Enabled)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error without JWT_SECRET")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":           "8080",
		"JWT_SECRET":     "s3cret",
		"JWT_EXPIRES_IN": "1h",
		"CORS_ORIGIN":    "http://a.test, http://b.test",
		"DB_HOST":        "db",
		"DB_USERNAME":    "app",
		"DB_PASSWORD":    "p@ss",
		"DB_NAME":        "engnet",
	}))
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
	if cfg.JWT.ExpiresIn != time.Hour {
		t.Fatalf("unexpected token lifetime: %s", cfg.JWT.ExpiresIn)
	}

	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", origins)
	}

	if got, want := cfg.Postgres.DSN(), "postgres://app:p%40ss@db:5432/engnet?sslmode=disable"; got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}
}

func TestPostgresConfig_DatabaseURLWins(t *testing.T) {
	p := PostgresConfig{URL: "postgres://u:p@h:1/d", Host: "ignored"}
	if p.DSN() != "postgres://u:p@h:1/d" {
		t.Fatalf("expected DATABASE_URL to be used verbatim, got %s", p.DSN())
	}
}

func TestCORSOrigins_Wildcard(t *testing.T) {
	cfg := &Config{CORSOrigin: " "}
	if got := cfg.CORSOrigins(); len(got) != 1 || got[0] != "*" {
		t.Fatalf("expected wildcard, got %v", got)
	}
}
