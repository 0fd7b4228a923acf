package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if cfg.Port != "8000" {
		t.Fatalf("expected port 8000, got %s", cfg.Port)
	}
	if cfg.Auth.AccessTokenTTL != 30*time.Minute {
		t.Fatalf("expected 30m token ttl, got %s", cfg.Auth.AccessTokenTTL)
	}
	if cfg.StoreDriver != DriverMongo {
		t.Fatalf("expected mongo driver, got %s", cfg.StoreDriver)
	}
	if cfg.ServiceName != "Locust Farm Management API" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.MySQL.Name != "locust_farm" || cfg.MySQL.User != "root" {
		t.Fatalf("unexpected mysql defaults: %+v", cfg.MySQL)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.Redis.Addr != "" {
		t.Fatalf("redis should be disabled by default")
	}
}

func TestParse_RequiresSecret(t *testing.T) {
	if _, err := Parse(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatalf("expected error without JWT_SECRET")
	}
}

func TestParse_Overrides(t *testing.T) {
	cfg, err := Parse(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "s3cret",
		"STORE_DRIVER":     "mysql",
		"ACCESS_TOKEN_TTL": "5m",
		"DB_HOST":          "db.internal",
		"REDIS_ADDR":       "cache:6379",
	}))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.StoreDriver != DriverMySQL || cfg.MySQL.Host != "db.internal" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if cfg.Auth.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("expected 5m, got %s", cfg.Auth.AccessTokenTTL)
	}
	if cfg.Redis.Addr != "cache:6379" {
		t.Fatalf("expected redis addr, got %q", cfg.Redis.Addr)
	}
}

func TestParse_RejectsUnknownDriver(t *testing.T) {
	_, err := Parse(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"STORE_DRIVER": "sqlite",
	}))
	if err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
