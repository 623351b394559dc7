package config

import (
	"context"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Storage.Driver != DriverMemory || cfg.Storage.SessionStore != BackendMemory || cfg.Storage.CategoryIndex != BackendMemory {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.BcryptCost != 10 || cfg.SeedSampleData {
		t.Fatalf("unexpected bcrypt/seed defaults: %d %v", cfg.BcryptCost, cfg.SeedSampleData)
	}
	if cfg.UsesRedis() {
		t.Fatalf("memory defaults should not use redis")
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development env")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":             "9090",
		"STORAGE_DRIVER":   "SQLite",
		"SQLITE_PATH":      "/tmp/shop.db",
		"SESSION_STORE":    "redis",
		"SEED_SAMPLE_DATA": "true",
		"CORS_ORIGINS":     "https://a.example,https://b.example",
		"REDIS_DB":         "2",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Storage.Driver != DriverSQLite || cfg.Storage.SQLitePath != "/tmp/shop.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.UsesRedis() || cfg.Redis.DB != 2 {
		t.Fatalf("expected redis session store on db 2, got %+v", cfg.Redis)
	}
	if !cfg.SeedSampleData {
		t.Fatalf("expected seeding enabled")
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
}

func TestLoadWith_Invalid(t *testing.T) {
	cases := []struct {
		env  map[string]string
		want string
	}{
		{map[string]string{"STORAGE_DRIVER": "oracle"}, "STORAGE_DRIVER"},
		{map[string]string{"STORAGE_DRIVER": "postgres"}, "DATABASE_URL"},
		{map[string]string{"SESSION_STORE": "etcd"}, "SESSION_STORE"},
		{map[string]string{"CATEGORY_INDEX": "disk"}, "CATEGORY_INDEX"},
	}
	for _, tc := range cases {
		_, err := LoadWith(context.Background(), envconfig.MapLookuper(tc.env))
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%v: expected error mentioning %s, got %v", tc.env, tc.want, err)
		}
	}
}
