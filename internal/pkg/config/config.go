package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Session store and category index backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Port           string   `env:"PORT,             default=8080"`
	Env            string   `env:"ENV,              default=development"`
	LogLevel       string   `env:"LOG_LEVEL,        default=info"`
	AdminJWTSecret string   `env:"ADMIN_JWT_SECRET"`
	BcryptCost     int      `env:"BCRYPT_COST,      default=10"`
	SeedSampleData bool     `env:"SEED_SAMPLE_DATA, default=false"`
	CORSOrigins    []string `env:"CORS_ORIGINS"`

	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type StorageConfig struct {
	Driver        string `env:"STORAGE_DRIVER, default=memory"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SQLitePath    string `env:"SQLITE_PATH,    default=shop.db"`
	SessionStore  string `env:"SESSION_STORE,  default=memory"`
	CategoryIndex string `env:"CATEGORY_INDEX, default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=shop"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the backend selections.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverMongo, DriverSQLite:
	case DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	for name, v := range map[string]*string{
		"SESSION_STORE":  &c.Storage.SessionStore,
		"CATEGORY_INDEX": &c.Storage.CategoryIndex,
	} {
		*v = strings.ToLower(strings.TrimSpace(*v))
		if *v != BackendMemory && *v != BackendRedis {
			return fmt.Errorf("config: unknown %s %q", name, *v)
		}
	}
	return nil
}

// UsesRedis reports whether any component is backed by Redis.
func (c *Config) UsesRedis() bool {
	return c.Storage.SessionStore == BackendRedis || c.Storage.CategoryIndex == BackendRedis
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
