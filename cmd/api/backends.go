package main

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/api/handler"
	"github.com/storefront/shop-api/internal/core/ports"
	"github.com/storefront/shop-api/internal/infrastructure/db/memory"
	"github.com/storefront/shop-api/internal/infrastructure/db/mongo"
	"github.com/storefront/shop-api/internal/infrastructure/db/redis"
	"github.com/storefront/shop-api/internal/infrastructure/db/sqlstore"
	"github.com/storefront/shop-api/internal/pkg/config"
)

// backends holds the selected directory implementations and the resources
// that must be released on shutdown.
type backends struct {
	users    ports.UserRepository
	products ports.ProductRepository
	sessions ports.SessionStore
	index    ports.CategoryIndex

	pingers map[string]handler.Pinger
	closers []func(ctx context.Context) error
}

func (b *backends) close(ctx context.Context, log zerolog.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](ctx); err != nil {
			log.Error().Err(err).Msg("failed to close backend")
		}
	}
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{pingers: map[string]handler.Pinger{}}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		b.users = memory.NewUserRepository()
		b.products = memory.NewProductRepository()

	case config.DriverMongo:
		store, err := mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		b.users, b.products = store.Users, store.Products
		b.pingers["mongodb"] = store
		b.closers = append(b.closers, store.Close)

	case config.DriverPostgres, config.DriverSQLite:
		sqlCfg := sqlstore.Config{Driver: sqlstore.DriverPostgres, DSN: cfg.Storage.DatabaseURL}
		if cfg.Storage.Driver == config.DriverSQLite {
			sqlCfg = sqlstore.Config{Driver: sqlstore.DriverSQLite, DSN: cfg.Storage.SQLitePath}
		}
		store, err := sqlstore.Open(ctx, sqlCfg)
		if err != nil {
			return nil, err
		}
		b.users, b.products = store.Users, store.Products
		b.pingers[cfg.Storage.Driver] = store
		b.closers = append(b.closers, func(context.Context) error { return store.Close() })

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	log.Info().Str("driver", cfg.Storage.Driver).Msg("directory backend ready")

	var rdb *goredis.Client
	if cfg.UsesRedis() {
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			b.close(ctx, log)
			return nil, err
		}
		rdb = client
		b.pingers["redis"] = redis.Pinger{Client: rdb}
		b.closers = append(b.closers, func(context.Context) error { return rdb.Close() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}

	if cfg.Storage.SessionStore == config.BackendRedis {
		b.sessions = redis.NewSessionStore(rdb)
	} else {
		b.sessions = memory.NewSessionStore()
	}
	if cfg.Storage.CategoryIndex == config.BackendRedis {
		b.index = redis.NewCategoryIndex(rdb)
	} else {
		b.index = memory.NewCategoryIndex()
	}

	return b, nil
}
