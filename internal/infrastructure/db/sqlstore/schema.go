package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// The same DDL runs on both drivers.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            VARCHAR(64) PRIMARY KEY,
		username      VARCHAR(20) NOT NULL,
		username_key  VARCHAR(20) NOT NULL UNIQUE,
		email         TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL,
		version       BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id           VARCHAR(64) PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		price        DOUBLE PRECISION NOT NULL,
		stock        INTEGER NOT NULL,
		category     TEXT NOT NULL,
		category_key TEXT NOT NULL,
		image_url    TEXT NOT NULL DEFAULT '',
		rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
		review_count INTEGER NOT NULL DEFAULT 0,
		active       BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMP NOT NULL,
		updated_at   TIMESTAMP NOT NULL,
		version      BIGINT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_products_category_key ON products (category_key)`,
	`CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at)`,
}

// Migrate creates the tables and indexes when they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
