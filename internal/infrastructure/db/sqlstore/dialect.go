// Package sqlstore persists users and products in PostgreSQL (pgx) or SQLite
// (modernc.org/sqlite) through database/sql. Queries are written with
// PostgreSQL placeholders and rebound per dialect.
package sqlstore

import (
	"regexp"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

var pgPlaceholderRe = regexp.MustCompile(`\$\d+`)

// Dialect rewrites PostgreSQL-style queries for the target driver.
type Dialect struct {
	driver Driver
}

func NewDialect(driver Driver) Dialect {
	return Dialect{driver: driver}
}

func (d Dialect) Driver() Driver { return d.driver }

// Rebind turns $1, $2, ... into ? for SQLite and leaves PostgreSQL queries as is.
func (d Dialect) Rebind(query string) string {
	if d.driver == DriverSQLite {
		return pgPlaceholderRe.ReplaceAllString(query, "?")
	}
	return query
}
