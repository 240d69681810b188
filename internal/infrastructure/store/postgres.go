// Package store provides the document stores backing the catalog, orders,
// notifications and CMS pages. PostgreSQL holds each entity as a JSONB
// document beside the handful of columns that need indexing; the
// notification store alternatively runs on DynamoDB.
package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
)

// ConnectPostgres opens and verifies a PostgreSQL connection.
func ConnectPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// EnsureSchema creates the collection tables and their indexes. The unique
// indexes on products(sku) and products(name) are what enforce catalog
// uniqueness; the application performs no pre-check.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id          text PRIMARY KEY,
			sku         text NOT NULL,
			name        text NOT NULL,
			category_id text NOT NULL DEFAULT '',
			created_at  timestamptz NOT NULL,
			doc         jsonb NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_sku_key ON products (sku)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS products_name_key ON products (name)`,
		`CREATE INDEX IF NOT EXISTS products_created_at_idx ON products (created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS categories (
			id         text PRIMARY KEY,
			name       text NOT NULL,
			doc        jsonb NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id         text PRIMARY KEY,
			user_id    text NOT NULL,
			status     text NOT NULL,
			created_at timestamptz NOT NULL,
			doc        jsonb NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS notifications (
			id         text PRIMARY KEY,
			user_id    text NOT NULL DEFAULT '',
			is_admin   boolean NOT NULL DEFAULT false,
			is_read    boolean NOT NULL DEFAULT false,
			created_at timestamptz NOT NULL,
			doc        jsonb NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS notifications_user_idx ON notifications (user_id, created_at DESC)`,
		`CREATE TABLE IF NOT EXISTS pages (
			slug text PRIMARY KEY,
			doc  jsonb NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a unique_violation raised by one
// of the schema's unique indexes.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
