// SPDX-License-Identifier: MPL-2.0

// Package sqlite stores the download counters in an SQLite database and
// serves them to pkg/downloads as a RowSource.
//
// The schema is embedded and applied with golang-migrate when the database
// is opened.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/cratehub/registry/pkg/types"
)

// driverName is the database/sql name registered by ncruces/go-sqlite3.
const driverName = "sqlite3"

//go:embed migrations/*.sql
var migrationFS embed.FS

type (
	// DB is an open registry database.
	DB struct {
		sql    *sql.DB
		path   types.FilesystemPath
		logger *log.Logger
	}

	// Option configures Open.
	Option func(*openOptions)

	openOptions struct {
		logger  *log.Logger
		migrate bool
	}
)

// WithLogger sets the logger. The default is the charm default logger with
// the "storage" prefix.
func WithLogger(l *log.Logger) Option {
	return func(o *openOptions) { o.logger = l }
}

// WithoutMigrations opens the database without applying pending migrations.
func WithoutMigrations() Option {
	return func(o *openOptions) { o.migrate = false }
}

// Open opens (creating if needed) the database at path and applies pending
// migrations. The parent directory is created with mode 0700.
func Open(ctx context.Context, path types.FilesystemPath, opts ...Option) (*DB, error) {
	o := openOptions{migrate: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.Default().WithPrefix("storage")
	}

	if err := path.Validate(); err != nil {
		return nil, err
	}
	if !path.IsInMemory() {
		if err := os.MkdirAll(path.Dir().String(), 0o700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open(driverName, path.String())
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if path.IsInMemory() {
		// Every new connection would see a fresh, empty in-memory database.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	db := &DB{sql: sqlDB, path: path, logger: o.logger}
	if o.migrate {
		if _, err := db.Migrate(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	o.logger.Debug("database opened", "path", path)
	return db, nil
}

// Migrate applies every pending migration and returns the resulting schema
// version.
func (db *DB) Migrate(ctx context.Context) (uint, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}
	drv, err := migratesqlite.WithInstance(db.sql, &migratesqlite.Config{})
	if err != nil {
		return 0, fmt.Errorf("prepare migrations: %w", err)
	}
	// m is never closed: closing it would close db.sql as well.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", drv)
	if err != nil {
		return 0, fmt.Errorf("prepare migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return 0, fmt.Errorf("apply migrations: %w", err)
	}
	version, dirty, err := m.Version()
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	db.logger.Debug("schema up to date", "version", version)
	return version, nil
}

// Path returns the database location.
func (db *DB) Path() types.FilesystemPath { return db.path }

// Close closes the database.
func (db *DB) Close() error {
	return db.sql.Close()
}
