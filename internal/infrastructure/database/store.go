package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Driver names accepted in DBConfig.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialect captures what differs between the supported SQL engines.
type Dialect struct {
	Name string
	// BindType is the sqlx placeholder style of the driver.
	BindType int
	// IDColumn is the DDL of the store-assigned, monotonically increasing primary key.
	IDColumn string
}

var (
	SQLite = Dialect{
		Name:     DriverSQLite,
		BindType: sqlx.QUESTION,
		IDColumn: "INTEGER PRIMARY KEY AUTOINCREMENT",
	}
	Postgres = Dialect{
		Name:     DriverPostgres,
		BindType: sqlx.DOLLAR,
		IDColumn: "BIGSERIAL PRIMARY KEY",
	}
)

// Rebind rewrites `?` placeholders into the dialect's native form.
// Queries handed to it never contain literal values, so every `?` is a placeholder.
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.BindType, query)
}

// Store is a database/sql pool bound to a dialect. Each call acquires a pooled
// connection for one statement and releases it on completion.
type Store struct {
	DB      *sql.DB
	Dialect Dialect

	// pg is set when DB is a view over a pgx pool; pool statistics come from it.
	pg      *PostgresDB
	onClose func()
}

// NewStore wraps an open *sql.DB.
func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{DB: db, Dialect: dialect}
}

// Open connects to the store described by cfg.
func Open(ctx context.Context, cfg *DBConfig) (*Store, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, cfg.Path, int(cfg.MaxConns))
	case DriverPostgres:
		return OpenPostgres(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}
}

func (s *Store) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.DB.QueryContext(ctx, s.Dialect.Rebind(query), args...)
}

func (s *Store) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return s.DB.QueryRowContext(ctx, s.Dialect.Rebind(query), args...)
}

func (s *Store) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.DB.ExecContext(ctx, s.Dialect.Rebind(query), args...)
}
