package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenSQLite opens the SQLite database at path (":memory:" for a private
// in-memory database) with at most maxConns pooled connections.
func OpenSQLite(ctx context.Context, path string, maxConns int) (*Store, error) {
	if path == "" {
		path = "db.sqlite"
	}

	log.Info().Str("path", path).Msg("[DATABASE] Opening SQLite database...")

	db, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if path == ":memory:" {
		// Every connection would otherwise get its own empty database.
		maxConns = 1
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
		db.SetMaxIdleConns(maxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite ping failed: %w", err)
	}

	log.Info().Msg("[DATABASE] SQLite database ready")
	return NewStore(db, SQLite), nil
}
