package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"library-service/internal/shared/resource"
	txutil "library-service/pkg/database"
)

// CreateTableSQL returns the DDL creating the table of schema if it is absent.
// Every non-id column is free text.
func CreateTableSQL(d Dialect, schema resource.Schema) string {
	cols := make([]string, 0, len(schema.Columns)+1)
	cols = append(cols, "id "+d.IDColumn)
	for _, c := range schema.Columns {
		cols = append(cols, c+" TEXT")
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", schema.Table, strings.Join(cols, ", "))
}

// Migrate creates the tables of the given schemas if they do not exist.
// All tables are created in one transaction.
func Migrate(ctx context.Context, s *Store, schemas ...resource.Schema) error {
	err := txutil.WithTransaction(ctx, s.DB, func(tx *sql.Tx) error {
		for _, schema := range schemas {
			if _, err := tx.ExecContext(ctx, CreateTableSQL(s.Dialect, schema)); err != nil {
				return fmt.Errorf("failed to create table %s: %w", schema.Table, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, schema := range schemas {
		log.Info().Str("table", schema.Table).Msg("[DATABASE] Table ready")
	}
	return nil
}
