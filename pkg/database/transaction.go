package database

import (
	"context"
	"database/sql"
	"fmt"
)

// WithTransaction function:
//     Begin transaction từ pool
//     Defer rollback - Sẽ tự động rollback nếu:
//         Function fn return error
//         Có panic xảy ra
//     Execute function fn với transaction context
//     Commit nếu không có error

// TxFunc là function type được execute trong transaction
type TxFunc func(*sql.Tx) error

// WithTransaction wraps một function trong transaction
// Auto rollback nếu có error, auto commit nếu success
func WithTransaction(ctx context.Context, db *sql.DB, fn TxFunc) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
