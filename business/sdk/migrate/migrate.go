// Package migrate contains the database schema and support for applying it.
package migrate

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/velostock/velostock/business/sdk/sqldb"
)

//go:embed sql/schema.sql
var schemaDoc string

// Migrate attempts to bring the schema up to date with the statements defined
// in this package. Statements are idempotent so re-running is safe.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, schemaDoc); err != nil {
		tx.Rollback()
		return fmt.Errorf("exec schema: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
