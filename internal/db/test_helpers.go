package db

import (
	"context"
	"fmt"
	"strings"
)

// resettableTables lists every application table, children first.
var resettableTables = []string{
	"purchases",
	"checkout_sessions",
	"plans",
	"idempotency_keys",
}

// Reset empties every application table and restarts their sequences.
// Only for use in tests against a disposable database.
func (db *DB) Reset(ctx context.Context) error {
	query := "TRUNCATE TABLE " + strings.Join(resettableTables, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset tables: %w", err)
	}
	db.logger.Debug("database reset", "tables", len(resettableTables))
	return nil
}
