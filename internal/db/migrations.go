package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: Index inventory by the (name, location) pair so order
	// reconciliation lookups don't scan the whole table. Ordering by id
	// stays the tie-break for duplicate pairs.
	`CREATE INDEX IF NOT EXISTS idx_inventory_items_name_location
	     ON inventory_items(name, location)`,
}

// Migrate runs the database schema migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}
