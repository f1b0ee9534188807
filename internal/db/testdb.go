package db

import (
	"database/sql"
	"testing"
)

// NewTestDB opens a private in-memory database with the schema and all
// migrations applied. The pool is pinned to a single connection because each
// new connection to :memory: would otherwise see its own empty database.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	if err := Migrate(database); err != nil {
		t.Fatalf("preparing test schema: %v", err)
	}

	return database
}
