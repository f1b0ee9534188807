package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// Open opens the SQLite database at path. Pragmas ride on the DSN so every
// pooled connection gets them, not just whichever connection a one-off Exec
// happens to land on.
func Open(path string) (*sql.DB, error) {
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=busy_timeout(5000)",
		"_pragma=foreign_keys(1)",
		"_pragma=synchronous(NORMAL)",
	}
	dsn := fmt.Sprintf("file:%s?%s", path, strings.Join(pragmas, "&"))

	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connecting to database %s: %w", path, err)
	}
	return database, nil
}
