package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// No UNIQUE constraint on position: a bulk reorder updates rows one at a
// time inside a transaction, and SQLite cannot defer uniqueness checks, so
// a simple swap would trip the constraint mid-transaction.
const schema = `
CREATE TABLE IF NOT EXISTS todos (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    completed   INTEGER NOT NULL DEFAULT 0 CHECK (completed IN (0, 1)),
    position    INTEGER NOT NULL CHECK (position >= 0),
    created_at  DATETIME NOT NULL,
    updated_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_todos_position ON todos(position);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
