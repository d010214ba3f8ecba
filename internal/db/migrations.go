package db

import (
	"database/sql"
	"fmt"
)

// migrations repair rows written by earlier versions of the tool. Migration N
// runs once, when PRAGMA user_version is below N. Append new migrations at the
// end and never reorder them.
var migrations = []string{
	// Migration 1: quantity was nullable with no coercion.
	`UPDATE items SET quantity = 1 WHERE quantity IS NULL`,

	// Migration 2: restore last_modified >= date_added.
	`UPDATE items SET last_modified = date_added
	 WHERE date_added IS NOT NULL
	   AND (last_modified IS NULL OR last_modified < date_added)`,
}

// Migrate ensures the schema exists and applies pending migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	version, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for i := version; i < len(migrations); i++ {
		if _, err := db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
	}

	return nil
}

// SchemaVersion returns the number of migrations applied to db.
func SchemaVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}
