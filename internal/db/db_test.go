package db

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureSchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")

	for i := 0; i < 2; i++ {
		database, err := Open(path)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := EnsureSchema(database); err != nil {
			t.Fatalf("EnsureSchema (run %d): %v", i+1, err)
		}
		database.Close()
	}

	database, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	for _, table := range []string{"items", "categories"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateRecordsVersion(t *testing.T) {
	database := NewTestDB(t)

	version, err := SchemaVersion(database)
	if err != nil {
		t.Fatal(err)
	}
	if version != len(migrations) {
		t.Errorf("expected schema version %d, got %d", len(migrations), version)
	}

	// Running again must be a no-op.
	if err := Migrate(database); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestMigrateRepairsLegacyRows(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	if err := EnsureSchema(database); err != nil {
		t.Fatal(err)
	}

	// Rows as an older version would have written them.
	_, err = database.Exec(`
		INSERT INTO items (name, quantity, date_added, last_modified) VALUES
		    ('Null qty', NULL, '2024-01-01T10:00:00', '2024-01-01T10:00:00'),
		    ('Stale',    2,    '2024-01-02T10:00:00', '2024-01-01T09:00:00'),
		    ('No mod',   3,    '2024-01-03T10:00:00', NULL)`)
	if err != nil {
		t.Fatal(err)
	}

	if err := Migrate(database); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	var qty int
	if err := database.QueryRow(`SELECT quantity FROM items WHERE name = 'Null qty'`).Scan(&qty); err != nil {
		t.Fatal(err)
	}
	if qty != 1 {
		t.Errorf("expected quantity 1, got %d", qty)
	}

	var stale int
	err = database.QueryRow(
		`SELECT COUNT(*) FROM items WHERE last_modified IS NULL OR last_modified < date_added`,
	).Scan(&stale)
	if err != nil {
		t.Fatal(err)
	}
	if stale != 0 {
		t.Errorf("expected no rows with last_modified < date_added, got %d", stale)
	}
}

func TestCasefold(t *testing.T) {
	database := NewTestDB(t)

	tests := []struct {
		in   any
		want any
	}{
		{"Claw Hammer", "claw hammer"},
		{"STRASSE", "strasse"},
		{"Straße", "strasse"},
		{"ŽAGA", "žaga"},
		{nil, nil},
	}

	for _, tt := range tests {
		var got any
		if err := database.QueryRow(`SELECT casefold(?)`, tt.in).Scan(&got); err != nil {
			t.Fatalf("casefold(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("casefold(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "inventory.db")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
}

func TestOpenUnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	// A regular file where a directory is needed.
	if _, err := Open(filepath.Join(blocker, "inventory.db")); err == nil {
		t.Error("expected error opening database under a regular file")
	}
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	database := NewTestDB(t)

	var enabled int
	if err := database.QueryRow(`PRAGMA foreign_keys`).Scan(&enabled); err != nil {
		t.Fatal(err)
	}
	if enabled != 1 {
		t.Errorf("expected foreign_keys=1, got %d", enabled)
	}
}
