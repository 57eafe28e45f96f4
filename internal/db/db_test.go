package db

import (
	"path/filepath"
	"testing"
)

func TestOpenSQLiteForms(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		url  string
	}{
		{"memory url", "sqlite:///:memory:"},
		{"bare scheme", "sqlite://"},
		{"absolute path url", "sqlite:///" + filepath.Join(dir, "a.db")},
		{"plain path", filepath.Join(dir, "b.db")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database, err := Open(tt.url)
			if err != nil {
				t.Fatalf("Open(%q): %v", tt.url, err)
			}
			defer database.Close()

			if got := DialectOf(database); got != DialectSQLite {
				t.Errorf("expected sqlite dialect, got %q", got)
			}
			if err := EnsureSchema(database); err != nil {
				t.Fatalf("EnsureSchema: %v", err)
			}
			// Idempotent.
			if err := EnsureSchema(database); err != nil {
				t.Fatalf("second EnsureSchema: %v", err)
			}
		})
	}
}

func TestOpenUnsupportedScheme(t *testing.T) {
	if _, err := Open("postgres://localhost/stock"); err == nil {
		t.Error("expected error for unsupported scheme")
	}
}

func TestOpenInvalidMySQLDSN(t *testing.T) {
	if _, err := Open("mysql://not a dsn"); err == nil {
		t.Error("expected error for malformed mysql dsn")
	}
}

func TestSchemaTables(t *testing.T) {
	database := NewTestDB(t)

	for _, table := range []string{"inventory_item", "shift_survey", "admin_user"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}
