package database

import (
	"path/filepath"
	"testing"
)

func TestOpenAndMigrateTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "mirror.db")
	db, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("first Migrate: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate should be a no-op: %v", err)
	}

	for _, table := range []string{"brands", "cars", "specs"} {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}
