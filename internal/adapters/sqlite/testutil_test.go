// Package sqlite_test contains integration tests for SQLite repositories.
//
// All test setup uses db.GetSchemaSQL() so tests run against the
// authoritative schema; a repository referencing a missing column fails
// immediately instead of drifting.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/cfrsync/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTitle inserts a test title and returns its id.
func seedTitle(t *testing.T, db *sql.DB, id int, name string) int {
	t.Helper()
	if name == "" {
		name = "Test Title"
	}
	_, err := db.Exec("INSERT INTO titles (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("failed to seed title: %v", err)
	}
	return id
}

// seedAgency inserts a test agency and returns its id.
func seedAgency(t *testing.T, db *sql.DB, shortName string) int64 {
	t.Helper()
	result, err := db.Exec(
		"INSERT INTO agency (parent_short_name, short_name, name, slug, children, cfr_reference, checksum) VALUES (?, ?, ?, ?, '', '[]', '')",
		shortName, shortName, "Agency "+shortName, shortName,
	)
	if err != nil {
		t.Fatalf("failed to seed agency: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("failed to get seeded agency id: %v", err)
	}
	return id
}

// seedCorrection inserts a minimal correction row.
func seedCorrection(t *testing.T, db *sql.DB, id string, titleID int, section string, year int) {
	t.Helper()
	var yearVal interface{}
	if year != 0 {
		yearVal = year
	}
	_, err := db.Exec(
		"INSERT INTO corrections (id, title_id, section, year) VALUES (?, ?, ?, ?)",
		id, titleID, section, yearVal,
	)
	if err != nil {
		t.Fatalf("failed to seed correction: %v", err)
	}
}

// mustExist is a small assertion helper for existence checks.
func mustExist(t *testing.T, got bool, err error, what string) {
	t.Helper()
	if err != nil {
		t.Fatalf("existence check for %s failed: %v", what, err)
	}
	if !got {
		t.Fatalf("expected %s to exist", what)
	}
}
