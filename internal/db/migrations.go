package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.DB) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_titles_agency_corrections_schema",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_correction_and_association_indexes",
		Up:      migrationV2,
	},
}

// RunMigrations applies pending migrations to the open connection.
func RunMigrations() error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		if err := migration.Up(db); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates the initial tables for a fresh install.
func migrationV1(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS titles (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS agency (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_short_name TEXT,
			short_name TEXT UNIQUE,
			name TEXT,
			slug TEXT,
			children TEXT,
			cfr_reference TEXT,
			checksum TEXT
		);

		CREATE TABLE IF NOT EXISTS agency_titles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			agency_id INTEGER NOT NULL,
			title_id INTEGER NOT NULL,
			FOREIGN KEY (agency_id) REFERENCES agency(id),
			FOREIGN KEY (title_id) REFERENCES titles(id),
			UNIQUE(agency_id, title_id)
		);

		CREATE TABLE IF NOT EXISTS corrections (
			id TEXT PRIMARY KEY,
			title_id INTEGER NOT NULL,
			fr_citation TEXT,
			corrective_action TEXT,
			error_corrected TEXT,
			error_occurred TEXT,
			last_modified TEXT,
			display_in_toc INTEGER DEFAULT 0,
			position INTEGER,
			year INTEGER,
			title_text TEXT,
			cfr_reference TEXT,
			chapter TEXT,
			part TEXT,
			section TEXT,
			subchapter TEXT,
			subject_group TEXT,
			subpart TEXT,
			subtitle TEXT,
			FOREIGN KEY (title_id) REFERENCES titles(id)
		);
	`)
	return err
}

// migrationV2 adds the read-path indexes.
func migrationV2(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_corrections_title ON corrections(title_id);
		CREATE INDEX IF NOT EXISTS idx_agency_titles_agency ON agency_titles(agency_id);
	`)
	return err
}
