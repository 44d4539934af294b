package db

// SchemaSQL is the complete schema for fresh cfrsync installs.
//
// This is the single source of truth for the database schema. Repository
// tests load it via GetSchemaSQL() against an in-memory database, so a
// repository referencing a column missing here fails immediately with
// "no such column" instead of drifting silently.
//
// Keep this in sync with the migrations list in migrations.go.
const SchemaSQL = `
-- CFR titles. The id IS the title number from the registry, not a
-- synthetic key.
CREATE TABLE IF NOT EXISTS titles (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL
);

-- Agencies from the registry. short_name is the external dedup key;
-- parent_short_name is a same-table logical relation (roots point at
-- themselves). cfr_reference holds the canonical JSON serialization of
-- the agency's CFR reference list; children is a legacy field kept for
-- checksum compatibility.
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

-- Agency <-> title association. The pair is unique; ingestion checks
-- existence before insert.
CREATE TABLE IF NOT EXISTS agency_titles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	agency_id INTEGER NOT NULL,
	title_id INTEGER NOT NULL,
	FOREIGN KEY (agency_id) REFERENCES agency(id),
	FOREIGN KEY (title_id) REFERENCES titles(id),
	UNIQUE(agency_id, title_id)
);

-- Corrections keyed by the external correction id. Hierarchy fields come
-- from the first CFR reference's hierarchy block; the rest is 1:1 payload
-- metadata.
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

CREATE INDEX IF NOT EXISTS idx_corrections_title ON corrections(title_id);
CREATE INDEX IF NOT EXISTS idx_agency_titles_agency ON agency_titles(agency_id);
`

// GetSchemaSQL returns the authoritative schema SQL for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
