package db

// SchemaSQL is the complete schema for fresh installs. Tests build their
// in-memory databases from this same constant, so repository code that
// drifts from the schema fails immediately with "no such column".
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL CHECK(mode IN ('completed', 'pending')),
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	checked INTEGER NOT NULL DEFAULT 0,
	matched INTEGER NOT NULL DEFAULT 0,
	duplicated INTEGER NOT NULL DEFAULT 0,
	errors INTEGER NOT NULL DEFAULT 0,
	error_text TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
`

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
