package index

const schemaVersion = 1

const schemaSQL = `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notes (
	id INTEGER PRIMARY KEY,
	path TEXT UNIQUE NOT NULL,
	basename TEXT NOT NULL,
	content TEXT NOT NULL,
	hash TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	modified_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS notes_by_basename ON notes(basename);
`
