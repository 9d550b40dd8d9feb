package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// schemaStatements create the v1 tables. Each is idempotent.
var schemaStatements = []struct {
	name string
	sql  string
}{
	{"rulesets table", `
		CREATE TABLE IF NOT EXISTS rulesets (
			language TEXT PRIMARY KEY NOT NULL,
			document TEXT NOT NULL,
			rule_count INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)`},
	{"issues table", `
		CREATE TABLE IF NOT EXISTS issues (
			id TEXT PRIMARY KEY NOT NULL,
			file_path TEXT NOT NULL,
			rule_key TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL,
			start_line INTEGER NOT NULL,
			end_line INTEGER NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset INTEGER NOT NULL,
			flows_json TEXT NOT NULL
		)`},
	{"issues file index", `CREATE INDEX IF NOT EXISTS idx_issues_file_path ON issues (file_path)`},
}

// CreateSchema creates the database schema if it doesn't exist. A database
// written by a newer release is rejected rather than modified.
func CreateSchema(db *sql.DB) error {
	version, err := schemaVersion(db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > SchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, SchemaVersion)
	}

	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt.sql); err != nil {
			return fmt.Errorf("creating %s: %w", stmt.name, err)
		}
	}

	if version == 0 {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
	}
	return nil
}

// schemaVersion returns the recorded version, or 0 for a fresh database.
func schemaVersion(db *sql.DB) (int, error) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return 0, err
	}

	var version int
	err := db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return version, err
}
