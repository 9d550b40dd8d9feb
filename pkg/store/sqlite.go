package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/praetorian-inc/rulebridge/pkg/ruleset"
	"github.com/praetorian-inc/rulebridge/pkg/types"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Consumers write from many goroutines; a single connection serializes
	// them instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SaveRuleSet stores a rule set, replacing any earlier one for language.
func (s *SQLiteStore) SaveRuleSet(language string, rs *ruleset.RuleSet) error {
	doc, err := json.Marshal(rs)
	if err != nil {
		return fmt.Errorf("marshaling rule set: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO rulesets (language, document, rule_count, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(language) DO UPDATE SET
			document = excluded.document,
			rule_count = excluded.rule_count,
			updated_at = excluded.updated_at
	`,
		language,
		string(doc),
		rs.RuleCount(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting rule set: %w", err)
	}

	return nil
}

// GetRuleSet returns the rule set stored for language.
func (s *SQLiteStore) GetRuleSet(language string) (*ruleset.RuleSet, error) {
	var doc string
	err := s.db.QueryRow("SELECT document FROM rulesets WHERE language = ?", language).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rule set for %s: %w", language, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying rule set: %w", err)
	}

	var rs ruleset.RuleSet
	if err := json.Unmarshal([]byte(doc), &rs); err != nil {
		return nil, fmt.Errorf("unmarshaling rule set: %w", err)
	}
	return &rs, nil
}

// ReplaceIssues stores the issues of a file in a single transaction.
func (s *SQLiteStore) ReplaceIssues(filePath string, issues []types.AnalysisIssue) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM issues WHERE file_path = ?", filePath); err != nil {
		return fmt.Errorf("deleting issues: %w", err)
	}

	for _, issue := range issues {
		flowsJSON, err := json.Marshal(issue.Flows)
		if err != nil {
			return fmt.Errorf("marshaling flows: %w", err)
		}
		severity, err := issue.Severity.MarshalText()
		if err != nil {
			return fmt.Errorf("issue %s: %w", issue.RuleKey, err)
		}

		_, err = tx.Exec(`
			INSERT INTO issues (id, file_path, rule_key, severity, message, start_line, end_line, start_offset, end_offset, flows_json)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			uuid.NewString(),
			filePath,
			issue.RuleKey,
			string(severity),
			issue.Message,
			issue.StartLine,
			issue.EndLine,
			issue.StartLineOffset,
			issue.EndLineOffset,
			string(flowsJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting issue: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing issues: %w", err)
	}
	return nil
}

// GetIssues retrieves the issues of a file.
func (s *SQLiteStore) GetIssues(filePath string) ([]*StoredIssue, error) {
	return s.queryIssues(`
		SELECT id, file_path, rule_key, severity, message, start_line, end_line, start_offset, end_offset, flows_json
		FROM issues
		WHERE file_path = ?
		ORDER BY start_line, start_offset, rule_key
	`, filePath)
}

// GetAllIssues retrieves all issues.
func (s *SQLiteStore) GetAllIssues() ([]*StoredIssue, error) {
	return s.queryIssues(`
		SELECT id, file_path, rule_key, severity, message, start_line, end_line, start_offset, end_offset, flows_json
		FROM issues
		ORDER BY file_path, start_line, start_offset, rule_key
	`)
}

func (s *SQLiteStore) queryIssues(query string, args ...any) ([]*StoredIssue, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying issues: %w", err)
	}
	defer rows.Close()

	issues := make([]*StoredIssue, 0)
	for rows.Next() {
		var si StoredIssue
		var severity, flowsJSON string

		err := rows.Scan(
			&si.ID,
			&si.FilePath,
			&si.RuleKey,
			&severity,
			&si.Message,
			&si.StartLine,
			&si.EndLine,
			&si.StartLineOffset,
			&si.EndLineOffset,
			&flowsJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}

		if err := si.Severity.UnmarshalText([]byte(severity)); err != nil {
			return nil, fmt.Errorf("parsing severity: %w", err)
		}
		if err := json.Unmarshal([]byte(flowsJSON), &si.Flows); err != nil {
			return nil, fmt.Errorf("unmarshaling flows: %w", err)
		}

		issues = append(issues, &si)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}

	return issues, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
