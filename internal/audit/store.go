package audit

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS inspection_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	inspection_id TEXT NOT NULL,
	handler_id    TEXT NOT NULL,
	subject       TEXT,
	field         TEXT NOT NULL,
	score         REAL NOT NULL,
	threshold     REAL NOT NULL,
	decision      TEXT NOT NULL,
	reason        TEXT,
	created_at    TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_inspection_log_subject
	ON inspection_log(subject, created_at);
`

// #endregion schema

// #region entry

// Entry is a single row in the inspection_log table: one inspected field of
// one invocation, with the cumulative score observed after it and the
// decision taken.
type Entry struct {
	InspectionID string
	HandlerID    string
	Subject      string
	Field        string
	Score        float32
	Threshold    float32
	Decision     string // "allow" | "block"
	Reason       string
	CreatedAt    time.Time
}

// #endregion entry

// #region log-struct

// Log persists inspection decisions in SQLite.
type Log struct {
	db *sql.DB
}

// NewLog opens the audit database and runs migrations.
func NewLog(dbPath string) (*Log, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database connection.
func (l *Log) Close() error {
	return l.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages.
func (l *Log) DB() *sql.DB {
	return l.db
}

// #endregion log-struct

// #region record

// Record writes one inspection entry.
func (l *Log) Record(entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := l.db.Exec(
		`INSERT INTO inspection_log (inspection_id, handler_id, subject, field, score, threshold, decision, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.InspectionID,
		entry.HandlerID,
		nullIfEmpty(entry.Subject),
		entry.Field,
		entry.Score,
		entry.Threshold,
		entry.Decision,
		nullIfEmpty(entry.Reason),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record entry: %w", err)
	}
	return nil
}

// #endregion record

// #region list

// ListRecent returns the most recent entries, newest first.
func (l *Log) ListRecent(limit int) ([]Entry, error) {
	return l.list(
		`SELECT inspection_id, handler_id, subject, field, score, threshold, decision, reason, created_at
		 FROM inspection_log ORDER BY id DESC LIMIT ?`, limit)
}

// ListByHandler returns the most recent entries for one handler, newest first.
func (l *Log) ListByHandler(handlerID string, limit int) ([]Entry, error) {
	return l.list(
		`SELECT inspection_id, handler_id, subject, field, score, threshold, decision, reason, created_at
		 FROM inspection_log WHERE handler_id = ? ORDER BY id DESC LIMIT ?`, handlerID, limit)
}

func (l *Log) list(query string, args ...any) ([]Entry, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var subject, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&e.InspectionID, &e.HandlerID, &subject, &e.Field,
			&e.Score, &e.Threshold, &e.Decision, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if subject.Valid {
			e.Subject = subject.String
		}
		if reason.Valid {
			e.Reason = reason.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion list

// #region count-recent

// CountRecent counts distinct inspections that touched a subject within the
// window. Satisfies the change-rate heuristic's History interface.
func (l *Log) CountRecent(subject string, window time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-window).Format(time.RFC3339Nano)
	var count int
	err := l.db.QueryRow(
		`SELECT COUNT(DISTINCT inspection_id) FROM inspection_log
		 WHERE subject = ? AND created_at >= ?`,
		subject, cutoff,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count recent: %w", err)
	}
	return count, nil
}

// #endregion count-recent

// #region helpers

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
