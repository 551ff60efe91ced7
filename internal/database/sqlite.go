package database

import (
	"database/sql"
	"fmt"
	"time"

	"sweep-go/internal/database/migrations"
	"sweep-go/internal/sweep"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteJournal implements the Journal interface using SQLite.
type SQLiteJournal struct {
	db *sql.DB
}

// NewSQLiteJournal opens the journal at path and brings its schema up to date.
// path can be a file path or ":memory:" for an in-memory journal.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}
	if err := migrations.CheckDBMigrationStatus(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal schema out of date: %w", err)
	}

	return &SQLiteJournal{db: db}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every pooled connection to ":memory:" is a separate database, and
	// SQLite serializes writers anyway.
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

func (j *SQLiteJournal) StartOperation(operation, target string, startedAt time.Time) (int64, error) {
	res, err := j.db.Exec(
		"INSERT INTO operations (operation, target, started_at) VALUES (?, ?, ?)",
		operation, target, startedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting operation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading operation id: %w", err)
	}
	return id, nil
}

func (j *SQLiteJournal) RecordScan(operationID int64, result *sweep.ScanResult) error {
	events := make([]*sweep.Event, 0, len(result.DeletedPaths)+len(result.Errors))
	for _, p := range result.DeletedPaths {
		events = append(events, &sweep.Event{Path: p, Action: "delete", Outcome: "ok"})
	}
	for _, e := range result.Errors {
		action := "delete"
		if e.Kind == sweep.DirectoryUnreadable || e.Kind == sweep.MetadataUnreadable {
			action = "scan"
		}
		events = append(events, &sweep.Event{Path: e.Path, Action: action, Outcome: "error", Reason: e.Reason})
	}

	return j.record(operationID, events,
		"UPDATE operations SET scanned = scanned + ?, deleted = deleted + ?, failed = failed + ? WHERE id = ?",
		result.ScannedCount, len(result.DeletedPaths), len(result.Errors), operationID,
	)
}

func (j *SQLiteJournal) RecordRelocation(operationID int64, result *sweep.RelocationResult) error {
	events := make([]*sweep.Event, 0, len(result.MovedPaths)+len(result.Errors))
	for _, p := range result.MovedPaths {
		events = append(events, &sweep.Event{Path: p, Action: "move", Outcome: "ok"})
	}
	for _, e := range result.Errors {
		events = append(events, &sweep.Event{Path: e.Path, Action: "move", Outcome: "error", Reason: e.Reason})
	}

	return j.record(operationID, events,
		"UPDATE operations SET moved = moved + ?, failed = failed + ? WHERE id = ?",
		len(result.MovedPaths), len(result.Errors), operationID,
	)
}

// record inserts events and applies the counter update in one transaction.
func (j *SQLiteJournal) record(operationID int64, events []*sweep.Event, update string, args ...any) (err error) {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(update, args...)
	if err != nil {
		return fmt.Errorf("updating operation %d: %w", operationID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("operation %d not found", operationID)
	}

	stmt, err := tx.Prepare("INSERT INTO operation_events (operation_id, path, action, outcome, reason) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err = stmt.Exec(operationID, e.Path, e.Action, e.Outcome, e.Reason); err != nil {
			return fmt.Errorf("inserting event for %s: %w", e.Path, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}
	return nil
}

func (j *SQLiteJournal) FinishOperation(operationID int64, status string, finishedAt time.Time) error {
	res, err := j.db.Exec(
		"UPDATE operations SET status = ?, finished_at = ? WHERE id = ?",
		status, finishedAt.UTC(), operationID,
	)
	if err != nil {
		return fmt.Errorf("finishing operation %d: %w", operationID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("operation %d not found", operationID)
	}
	return nil
}

func (j *SQLiteJournal) ListOperations(limit int) ([]*sweep.Operation, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := j.db.Query(`
		SELECT id, operation, target, started_at, finished_at, status, scanned, deleted, moved, failed
		FROM operations
		ORDER BY started_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	defer rows.Close()

	var ops []*sweep.Operation
	for rows.Next() {
		op := &sweep.Operation{}
		if err := rows.Scan(&op.ID, &op.Operation, &op.Target, &op.StartedAt, &op.FinishedAt,
			&op.Status, &op.Scanned, &op.Deleted, &op.Moved, &op.Failed); err != nil {
			return nil, fmt.Errorf("scanning operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating operations: %w", err)
	}
	return ops, nil
}

func (j *SQLiteJournal) ListEvents(operationID int64) ([]*sweep.Event, error) {
	rows, err := j.db.Query(`
		SELECT operation_id, path, action, outcome, reason
		FROM operation_events
		WHERE operation_id = ?
		ORDER BY id`, operationID)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var events []*sweep.Event
	for rows.Next() {
		e := &sweep.Event{}
		if err := rows.Scan(&e.OperationID, &e.Path, &e.Action, &e.Outcome, &e.Reason); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}

// NopJournal discards everything. It backs the "none" journal type.
type NopJournal struct{}

func NewNopJournal() *NopJournal { return &NopJournal{} }

func (*NopJournal) StartOperation(string, string, time.Time) (int64, error) { return 0, nil }
func (*NopJournal) RecordScan(int64, *sweep.ScanResult) error              { return nil }
func (*NopJournal) RecordRelocation(int64, *sweep.RelocationResult) error  { return nil }
func (*NopJournal) FinishOperation(int64, string, time.Time) error         { return nil }
func (*NopJournal) ListOperations(int) ([]*sweep.Operation, error)         { return nil, nil }
func (*NopJournal) ListEvents(int64) ([]*sweep.Event, error)               { return nil, nil }
func (*NopJournal) Close() error                                           { return nil }

// Compile-time checks that the journals implement the interface
var (
	_ sweep.Journal = (*SQLiteJournal)(nil)
	_ sweep.Journal = (*NopJournal)(nil)
)
