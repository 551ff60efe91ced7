package sweep

import (
	"database/sql"
	"time"
)

// Journal records what mutating operations did. It is an audit trail only:
// nothing in the engine reads it back, and classification never depends on it.
type Journal interface {
	// StartOperation records the start of a CLI operation and returns its ID.
	StartOperation(operation, target string, startedAt time.Time) (int64, error)

	// RecordScan stores the counts and per-path outcomes of a cleanup pass.
	RecordScan(operationID int64, result *ScanResult) error

	// RecordRelocation stores the per-path outcomes of a move batch.
	RecordRelocation(operationID int64, result *RelocationResult) error

	// FinishOperation marks an operation finished with the given status.
	FinishOperation(operationID int64, status string, finishedAt time.Time) error

	// ListOperations returns the most recent operations, newest first.
	ListOperations(limit int) ([]*Operation, error)

	// ListEvents returns the per-path outcomes of one operation in insertion order.
	ListEvents(operationID int64) ([]*Event, error)

	// Close releases the underlying storage.
	Close() error
}

// Operation is one journaled CLI operation.
type Operation struct {
	ID         int64
	Operation  string
	Target     string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Status     string
	Scanned    int64
	Deleted    int64
	Moved      int64
	Failed     int64
}

// Event is one per-path outcome inside an operation.
type Event struct {
	OperationID int64
	Path        string
	Action      string // "delete", "move" or "scan"
	Outcome     string // "ok" or "error"
	Reason      string
}
