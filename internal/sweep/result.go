package sweep

import "time"

// ScanResult aggregates one cleanup pass over one directory.
// A path appears in DeletedPaths or in Errors, never both.
type ScanResult struct {
	Directory    string
	ScannedCount int
	DeletedPaths []string
	Errors       []FileError

	// Retained counts entries that were Available or PartiallyAvailable.
	Retained int

	StartedAt  time.Time
	FinishedAt time.Time
}

// Failed reports whether the directory itself could not be listed.
func (r *ScanResult) Failed() bool {
	return len(r.Errors) == 1 && r.Errors[0].Kind == DirectoryUnreadable && r.ScannedCount == 0
}

// RelocationResult aggregates one move batch.
type RelocationResult struct {
	Destination Destination
	MovedPaths  []string // source paths that were moved
	Errors      []FileError
}
