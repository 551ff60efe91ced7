package testutil

import (
	"testing"

	"sweep-go/internal/database"
)

// NewTestJournal creates a new in-memory SQLite journal with schema applied.
// The journal is automatically closed when the test completes.
func NewTestJournal(t *testing.T) *database.SQLiteJournal {
	t.Helper()

	j, err := database.NewSQLiteJournal(":memory:")
	if err != nil {
		t.Fatalf("failed to open journal: %v", err)
	}

	t.Cleanup(func() {
		j.Close()
	})

	return j
}
