package database

import (
	"fmt"
	"os"
	"path/filepath"

	"sweep-go/internal/config"
	"sweep-go/internal/sweep"
)

// NewJournalFromConfig creates a Journal implementation based on the journal config type.
func NewJournalFromConfig(cfg config.JournalConfig, hostID string) (sweep.Journal, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite journal")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
		j, err := NewSQLiteJournal(filepath.Join(cfg.DataDir, hostID+".db"))
		if err != nil {
			return nil, err
		}
		return j, nil
	case "memory":
		j, err := NewSQLiteJournal(":memory:")
		if err != nil {
			return nil, err
		}
		return j, nil
	case "none":
		return NewNopJournal(), nil
	default:
		return nil, fmt.Errorf("unknown journal type: %s", cfg.Type)
	}
}
