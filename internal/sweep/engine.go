package sweep

import (
	"fmt"
	"path/filepath"
	"time"
)

// Engine is the orchestration layer that scans a directory, classifies each
// entry and deletes the Unavailable ones. Apart from the per-directory guard
// it keeps no state between calls.
type Engine struct {
	scanner  Scanner
	reader   AttributeReader
	mutator  FileMutator
	notifier Notifier
	logger   Logger
	clock    Clock
	idgen    IDGenerator
	guard    *dirGuard
}

// NewEngine creates a new Engine with the provided collaborators.
// notifier may be nil, in which case nothing is surfaced to the user.
func NewEngine(scanner Scanner, reader AttributeReader, mutator FileMutator, notifier Notifier, logger Logger, clock Clock, idgen IDGenerator) *Engine {
	return &Engine{
		scanner:  scanner,
		reader:   reader,
		mutator:  mutator,
		notifier: notifier,
		logger:   logger,
		clock:    clock,
		idgen:    idgen,
		guard:    newDirGuard(),
	}
}

// CleanUnavailable runs one scan pass over dir: every immediate entry is
// classified against a single shared "now" and Unavailable entries are
// permanently deleted. Per-file failures are collected in the result; only a
// listing failure ends the pass early.
func (e *Engine) CleanUnavailable(dir string) *ScanResult {
	now := e.clock.Now()
	dir = filepath.Clean(dir)

	unlock := e.guard.lock(dir)
	defer unlock()

	result := &ScanResult{
		Directory:    dir,
		DeletedPaths: []string{},
		Errors:       []FileError{},
		StartedAt:    now,
	}

	paths, err := e.scanner.Scan(dir)
	if err != nil {
		e.logger.Error("directory unreadable", "dir", dir, "error", err)
		result.Errors = append(result.Errors, newFileError(DirectoryUnreadable, dir, err))
		result.FinishedAt = e.clock.Now()
		return result
	}

	e.logger.Debug("scanning directory", "dir", dir, "entries", len(paths))

	for _, path := range paths {
		result.ScannedCount++

		record := e.readRecord(path, now)
		status := record.Classify(now)
		e.logger.Debug("classified",
			"path", path,
			"days_since_creation", WholeDaysBetween(record.CreatedAt(), now),
			"days_since_modification", WholeDaysBetween(record.ModifiedAt(), now),
			"usage", record.UsageProxy(),
			"status", status.String(),
		)

		if status != Unavailable {
			result.Retained++
			continue
		}

		if err := e.mutator.Remove(path); err != nil {
			e.logger.Warn("delete failed", "path", path, "error", err)
			result.Errors = append(result.Errors, newFileError(DeleteFailed, path, err))
			continue
		}

		e.logger.Info("file deleted", "path", path)
		result.DeletedPaths = append(result.DeletedPaths, path)
	}

	result.FinishedAt = e.clock.Now()

	if len(result.DeletedPaths) > 0 {
		e.notify(Notification{
			Subtitle: "File cleanup notice",
			Body:     fmt.Sprintf("Removed %d unused file(s) from %s", len(result.DeletedPaths), dir),
		})
	}

	e.logger.Info("scan complete",
		"dir", dir,
		"scanned", result.ScannedCount,
		"deleted", len(result.DeletedPaths),
		"errors", len(result.Errors),
	)
	return result
}

// BadgeFor classifies a single path with its own fresh "now". It takes no
// lock and touches nothing but the path's metadata, so concurrent calls are
// safe.
func (e *Engine) BadgeFor(path string) Classification {
	now := e.clock.Now()
	return e.readRecord(path, now).Classify(now)
}

// readRecord reads path's attributes, degrading to the lenient defaults when
// the metadata cannot be read.
func (e *Engine) readRecord(path string, now time.Time) *FileRecord {
	record, err := ReadRecord(e.reader, path, now)
	if err != nil {
		e.logger.Debug("metadata unreadable", "kind", string(MetadataUnreadable), "path", path, "error", err)
	}
	return record
}

// notify fills in the identity fields and hands n to the notifier.
func (e *Engine) notify(n Notification) {
	if e.notifier == nil {
		return
	}
	n.ID = e.idgen.New()
	if n.Title == "" {
		n.Title = DefaultNotificationTitle
	}
	if err := e.notifier.Notify(n); err != nil {
		e.logger.Warn("notification failed", "id", n.ID, "error", err)
	}
}
