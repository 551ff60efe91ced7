package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sweep-go/internal/config"
	"sweep-go/internal/database"
	"sweep-go/internal/fs"
	"sweep-go/internal/notify"
	"sweep-go/internal/sweep"
)

// filesystem is everything the app needs from the filesystem layer.
type filesystem interface {
	sweep.Scanner
	sweep.AttributeReader
	sweep.FileMutator
	Resolve(rawPath string) (string, error)
}

// Badge is the classification tag of one path.
type Badge struct {
	Path string
	Tag  string
}

// SweepApp is the application layer between the CLI and the engine.
// It constructs all dependencies from config, exposes high-level operations
// that accept raw string paths, and journals mutating operations.
type SweepApp struct {
	cfg     *config.Config
	fsmgr   filesystem
	journal sweep.Journal
	engine  *sweep.Engine
	host    *sweep.HostBridge
	logger  sweep.Logger
	clock   sweep.Clock
	op      *Operation
	logFile *os.File

	// ownsJournal is set when the app opened the journal itself.
	ownsJournal bool
}

// NewSweepApp creates a fully wired SweepApp from the given config.
// operation identifies the CLI command being run (e.g. "clean", "move").
// The caller must call Close when done.
func NewSweepApp(cfg *config.Config, operation string) (*SweepApp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	opID := time.Now().UTC().Format("20060102T150405Z")
	slogger, logFile, err := newLogger(cfg.LogDir, opID, level)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	logger := &slogAdapter{l: slogger}

	journal, err := database.NewJournalFromConfig(cfg.Journal, cfg.HostID)
	if err != nil {
		logFile.Close()
		return nil, fmt.Errorf("creating journal: %w", err)
	}

	notifier, err := notify.NewNotifierFromConfig(cfg.Notifier, logger, os.Stdout)
	if err != nil {
		journal.Close()
		logFile.Close()
		return nil, fmt.Errorf("creating notifier: %w", err)
	}

	a := newSweepApp(cfg, operation, fs.NewOSFilesystemManager(), journal, notifier, logger, sweep.RealClock{}, sweep.UUIDGenerator{})
	a.logFile = logFile
	a.ownsJournal = true
	return a, nil
}

// newSweepApp wires an app from already constructed dependencies.
func newSweepApp(cfg *config.Config, operation string, fsmgr filesystem, journal sweep.Journal,
	notifier sweep.Notifier, logger sweep.Logger, clock sweep.Clock, idgen sweep.IDGenerator) *SweepApp {
	engine := sweep.NewEngine(fsmgr, fsmgr, fsmgr, notifier, logger, clock, idgen)
	return &SweepApp{
		cfg:     cfg,
		fsmgr:   fsmgr,
		journal: journal,
		engine:  engine,
		host:    sweep.NewHostBridge(engine, commandsFromConfig(cfg.Destinations)),
		logger:  logger,
		clock:   clock,
		op:      NewOperation(operation, ""),
	}
}

// commandsFromConfig builds the relocation command table. A destination
// without a name is named after its directory.
func commandsFromConfig(dests []config.DestinationConfig) []sweep.Command {
	cmds := make([]sweep.Command, 0, len(dests))
	for _, d := range dests {
		name := d.Name
		if name == "" {
			name = filepath.Base(d.Path)
		}
		cmds = append(cmds, sweep.Command{
			Name:        d.Command,
			Destination: sweep.Destination{Name: name, Path: d.Path},
		})
	}
	return cmds
}

// persistOperation saves the operation to the journal, giving it an auto-increment ID.
// This should only be called for mutating commands.
func (a *SweepApp) persistOperation(target string) error {
	if a.op.Persisted() {
		return nil
	}
	a.op.Target = target
	id, err := a.journal.StartOperation(a.op.Operation, target, a.clock.Now())
	if err != nil {
		return fmt.Errorf("persisting operation: %w", err)
	}
	a.op.ID = id
	return nil
}

// Clean resolves dir and runs one cleanup pass over it.
func (a *SweepApp) Clean(rawDir string) (*sweep.ScanResult, error) {
	dir, err := a.fsmgr.Resolve(rawDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	if err := a.persistOperation(dir); err != nil {
		return nil, err
	}

	result := a.host.Observe(dir)
	a.recordScan(result)
	return result, nil
}

// RunWatched runs a cleanup pass over every configured watch directory.
// Directories are cleaned concurrently; results keep the configured order.
func (a *SweepApp) RunWatched() ([]*sweep.ScanResult, error) {
	dirs := a.cfg.Watch.Directories
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no watch directories configured")
	}
	if err := a.persistOperation(strings.Join(dirs, ",")); err != nil {
		return nil, err
	}

	results := make([]*sweep.ScanResult, len(dirs))
	var wg sync.WaitGroup
	for i, dir := range dirs {
		wg.Add(1)
		go func(i int, dir string) {
			defer wg.Done()
			results[i] = a.host.Observe(dir)
		}(i, dir)
	}
	wg.Wait()

	for _, r := range results {
		a.recordScan(r)
	}
	return results, nil
}

// recordScan journals one pass and folds its outcome into the operation status.
// Journal failures are logged; they never undo or fail the pass.
func (a *SweepApp) recordScan(result *sweep.ScanResult) {
	switch {
	case result.Failed():
		a.op.Degrade(StatusError)
	case len(result.Errors) > 0:
		a.op.Degrade(StatusPartial)
	}
	if !a.op.Persisted() {
		return
	}
	if err := a.journal.RecordScan(a.op.ID, result); err != nil {
		a.logger.Error("journal write failed", "dir", result.Directory, "error", err)
	}
}

// Badges resolves each path and returns its classification tag.
func (a *SweepApp) Badges(rawPaths []string) ([]Badge, error) {
	badges := make([]Badge, 0, len(rawPaths))
	for _, raw := range rawPaths {
		p, err := a.fsmgr.Resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		badges = append(badges, Badge{Path: p, Tag: a.host.QueryBadge(p)})
	}
	return badges, nil
}

// Status badges every entry of dir without deleting anything.
func (a *SweepApp) Status(rawDir string) ([]Badge, error) {
	dir, err := a.fsmgr.Resolve(rawDir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	paths, err := a.fsmgr.Scan(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	badges := make([]Badge, 0, len(paths))
	for _, p := range paths {
		badges = append(badges, Badge{Path: p, Tag: a.host.QueryBadge(p)})
	}
	return badges, nil
}

// Move resolves the selection and invokes the named relocation command on it.
func (a *SweepApp) Move(command string, rawPaths []string) (*sweep.RelocationResult, error) {
	paths := make([]string, 0, len(rawPaths))
	for _, raw := range rawPaths {
		p, err := a.fsmgr.Resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("resolving path: %w", err)
		}
		paths = append(paths, p)
	}

	if err := a.persistOperation(command); err != nil {
		return nil, err
	}

	result, err := a.host.InvokeCommand(command, paths)
	if err != nil {
		a.op.Degrade(StatusError)
		return nil, err
	}
	if len(result.Errors) > 0 {
		a.op.Degrade(StatusPartial)
	}

	if a.op.Persisted() {
		if err := a.journal.RecordRelocation(a.op.ID, result); err != nil {
			a.logger.Error("journal write failed", "command", command, "error", err)
		}
	}
	return result, nil
}

// Commands returns the configured relocation commands.
func (a *SweepApp) Commands() []sweep.Command {
	return a.host.Commands()
}

// History returns the most recent journaled operations.
func (a *SweepApp) History(limit int) ([]*sweep.Operation, error) {
	return a.journal.ListOperations(limit)
}

// Events returns the per-path outcomes of one journaled operation.
func (a *SweepApp) Events(operationID int64) ([]*sweep.Event, error) {
	return a.journal.ListEvents(operationID)
}

// Close finalizes the operation and closes all resources.
func (a *SweepApp) Close() error {
	var firstErr error

	if a.op.Persisted() {
		if err := a.journal.FinishOperation(a.op.ID, a.op.Status, a.clock.Now()); err != nil {
			firstErr = fmt.Errorf("finishing operation: %w", err)
		}
	}

	if a.ownsJournal {
		if err := a.journal.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing journal: %w", err)
		}
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
