package testutil

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"sweep-go/internal/sweep"
)

// MockFile represents an entry in the mock filesystem.
type MockFile struct {
	IsDirectory bool
	CreatedAt   time.Time
	ModifiedAt  time.Time
	LinkCount   int64

	// Failure injection
	Unreadable bool  // ReadAttributes fails (files) or Scan fails (directories)
	RemoveErr  error // Remove returns this error
}

// MockFilesystemManager is an in-memory filesystem for testing.
// It implements sweep.Scanner, sweep.AttributeReader and sweep.FileMutator
// and is safe for concurrent use.
type MockFilesystemManager struct {
	mu      sync.Mutex
	files   map[string]*MockFile
	removed []string
	onScan  func(dir string)
}

// NewMockFilesystemManager creates a new mock filesystem.
func NewMockFilesystemManager() *MockFilesystemManager {
	return &MockFilesystemManager{
		files: make(map[string]*MockFile),
	}
}

// AddFile adds a regular file with the given timestamps and a link count of 1.
func (m *MockFilesystemManager) AddFile(path string, createdAt, modifiedAt time.Time) *MockFile {
	return m.AddFileWithUsage(path, createdAt, modifiedAt, 1)
}

// AddFileWithUsage adds a regular file with an explicit usage proxy.
func (m *MockFilesystemManager) AddFileWithUsage(path string, createdAt, modifiedAt time.Time, usage int64) *MockFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &MockFile{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		LinkCount:  usage,
	}
	m.files[filepath.Clean(path)] = f
	return f
}

// AddDirectory adds a directory.
func (m *MockFilesystemManager) AddDirectory(path string) *MockFile {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	f := &MockFile{
		IsDirectory: true,
		CreatedAt:   now,
		ModifiedAt:  now,
		LinkCount:   2,
	}
	m.files[filepath.Clean(path)] = f
	return f
}

// OnScan registers a hook called at the start of every Scan, before the
// listing is taken. Useful for observing concurrency.
func (m *MockFilesystemManager) OnScan(hook func(dir string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onScan = hook
}

// Exists reports whether path is present.
func (m *MockFilesystemManager) Exists(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

// Removed returns every path passed successfully to Remove, in order.
func (m *MockFilesystemManager) Removed() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.removed...)
}

// Scan lists immediate children of dir sorted by name.
func (m *MockFilesystemManager) Scan(dir string) ([]string, error) {
	m.mu.Lock()
	hook := m.onScan
	m.mu.Unlock()
	if hook != nil {
		hook(dir)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dir = filepath.Clean(dir)
	d, ok := m.files[dir]
	if !ok {
		return nil, fmt.Errorf("%w: %s: no such directory", sweep.ErrDirectoryUnreadable, dir)
	}
	if !d.IsDirectory {
		return nil, fmt.Errorf("%w: %s: not a directory", sweep.ErrDirectoryUnreadable, dir)
	}
	if d.Unreadable {
		return nil, fmt.Errorf("%w: %s: permission denied", sweep.ErrDirectoryUnreadable, dir)
	}

	var paths []string
	for p := range m.files {
		if p != dir && filepath.Dir(p) == dir {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *MockFilesystemManager) ReadAttributes(path string) (sweep.Attributes, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.files[filepath.Clean(path)]
	if !ok {
		return sweep.Attributes{}, fmt.Errorf("stat %s: no such file", path)
	}
	if f.Unreadable {
		return sweep.Attributes{}, fmt.Errorf("stat %s: permission denied", path)
	}

	attrs := sweep.Attributes{
		ModifiedAt: sql.NullTime{Time: f.ModifiedAt, Valid: !f.ModifiedAt.IsZero()},
		CreatedAt:  sql.NullTime{Time: f.CreatedAt, Valid: !f.CreatedAt.IsZero()},
		UsageProxy: f.LinkCount,
	}
	return attrs, nil
}

func (m *MockFilesystemManager) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = filepath.Clean(path)
	f, ok := m.files[path]
	if !ok {
		return fmt.Errorf("remove %s: no such file", path)
	}
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	if f.IsDirectory && m.hasChildren(path) {
		return errors.New("remove " + path + ": directory not empty")
	}
	delete(m.files, path)
	m.removed = append(m.removed, path)
	return nil
}

func (m *MockFilesystemManager) Move(source, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	source = filepath.Clean(source)
	target = filepath.Clean(target)

	f, ok := m.files[source]
	if !ok {
		return fmt.Errorf("move %s: no such file", source)
	}
	if parent, ok := m.files[filepath.Dir(target)]; !ok || !parent.IsDirectory {
		return fmt.Errorf("%w: %s", sweep.ErrDestinationMissing, filepath.Dir(target))
	}
	if _, ok := m.files[target]; ok {
		return fmt.Errorf("%w: %s", sweep.ErrTargetExists, target)
	}

	delete(m.files, source)
	m.files[target] = f
	return nil
}

// Resolve joins relative paths onto "/" so tests can pass short names.
func (m *MockFilesystemManager) Resolve(rawPath string) (string, error) {
	if rawPath == "" {
		return "", fmt.Errorf("empty path")
	}
	if !filepath.IsAbs(rawPath) {
		rawPath = "/" + rawPath
	}
	return filepath.Clean(rawPath), nil
}

func (m *MockFilesystemManager) hasChildren(dir string) bool {
	for p := range m.files {
		if p != dir && filepath.Dir(p) == dir {
			return true
		}
	}
	return false
}

// Compile-time checks
var (
	_ sweep.Scanner         = (*MockFilesystemManager)(nil)
	_ sweep.AttributeReader = (*MockFilesystemManager)(nil)
	_ sweep.FileMutator     = (*MockFilesystemManager)(nil)
)
