package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"sweep-go/internal/sweep"
)

// OSFilesystemManager is the real filesystem implementation of the engine's
// Scanner, AttributeReader and FileMutator.
type OSFilesystemManager struct{}

// NewOSFilesystemManager creates a new filesystem manager that operates on the real filesystem.
func NewOSFilesystemManager() *OSFilesystemManager {
	return &OSFilesystemManager{}
}

// Resolve converts a raw path to a cleaned absolute path without requiring it to exist.
func (m *OSFilesystemManager) Resolve(rawPath string) (string, error) {
	absPath, err := filepath.Abs(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return absPath, nil
}

// Scan lists the immediate entries of dir. Hidden files are included and
// subdirectories are returned as entries, not walked.
func (m *OSFilesystemManager) Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", sweep.ErrDirectoryUnreadable, err)
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Remove deletes a single entry. Directories are only removed when empty.
func (m *OSFilesystemManager) Remove(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing: %w", err)
	}
	return nil
}

// Move renames source to target, falling back to copy-and-delete for
// regular files when the two live on different devices.
func (m *OSFilesystemManager) Move(source, target string) error {
	parent := filepath.Dir(target)
	info, err := os.Stat(parent)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", sweep.ErrDestinationMissing, parent)
		}
		return fmt.Errorf("stat destination: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", sweep.ErrDestinationMissing, parent)
	}

	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("%w: %s", sweep.ErrTargetExists, target)
	}

	err = os.Rename(source, target)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return fmt.Errorf("renaming: %w", err)
	}

	if err := copyFile(source, target); err != nil {
		return fmt.Errorf("copying across devices: %w", err)
	}
	if err := os.Remove(source); err != nil {
		return fmt.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// copyFile copies a regular file preserving its mode and modification time.
// The partial target is removed on failure.
func copyFile(source, target string) (err error) {
	info, err := os.Lstat(source)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("cannot copy %s across devices: not a regular file", source)
	}

	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			out.Close()
			os.Remove(target)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	if err = out.Close(); err != nil {
		return err
	}
	return os.Chtimes(target, info.ModTime(), info.ModTime())
}

// Compile-time checks that OSFilesystemManager implements the engine's interfaces
var (
	_ sweep.Scanner         = (*OSFilesystemManager)(nil)
	_ sweep.AttributeReader = (*OSFilesystemManager)(nil)
	_ sweep.FileMutator     = (*OSFilesystemManager)(nil)
)
