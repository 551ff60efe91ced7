package sweep

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectoryUnreadable is wrapped by Scanner implementations when a
	// directory cannot be listed.
	ErrDirectoryUnreadable = errors.New("directory unreadable")

	// ErrDestinationMissing is wrapped by FileMutator.Move when the target's
	// parent directory does not exist.
	ErrDestinationMissing = errors.New("destination directory does not exist")

	// ErrTargetExists is wrapped by FileMutator.Move when the target path is taken.
	ErrTargetExists = errors.New("target already exists")

	// ErrUnknownCommand is returned by HostBridge.InvokeCommand for names
	// that match no relocation command or destination.
	ErrUnknownCommand = errors.New("unknown command")
)

// ErrorKind classifies a per-path failure.
type ErrorKind string

const (
	// MetadataUnreadable is logged only; it never appears in a result.
	MetadataUnreadable  ErrorKind = "MetadataUnreadable"
	DirectoryUnreadable ErrorKind = "DirectoryUnreadable"
	DeleteFailed        ErrorKind = "DeleteFailed"
	MoveFailed          ErrorKind = "MoveFailed"
)

// FileError records a failure for one path as data.
type FileError struct {
	Path   string
	Kind   ErrorKind
	Reason string
}

func newFileError(kind ErrorKind, path string, err error) FileError {
	return FileError{Path: path, Kind: kind, Reason: err.Error()}
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Kind, e.Path, e.Reason)
}
