package sweep

// Scanner lists the immediate children of a directory.
type Scanner interface {
	// Scan returns absolute paths of the directory's immediate entries in
	// listing order. Subdirectories are listed but never descended into and
	// hidden entries are not filtered. A listing failure must wrap
	// ErrDirectoryUnreadable.
	Scan(dir string) ([]string, error)
}

// AttributeReader reads per-file metadata without opening the file.
type AttributeReader interface {
	// ReadAttributes returns the creation time, modification time and usage
	// proxy of path. Symlinks are not followed. Fields the platform cannot
	// supply are left invalid.
	ReadAttributes(path string) (Attributes, error)
}

// FileMutator performs the two destructive operations the engine needs.
type FileMutator interface {
	// Remove permanently deletes a single entry. Non-empty directories are
	// not removed.
	Remove(path string) error

	// Move renames source to target. It fails with ErrDestinationMissing if
	// target's parent directory does not exist and with ErrTargetExists if
	// target is already present.
	Move(source, target string) error
}
