package sweep

import (
	"fmt"
	"path/filepath"
)

// Destination is a named target directory for relocation commands.
type Destination struct {
	Name string // e.g. "Documents"
	Path string // absolute directory path
}

// Relocate moves each selected file into dest, keeping its filename.
// Every file is attempted even when earlier ones fail. Each successful move
// sends one acknowledgment naming the destination.
//
// A move holds the guard of the file's source directory so it can never
// race a cleanup pass deleting the same path.
func (e *Engine) Relocate(paths []string, dest Destination) *RelocationResult {
	result := &RelocationResult{
		Destination: dest,
		MovedPaths:  []string{},
		Errors:      []FileError{},
	}

	for _, source := range paths {
		source = filepath.Clean(source)
		target := filepath.Join(dest.Path, filepath.Base(source))

		if err := e.moveOne(source, target); err != nil {
			e.logger.Warn("move failed", "path", source, "destination", dest.Path, "error", err)
			result.Errors = append(result.Errors, newFileError(MoveFailed, source, err))
			continue
		}

		e.logger.Info("file moved", "path", source, "target", target)
		result.MovedPaths = append(result.MovedPaths, source)

		e.notify(Notification{
			Subtitle: "Move complete",
			Body:     fmt.Sprintf("Moved %s to %s", filepath.Base(source), destinationLabel(dest)),
		})
	}

	return result
}

func (e *Engine) moveOne(source, target string) error {
	unlock := e.guard.lock(filepath.Dir(source))
	defer unlock()

	if err := e.mutator.Move(source, target); err != nil {
		return fmt.Errorf("moving %s: %w", source, err)
	}
	return nil
}

// destinationLabel names a destination for user-facing messages.
func destinationLabel(dest Destination) string {
	if dest.Name == "" {
		return dest.Path
	}
	return fmt.Sprintf("%s (%s)", dest.Name, dest.Path)
}
