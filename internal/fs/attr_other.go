//go:build !linux && !darwin

package fs

import (
	"database/sql"
	"fmt"
	"os"

	"sweep-go/internal/sweep"
)

// ReadAttributes falls back to os.Lstat, which exposes no portable birth time
// or link count. CreatedAt stays invalid, so files on these platforms are
// never old enough to be Unavailable.
func (m *OSFilesystemManager) ReadAttributes(path string) (sweep.Attributes, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return sweep.Attributes{}, fmt.Errorf("lstat %s: %w", path, err)
	}
	return sweep.Attributes{
		ModifiedAt: sql.NullTime{Time: info.ModTime(), Valid: true},
	}, nil
}
