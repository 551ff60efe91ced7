//go:build darwin

package fs

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"sweep-go/internal/sweep"
)

// ReadAttributes reads birth time, modification time and link count with lstat(2).
func (m *OSFilesystemManager) ReadAttributes(path string) (sweep.Attributes, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return sweep.Attributes{}, fmt.Errorf("lstat %s: %w", path, err)
	}

	return sweep.Attributes{
		CreatedAt:  sql.NullTime{Time: time.Unix(st.Btim.Unix()), Valid: true},
		ModifiedAt: sql.NullTime{Time: time.Unix(st.Mtim.Unix()), Valid: true},
		UsageProxy: int64(st.Nlink),
	}, nil
}
