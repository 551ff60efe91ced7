//go:build linux

package fs

import (
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"sweep-go/internal/sweep"
)

// ReadAttributes reads birth time, modification time and link count with
// statx(2). Filesystems that do not record a birth time leave CreatedAt invalid.
func (m *OSFilesystemManager) ReadAttributes(path string) (sweep.Attributes, error) {
	var stx unix.Statx_t
	mask := unix.STATX_BTIME | unix.STATX_MTIME | unix.STATX_NLINK
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_SYMLINK_NOFOLLOW, mask, &stx); err != nil {
		return sweep.Attributes{}, fmt.Errorf("statx %s: %w", path, err)
	}

	var attrs sweep.Attributes
	if stx.Mask&unix.STATX_BTIME != 0 {
		attrs.CreatedAt = sql.NullTime{Time: time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), Valid: true}
	}
	if stx.Mask&unix.STATX_MTIME != 0 {
		attrs.ModifiedAt = sql.NullTime{Time: time.Unix(stx.Mtime.Sec, int64(stx.Mtime.Nsec)), Valid: true}
	}
	if stx.Mask&unix.STATX_NLINK != 0 {
		attrs.UsageProxy = int64(stx.Nlink)
	}
	return attrs, nil
}
