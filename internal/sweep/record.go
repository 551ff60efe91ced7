package sweep

import (
	"database/sql"
	"time"
)

// Attributes is the raw metadata read for a single path.
// A field that could not be read is left invalid (or zero for UsageProxy).
type Attributes struct {
	CreatedAt  sql.NullTime
	ModifiedAt sql.NullTime
	UsageProxy int64 // link count or similar share heuristic
}

// FileRecord is one scanned entry at the moment of inspection.
// Records are built fresh for every evaluation and never cached.
type FileRecord struct {
	path       string
	createdAt  time.Time
	modifiedAt time.Time
	usageProxy int64
}

// NewFileRecord builds a FileRecord from raw attributes. Missing timestamps
// become now and a missing or negative usage proxy becomes 0, so a file with
// unreadable metadata always looks brand new.
func NewFileRecord(path string, attrs Attributes, now time.Time) *FileRecord {
	r := &FileRecord{
		path:       path,
		createdAt:  now,
		modifiedAt: now,
	}
	if attrs.CreatedAt.Valid {
		r.createdAt = attrs.CreatedAt.Time
	}
	if attrs.ModifiedAt.Valid {
		r.modifiedAt = attrs.ModifiedAt.Time
	}
	if attrs.UsageProxy > 0 {
		r.usageProxy = attrs.UsageProxy
	}
	return r
}

// ReadRecord reads attributes for path and builds a FileRecord.
// Read failures degrade to the NewFileRecord defaults; the error is returned
// only so callers can log it and must not be treated as a failure.
func ReadRecord(reader AttributeReader, path string, now time.Time) (*FileRecord, error) {
	attrs, err := reader.ReadAttributes(path)
	if err != nil {
		return NewFileRecord(path, Attributes{}, now), err
	}
	return NewFileRecord(path, attrs, now), nil
}

// Path returns the absolute path of the entry.
func (r *FileRecord) Path() string { return r.path }

// CreatedAt returns the creation time, or the read time if it was unreadable.
func (r *FileRecord) CreatedAt() time.Time { return r.createdAt }

// ModifiedAt returns the modification time, or the read time if it was unreadable.
func (r *FileRecord) ModifiedAt() time.Time { return r.modifiedAt }

// UsageProxy returns the non-negative usage heuristic.
func (r *FileRecord) UsageProxy() int64 { return r.usageProxy }

// Classify classifies the record against now.
func (r *FileRecord) Classify(now time.Time) Classification {
	return Classify(now, r.createdAt, r.modifiedAt, r.usageProxy)
}
