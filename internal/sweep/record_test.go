package sweep_test

import (
	"database/sql"
	"testing"
	"time"

	"sweep-go/internal/sweep"
	"sweep-go/internal/testutil"
)

func TestNewFileRecord(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -45)

	tests := []struct {
		name         string
		attrs        sweep.Attributes
		wantCreated  time.Time
		wantModified time.Time
		wantUsage    int64
	}{
		{
			name: "all fields present",
			attrs: sweep.Attributes{
				CreatedAt:  sql.NullTime{Time: old, Valid: true},
				ModifiedAt: sql.NullTime{Time: old, Valid: true},
				UsageProxy: 3,
			},
			wantCreated:  old,
			wantModified: old,
			wantUsage:    3,
		},
		{
			name: "missing creation time defaults to now",
			attrs: sweep.Attributes{
				ModifiedAt: sql.NullTime{Time: old, Valid: true},
				UsageProxy: 1,
			},
			wantCreated:  now,
			wantModified: old,
			wantUsage:    1,
		},
		{
			name:         "nothing readable",
			attrs:        sweep.Attributes{},
			wantCreated:  now,
			wantModified: now,
			wantUsage:    0,
		},
		{
			name:         "negative usage clamps to zero",
			attrs:        sweep.Attributes{UsageProxy: -4},
			wantCreated:  now,
			wantModified: now,
			wantUsage:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := sweep.NewFileRecord("/downloads/a.zip", tt.attrs, now)

			if r.Path() != "/downloads/a.zip" {
				t.Errorf("Path() = %q, want %q", r.Path(), "/downloads/a.zip")
			}
			if !r.CreatedAt().Equal(tt.wantCreated) {
				t.Errorf("CreatedAt() = %v, want %v", r.CreatedAt(), tt.wantCreated)
			}
			if !r.ModifiedAt().Equal(tt.wantModified) {
				t.Errorf("ModifiedAt() = %v, want %v", r.ModifiedAt(), tt.wantModified)
			}
			if r.UsageProxy() != tt.wantUsage {
				t.Errorf("UsageProxy() = %d, want %d", r.UsageProxy(), tt.wantUsage)
			}
		})
	}
}

func TestReadRecord(t *testing.T) {
	clock := testutil.FixedClock()
	now := clock.Now()

	t.Run("reads attributes from the reader", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		fsmgr.AddFileWithUsage("/downloads/old.iso", clock.DaysAgo(40), clock.DaysAgo(40), 2)

		r, err := sweep.ReadRecord(fsmgr, "/downloads/old.iso", now)
		if err != nil {
			t.Fatalf("ReadRecord() error = %v", err)
		}
		if got := r.Classify(now); got != sweep.Unavailable {
			t.Errorf("Classify() = %v, want %v", got, sweep.Unavailable)
		}
		if r.UsageProxy() != 2 {
			t.Errorf("UsageProxy() = %d, want 2", r.UsageProxy())
		}
	})

	t.Run("unreadable metadata degrades to a fresh record", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()
		f := fsmgr.AddFile("/downloads/locked.iso", clock.DaysAgo(400), clock.DaysAgo(400))
		f.Unreadable = true

		r, err := sweep.ReadRecord(fsmgr, "/downloads/locked.iso", now)
		if err == nil {
			t.Fatal("ReadRecord() expected the read error to be reported")
		}
		if r == nil {
			t.Fatal("ReadRecord() returned nil record on read failure")
		}
		if got := r.Classify(now); got != sweep.Available {
			t.Errorf("Classify() = %v, want %v", got, sweep.Available)
		}
	})

	t.Run("missing file degrades to a fresh record", func(t *testing.T) {
		fsmgr := testutil.NewMockFilesystemManager()

		r, _ := sweep.ReadRecord(fsmgr, "/downloads/gone.txt", now)
		if got := r.Classify(now); got != sweep.Available {
			t.Errorf("Classify() = %v, want %v", got, sweep.Available)
		}
	})
}
