package fs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"

	"sweep-go/internal/sweep"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestOSFilesystemManager_Scan(t *testing.T) {
	t.Run("lists immediate entries including hidden files", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.txt"), "a")
		writeFile(t, filepath.Join(dir, ".hidden"), "h")
		if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, "sub", "nested.txt"), "n")

		paths, err := NewOSFilesystemManager().Scan(dir)
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		sort.Strings(paths)

		want := []string{
			filepath.Join(dir, ".hidden"),
			filepath.Join(dir, "a.txt"),
			filepath.Join(dir, "sub"),
		}
		if len(paths) != len(want) {
			t.Fatalf("Scan() = %v, want %v", paths, want)
		}
		for i := range want {
			if paths[i] != want[i] {
				t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
			}
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		t.Parallel()
		paths, err := NewOSFilesystemManager().Scan(t.TempDir())
		if err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		if len(paths) != 0 {
			t.Errorf("Scan() = %v, want empty", paths)
		}
	})

	t.Run("missing directory wraps ErrDirectoryUnreadable", func(t *testing.T) {
		t.Parallel()
		_, err := NewOSFilesystemManager().Scan(filepath.Join(t.TempDir(), "nope"))
		if !errors.Is(err, sweep.ErrDirectoryUnreadable) {
			t.Errorf("Scan() error = %v, want ErrDirectoryUnreadable", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Scan() error = %v, want it to wrap os.ErrNotExist", err)
		}
	})

	t.Run("regular file is not a directory", func(t *testing.T) {
		t.Parallel()
		file := filepath.Join(t.TempDir(), "f.txt")
		writeFile(t, file, "x")

		_, err := NewOSFilesystemManager().Scan(file)
		if !errors.Is(err, sweep.ErrDirectoryUnreadable) {
			t.Errorf("Scan() error = %v, want ErrDirectoryUnreadable", err)
		}
	})
}

func TestOSFilesystemManager_ReadAttributes(t *testing.T) {
	t.Run("modification time", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "old.zip")
		writeFile(t, path, "zip")
		mtime := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
		if err := os.Chtimes(path, mtime, mtime); err != nil {
			t.Fatal(err)
		}

		attrs, err := NewOSFilesystemManager().ReadAttributes(path)
		if err != nil {
			t.Fatalf("ReadAttributes() error = %v", err)
		}
		if !attrs.ModifiedAt.Valid || !attrs.ModifiedAt.Time.Equal(mtime) {
			t.Errorf("ModifiedAt = %v, want %v", attrs.ModifiedAt, mtime)
		}
	})

	t.Run("creation time is not after now when present", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "new.txt")
		writeFile(t, path, "x")

		attrs, err := NewOSFilesystemManager().ReadAttributes(path)
		if err != nil {
			t.Fatalf("ReadAttributes() error = %v", err)
		}
		if attrs.CreatedAt.Valid && attrs.CreatedAt.Time.After(time.Now().Add(time.Minute)) {
			t.Errorf("CreatedAt = %v, in the future", attrs.CreatedAt.Time)
		}
	})

	t.Run("hard links raise the usage proxy", func(t *testing.T) {
		if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
			t.Skip("link count not available on this platform")
		}
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "shared.bin")
		writeFile(t, path, "x")

		fsmgr := NewOSFilesystemManager()
		before, err := fsmgr.ReadAttributes(path)
		if err != nil {
			t.Fatalf("ReadAttributes() error = %v", err)
		}
		if err := os.Link(path, filepath.Join(dir, "shared-link.bin")); err != nil {
			t.Skipf("hard links unsupported: %v", err)
		}
		after, err := fsmgr.ReadAttributes(path)
		if err != nil {
			t.Fatalf("ReadAttributes() error = %v", err)
		}
		if after.UsageProxy != before.UsageProxy+1 {
			t.Errorf("UsageProxy = %d after link, want %d", after.UsageProxy, before.UsageProxy+1)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := NewOSFilesystemManager().ReadAttributes(filepath.Join(t.TempDir(), "gone"))
		if err == nil {
			t.Error("ReadAttributes() expected error for missing file")
		}
	})
}

func TestOSFilesystemManager_Remove(t *testing.T) {
	t.Run("removes a file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "a.txt")
		writeFile(t, path, "a")

		if err := NewOSFilesystemManager().Remove(path); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, err := os.Lstat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("file still exists after Remove()")
		}
	})

	t.Run("refuses a non-empty directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "sub")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(dir, "keep.txt"), "k")

		if err := NewOSFilesystemManager().Remove(dir); err == nil {
			t.Error("Remove() expected error for non-empty directory")
		}
		if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
			t.Errorf("directory contents touched: %v", err)
		}
	})

	t.Run("removes an empty directory", func(t *testing.T) {
		t.Parallel()
		dir := filepath.Join(t.TempDir(), "empty")
		if err := os.Mkdir(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := NewOSFilesystemManager().Remove(dir); err != nil {
			t.Errorf("Remove() error = %v", err)
		}
	})
}

func TestOSFilesystemManager_Move(t *testing.T) {
	t.Run("moves into destination", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		src := filepath.Join(root, "report.pdf")
		destDir := filepath.Join(root, "Documents")
		writeFile(t, src, "pdf")
		if err := os.Mkdir(destDir, 0o755); err != nil {
			t.Fatal(err)
		}

		target := filepath.Join(destDir, "report.pdf")
		if err := NewOSFilesystemManager().Move(src, target); err != nil {
			t.Fatalf("Move() error = %v", err)
		}
		data, err := os.ReadFile(target)
		if err != nil || string(data) != "pdf" {
			t.Errorf("target content = %q, %v; want %q", data, err, "pdf")
		}
		if _, err := os.Lstat(src); !errors.Is(err, os.ErrNotExist) {
			t.Error("source still exists after Move()")
		}
	})

	t.Run("missing destination directory", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		src := filepath.Join(root, "a.txt")
		writeFile(t, src, "a")

		err := NewOSFilesystemManager().Move(src, filepath.Join(root, "Music", "a.txt"))
		if !errors.Is(err, sweep.ErrDestinationMissing) {
			t.Errorf("Move() error = %v, want ErrDestinationMissing", err)
		}
		if _, err := os.Stat(src); err != nil {
			t.Errorf("source lost after failed move: %v", err)
		}
	})

	t.Run("destination is a file", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		src := filepath.Join(root, "a.txt")
		writeFile(t, src, "a")
		writeFile(t, filepath.Join(root, "notadir"), "x")

		err := NewOSFilesystemManager().Move(src, filepath.Join(root, "notadir", "a.txt"))
		if !errors.Is(err, sweep.ErrDestinationMissing) {
			t.Errorf("Move() error = %v, want ErrDestinationMissing", err)
		}
	})

	t.Run("existing target is not overwritten", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		src := filepath.Join(root, "a.txt")
		destDir := filepath.Join(root, "dest")
		writeFile(t, src, "new")
		if err := os.Mkdir(destDir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(destDir, "a.txt"), "old")

		err := NewOSFilesystemManager().Move(src, filepath.Join(destDir, "a.txt"))
		if !errors.Is(err, sweep.ErrTargetExists) {
			t.Errorf("Move() error = %v, want ErrTargetExists", err)
		}
		data, _ := os.ReadFile(filepath.Join(destDir, "a.txt"))
		if string(data) != "old" {
			t.Errorf("target overwritten: %q", data)
		}
	})

	t.Run("missing source", func(t *testing.T) {
		t.Parallel()
		root := t.TempDir()
		err := NewOSFilesystemManager().Move(filepath.Join(root, "gone"), filepath.Join(root, "gone2"))
		if err == nil {
			t.Error("Move() expected error for missing source")
		}
	})
}

func TestCopyFile(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	src := filepath.Join(root, "src.bin")
	dst := filepath.Join(root, "dst.bin")
	writeFile(t, src, "payload")
	mtime := time.Date(2022, 5, 6, 7, 8, 9, 0, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatal(err)
	}

	if err := copyFile(src, dst); err != nil {
		t.Fatalf("copyFile() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Fatalf("dst = %q, %v", data, err)
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(mtime) {
		t.Errorf("ModTime = %v, want %v", info.ModTime(), mtime)
	}

	if err := copyFile(src, dst); err == nil {
		t.Error("copyFile() expected error when target exists")
	}
}

func TestOSFilesystemManager_Resolve(t *testing.T) {
	t.Parallel()
	got, err := NewOSFilesystemManager().Resolve("some/../rel")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "rel" {
		t.Errorf("Resolve() = %q, want absolute path ending in rel", got)
	}
}
