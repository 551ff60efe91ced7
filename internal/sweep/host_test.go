package sweep_test

import (
	"errors"
	"testing"

	"sweep-go/internal/sweep"
)

func TestHostBridge(t *testing.T) {
	commands := []sweep.Command{
		{Name: "To Documents", Destination: sweep.Destination{Name: "Documents", Path: "/home/user/Documents"}},
		{Name: "To Music", Destination: sweep.Destination{Name: "Music", Path: "/home/user/Music"}},
	}

	setup := func(t *testing.T) (*sweep.HostBridge, *engineFixture) {
		t.Helper()
		f := newEngineFixture(t)
		f.fsmgr.AddDirectory("/home/user/Downloads")
		f.fsmgr.AddDirectory("/home/user/Documents")
		f.fsmgr.AddDirectory("/home/user/Music")
		return sweep.NewHostBridge(f.engine, commands), f
	}

	t.Run("Observe runs a cleanup pass", func(t *testing.T) {
		t.Parallel()
		host, f := setup(t)
		f.fsmgr.AddFileWithUsage("/home/user/Downloads/old.dmg", f.clock.DaysAgo(45), f.clock.DaysAgo(45), 0)

		result := host.Observe("/home/user/Downloads")

		if len(result.DeletedPaths) != 1 {
			t.Errorf("DeletedPaths = %v, want 1 entry", result.DeletedPaths)
		}
	})

	t.Run("QueryBadge returns the tag", func(t *testing.T) {
		t.Parallel()
		host, f := setup(t)
		f.fsmgr.AddFileWithUsage("/home/user/Downloads/song.mp3", f.clock.DaysAgo(2), f.clock.DaysAgo(2), 120)

		if got := host.QueryBadge("/home/user/Downloads/song.mp3"); got != "PartiallyAvailable" {
			t.Errorf("QueryBadge() = %q, want %q", got, "PartiallyAvailable")
		}
	})

	t.Run("InvokeCommand by command name", func(t *testing.T) {
		t.Parallel()
		host, f := setup(t)
		f.fsmgr.AddFile("/home/user/Downloads/song.mp3", f.clock.DaysAgo(2), f.clock.DaysAgo(2))

		result, err := host.InvokeCommand("To Music", []string{"/home/user/Downloads/song.mp3"})
		if err != nil {
			t.Fatalf("InvokeCommand() error = %v", err)
		}
		if len(result.MovedPaths) != 1 {
			t.Errorf("MovedPaths = %v, want 1 entry", result.MovedPaths)
		}
		if !f.fsmgr.Exists("/home/user/Music/song.mp3") {
			t.Error("file not moved to Music")
		}
	})

	t.Run("InvokeCommand by destination name ignores case", func(t *testing.T) {
		t.Parallel()
		host, f := setup(t)
		f.fsmgr.AddFile("/home/user/Downloads/cv.pdf", f.clock.DaysAgo(2), f.clock.DaysAgo(2))

		result, err := host.InvokeCommand("documents", []string{"/home/user/Downloads/cv.pdf"})
		if err != nil {
			t.Fatalf("InvokeCommand() error = %v", err)
		}
		if result.Destination.Name != "Documents" {
			t.Errorf("Destination.Name = %q, want %q", result.Destination.Name, "Documents")
		}
	})

	t.Run("InvokeCommand with unknown name", func(t *testing.T) {
		t.Parallel()
		host, _ := setup(t)

		_, err := host.InvokeCommand("To Trash", []string{"/home/user/Downloads/x"})
		if !errors.Is(err, sweep.ErrUnknownCommand) {
			t.Errorf("InvokeCommand() error = %v, want ErrUnknownCommand", err)
		}
	})

	t.Run("Commands are sorted", func(t *testing.T) {
		t.Parallel()
		host, _ := setup(t)

		got := host.Commands()
		if len(got) != 2 || got[0].Name != "To Documents" || got[1].Name != "To Music" {
			t.Errorf("Commands() = %+v", got)
		}
	})
}
