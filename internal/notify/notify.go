package notify

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"sweep-go/internal/sweep"
)

// LogNotifier writes notifications through the application logger.
type LogNotifier struct {
	logger sweep.Logger
}

func NewLogNotifier(logger sweep.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(msg sweep.Notification) error {
	n.logger.Info("notification", "id", msg.ID, "title", msg.Title, "subtitle", msg.Subtitle, "body", msg.Body)
	return nil
}

// WriterNotifier prints one line per notification.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(msg sweep.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	line := msg.Title
	if msg.Subtitle != "" {
		line += ": " + msg.Subtitle
	}
	line += " - " + msg.Body
	if _, err := fmt.Fprintln(n.w, line); err != nil {
		return fmt.Errorf("writing notification: %w", err)
	}
	return nil
}

// CommandRunner executes an external program. It is swapped out in tests.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// ExecRunner runs the program with os/exec and reports its combined output on failure.
func ExecRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// DefaultCommandTimeout bounds how long a notification command may run.
const DefaultCommandTimeout = 10 * time.Second

// CommandNotifier runs a configured argv for each notification, substituting
// {title}, {subtitle} and {body} in every argument.
type CommandNotifier struct {
	argv    []string
	run     CommandRunner
	timeout time.Duration
}

// NewCommandNotifier returns a notifier for argv. A nil run uses ExecRunner.
func NewCommandNotifier(argv []string, run CommandRunner) (*CommandNotifier, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, fmt.Errorf("command notifier requires a program")
	}
	if run == nil {
		run = ExecRunner
	}
	return &CommandNotifier{
		argv:    append([]string(nil), argv...),
		run:     run,
		timeout: DefaultCommandTimeout,
	}, nil
}

func (n *CommandNotifier) Notify(msg sweep.Notification) error {
	replacer := strings.NewReplacer(
		"{title}", msg.Title,
		"{subtitle}", msg.Subtitle,
		"{body}", msg.Body,
	)
	args := make([]string, len(n.argv)-1)
	for i, a := range n.argv[1:] {
		args[i] = replacer.Replace(a)
	}

	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()
	if err := n.run(ctx, n.argv[0], args...); err != nil {
		return fmt.Errorf("running notification command: %w", err)
	}
	return nil
}

// titled overrides the title of every notification before delivery.
type titled struct {
	title string
	next  sweep.Notifier
}

func (t *titled) Notify(msg sweep.Notification) error {
	msg.Title = t.title
	return t.next.Notify(msg)
}

// WithTitle wraps next so every notification carries title. An empty title returns next unchanged.
func WithTitle(title string, next sweep.Notifier) sweep.Notifier {
	if title == "" {
		return next
	}
	return &titled{title: title, next: next}
}

// Compile-time checks
var (
	_ sweep.Notifier = (*LogNotifier)(nil)
	_ sweep.Notifier = (*WriterNotifier)(nil)
	_ sweep.Notifier = (*CommandNotifier)(nil)
	_ sweep.Notifier = (*titled)(nil)
)
