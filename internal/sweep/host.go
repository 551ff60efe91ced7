package sweep

import (
	"fmt"
	"sort"
	"strings"
)

// Host is the capability surface a desktop integration (file manager
// extension, CLI, daemon) drives. It never exposes platform UI types.
type Host interface {
	// Observe is called when a directory comes into view; it runs one
	// cleanup pass over it.
	Observe(dir string) *ScanResult

	// QueryBadge returns the classification tag for a single path.
	QueryBadge(path string) string

	// InvokeCommand runs a named relocation command over a selection.
	InvokeCommand(name string, selection []string) (*RelocationResult, error)
}

// Command binds a menu-style command name to a destination.
type Command struct {
	Name        string // e.g. "To Documents"
	Destination Destination
}

// HostBridge implements Host on top of an Engine and a command table.
type HostBridge struct {
	engine   *Engine
	commands map[string]Command
}

var _ Host = (*HostBridge)(nil)

// NewHostBridge creates a HostBridge. Later commands with a duplicate name
// replace earlier ones.
func NewHostBridge(engine *Engine, commands []Command) *HostBridge {
	table := make(map[string]Command, len(commands))
	for _, c := range commands {
		table[c.Name] = c
	}
	return &HostBridge{engine: engine, commands: table}
}

func (h *HostBridge) Observe(dir string) *ScanResult {
	return h.engine.CleanUnavailable(dir)
}

func (h *HostBridge) QueryBadge(path string) string {
	return h.engine.BadgeFor(path).String()
}

// InvokeCommand resolves name against command names first and destination
// names second (case-insensitively), then relocates the selection.
func (h *HostBridge) InvokeCommand(name string, selection []string) (*RelocationResult, error) {
	cmd, ok := h.resolve(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return h.engine.Relocate(selection, cmd.Destination), nil
}

// Commands returns the registered commands sorted by name.
func (h *HostBridge) Commands() []Command {
	out := make([]Command, 0, len(h.commands))
	for _, c := range h.commands {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (h *HostBridge) resolve(name string) (Command, bool) {
	if c, ok := h.commands[name]; ok {
		return c, true
	}
	for _, c := range h.Commands() {
		if strings.EqualFold(c.Name, name) || strings.EqualFold(c.Destination.Name, name) {
			return c, true
		}
	}
	return Command{}, false
}
