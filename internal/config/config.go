package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for sweep.
type Config struct {
	HostID       string              `toml:"host_id"`
	BaseDir      string              `toml:"base_dir"`
	LogDir       string              `toml:"log_dir"`
	LogLevel     string              `toml:"log_level,omitempty"` // "debug", "info" (default), "warn" or "error"
	Watch        WatchConfig         `toml:"watch"`
	Destinations []DestinationConfig `toml:"destinations"`
	Notifier     NotifierConfig      `toml:"notifier"`
	Journal      JournalConfig       `toml:"journal"`
}

// WatchConfig lists the directories that `sweep run` cleans.
type WatchConfig struct {
	Directories []string `toml:"directories"`
}

// DestinationConfig binds a named relocation command to a destination directory.
type DestinationConfig struct {
	Command string `toml:"command"` // e.g. "To Documents"
	Name    string `toml:"name"`    // e.g. "Documents"
	Path    string `toml:"path"`
}

// NotifierConfig selects how cleanup and move notices reach the user.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type NotifierConfig struct {
	Type  string `toml:"type"`            // "log" (default), "stdout" or "command"
	Title string `toml:"title,omitempty"` // overrides the notification title

	// Command-specific fields (only used when Type == "command").
	// Arguments may contain {title}, {subtitle} and {body} placeholders.
	Command []string `toml:"command,omitempty"`
}

// JournalConfig represents configuration for the operation journal.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type JournalConfig struct {
	Type    string `toml:"type"`               // "sqlite", "memory" or "none"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// NewConfig creates a new Config with the provided values and default
// watch directory, destinations, notifier and journal.
func NewConfig(hostID, baseDir, homeDir string) *Config {
	return &Config{
		HostID:  hostID,
		BaseDir: baseDir,
		LogDir:  filepath.Join(baseDir, "log"),
		Watch: WatchConfig{
			Directories: []string{filepath.Join(homeDir, "Downloads")},
		},
		Destinations: []DestinationConfig{
			{Command: "To Documents", Name: "Documents", Path: filepath.Join(homeDir, "Documents")},
			{Command: "To Music", Name: "Music", Path: filepath.Join(homeDir, "Music")},
		},
		Notifier: NotifierConfig{Type: "log"},
		Journal:  JournalConfig{Type: "sqlite", DataDir: filepath.Join(baseDir, "db")},
	}
}

// Validate checks the fields that cannot be defaulted at use time.
func (c *Config) Validate() error {
	if c.HostID == "" {
		return fmt.Errorf("host_id is required")
	}
	for i, dir := range c.Watch.Directories {
		if !filepath.IsAbs(dir) {
			return fmt.Errorf("watch.directories[%d]: %q is not an absolute path", i, dir)
		}
	}

	seen := make(map[string]bool)
	for i, d := range c.Destinations {
		if d.Command == "" {
			return fmt.Errorf("destinations[%d]: command is required", i)
		}
		if d.Path == "" || !filepath.IsAbs(d.Path) {
			return fmt.Errorf("destinations[%d]: path %q is not an absolute path", i, d.Path)
		}
		key := strings.ToLower(d.Command)
		if seen[key] {
			return fmt.Errorf("destinations[%d]: duplicate command %q", i, d.Command)
		}
		seen[key] = true
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level: %s", c.LogLevel)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
