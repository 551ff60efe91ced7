package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - SWEEP_CONFIG_PATH: config file location (default: ~/.config/sweep.toml)
//   - SWEEP_HOME: base directory for sweep data (default: ~/.local/share/sweep)
func GetDefaults() (map[string]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}

	configPath := os.Getenv("SWEEP_CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(homeDir, ".config", "sweep.toml")
	}

	baseDir := os.Getenv("SWEEP_HOME")
	if baseDir == "" {
		baseDir = filepath.Join(homeDir, ".local", "share", "sweep")
	}

	return map[string]string{
		"config_path": configPath,
		"base_dir":    baseDir,
		"log_dir":     filepath.Join(baseDir, "log"),
		"home_dir":    homeDir,
	}, nil
}
