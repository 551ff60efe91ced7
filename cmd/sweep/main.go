package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"sweep-go/internal/app"
	"sweep-go/internal/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a SweepApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "clean", "move").
func newApp(operation string) (*app.SweepApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewSweepApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// targetDir returns args[0] or the current directory.
func targetDir(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	return cwd, nil
}

var rootCmd = &cobra.Command{
	Use:          "sweep",
	Short:        "Classify and clean up stale files",
	SilenceUsage: true,
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		hostID := uuid.New().String()
		cfg := config.NewConfig(hostID, defaults["base_dir"], defaults["home_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Host ID: %s\n", hostID)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		printConfig(os.Stdout, cfg)
		return nil
	},
}

// run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Clean every watched directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("run")
		if err != nil {
			return err
		}
		defer a.Close()

		results, err := a.RunWatched()
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			printScanResult(os.Stdout, r)
			failed += len(r.Errors)
		}
		if failed > 0 {
			return fmt.Errorf("%d path(s) could not be processed", failed)
		}
		return nil
	},
}

// clean command
var cleanCmd = &cobra.Command{
	Use:   "clean [DIR]",
	Short: "Delete unavailable files in a directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}

		a, err := newApp("clean")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Clean(dir)
		if err != nil {
			return err
		}

		printScanResult(os.Stdout, result)
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d path(s) could not be processed", len(result.Errors))
		}
		return nil
	},
}

// badge command
var badgeCmd = &cobra.Command{
	Use:   "badge PATH...",
	Short: "Show the classification of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("badge")
		if err != nil {
			return err
		}
		defer a.Close()

		badges, err := a.Badges(args)
		if err != nil {
			return err
		}

		printBadges(os.Stdout, badges, stdoutIsTerminal())
		return nil
	},
}

// status command
var statusCmd = &cobra.Command{
	Use:   "status [DIR]",
	Short: "Classify every entry of a directory without deleting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}

		a, err := newApp("status")
		if err != nil {
			return err
		}
		defer a.Close()

		badges, err := a.Status(dir)
		if err != nil {
			return err
		}

		if len(badges) == 0 {
			fmt.Println("No files found.")
			return nil
		}
		printBadges(os.Stdout, badges, stdoutIsTerminal())
		return nil
	},
}

// move command
var moveCmd = &cobra.Command{
	Use:   "move COMMAND PATH...",
	Short: "Move files to a configured destination",
	Long: `Move files to a configured destination.

COMMAND is a relocation command name such as "To Documents" or a
destination name such as "Documents". Matching ignores case.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("move")
		if err != nil {
			return err
		}
		defer a.Close()

		result, err := a.Move(args[0], args[1:])
		if err != nil {
			names := make([]string, 0)
			for _, c := range a.Commands() {
				names = append(names, fmt.Sprintf("%q", c.Name))
			}
			return fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
		}

		printRelocationResult(os.Stdout, result)
		if len(result.Errors) > 0 {
			return fmt.Errorf("%d file(s) could not be moved", len(result.Errors))
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history [ID]",
	Short: "View operation history",
	Long:  "View operation history. With an ID, list the per-file outcomes of that operation.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("history")
		if err != nil {
			return err
		}
		defer a.Close()

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid operation id %q: %w", args[0], err)
			}
			events, err := a.Events(id)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No file events recorded.")
				return nil
			}
			printEvents(os.Stdout, events)
			return nil
		}

		ops, err := a.History(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}
		printOperations(os.Stdout, ops)
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(badgeCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
}
