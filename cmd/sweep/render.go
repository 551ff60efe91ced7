package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"sweep-go/internal/app"
	"sweep-go/internal/config"
	"sweep-go/internal/sweep"
)

var (
	availableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	partialStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	unavailableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pathStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// badgeWidth fits the longest tag so styled columns line up.
var badgeWidth = len(sweep.PartiallyAvailable.String())

// styleFor picks the badge color for tag. Tags that do not name a
// classification render unstyled.
func styleFor(tag string) lipgloss.Style {
	c, err := sweep.ParseClassification(tag)
	if err != nil {
		return lipgloss.NewStyle()
	}
	switch c {
	case sweep.Unavailable:
		return unavailableStyle
	case sweep.PartiallyAvailable:
		return partialStyle
	default:
		return availableStyle
	}
}

// printBadges writes one line per badge: a padded, colored tag and the path
// when styled, tab-separated tag and path otherwise.
func printBadges(w io.Writer, badges []app.Badge, styled bool) {
	for _, b := range badges {
		if !styled {
			fmt.Fprintf(w, "%s\t%s\n", b.Tag, b.Path)
			continue
		}
		tag := styleFor(b.Tag).Width(badgeWidth).Render(b.Tag)
		fmt.Fprintf(w, "%s  %s\n", tag, pathStyle.Render(b.Path))
	}
}

func printScanResult(w io.Writer, r *sweep.ScanResult) {
	if r.Failed() {
		fmt.Fprintf(w, "%s: %s\n", r.Directory, r.Errors[0].Reason)
		return
	}
	fmt.Fprintf(w, "%s: scanned %d, deleted %d, kept %d\n",
		r.Directory, r.ScannedCount, len(r.DeletedPaths), r.Retained)
	for _, p := range r.DeletedPaths {
		fmt.Fprintf(w, "  deleted  %s\n", p)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  failed   %s: %s\n", e.Path, e.Reason)
	}
}

func printRelocationResult(w io.Writer, r *sweep.RelocationResult) {
	fmt.Fprintf(w, "Moved %d file(s) to %s\n", len(r.MovedPaths), r.Destination.Path)
	for _, e := range r.Errors {
		fmt.Fprintf(w, "  failed   %s: %s\n", e.Path, e.Reason)
	}
}

func printOperations(w io.Writer, ops []*sweep.Operation) {
	for _, op := range ops {
		duration := ""
		if op.FinishedAt.Valid {
			d := op.FinishedAt.Time.Sub(op.StartedAt)
			duration = d.Truncate(time.Millisecond).String()
		}
		fmt.Fprintf(w, "#%d  %-8s  %s  %-8s  scanned:%d deleted:%d moved:%d failed:%d  %s  %s\n",
			op.ID,
			op.Operation,
			op.StartedAt.Local().Format("2006-01-02 15:04:05"),
			op.Status,
			op.Scanned, op.Deleted, op.Moved, op.Failed,
			duration,
			op.Target,
		)
	}
}

func printEvents(w io.Writer, events []*sweep.Event) {
	for _, e := range events {
		line := fmt.Sprintf("%-6s  %-5s  %s", e.Action, e.Outcome, e.Path)
		if e.Reason != "" {
			line += ": " + e.Reason
		}
		fmt.Fprintln(w, line)
	}
}

func printConfig(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Host ID:  %s\n", cfg.HostID)
	fmt.Fprintf(w, "Base Dir: %s\n", cfg.BaseDir)
	fmt.Fprintf(w, "Log Dir:  %s\n", cfg.LogDir)
	fmt.Fprintf(w, "Watch:    %s\n", strings.Join(cfg.Watch.Directories, ", "))
	fmt.Fprintf(w, "Notifier: %s\n", cfg.Notifier.Type)
	fmt.Fprintf(w, "Journal:  %s\n", cfg.Journal.Type)
	if len(cfg.Destinations) > 0 {
		fmt.Fprintln(w, "Destinations:")
		for _, d := range cfg.Destinations {
			fmt.Fprintf(w, "  %-14s %s\n", d.Command, d.Path)
		}
	}
}
