package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/config"
	"github.com/example/tickdup/internal/ports/primary"
	"github.com/example/tickdup/internal/wire"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation pass and exit",
	Long: `Run a single pass of the task duplication automation.

Completed mode (default) fetches the completed-task list, duplicates
matching tasks without their due dates, and records the handled IDs so
they are never duplicated twice. Pending mode instead diffs the tracked
pending-task snapshot against the current pending set.

Examples:
  tickdup run                          # one pass, completed mode
  tickdup run --name "Zap:"            # restrict by title substring
  tickdup run --window 24h             # only tasks completed recently
  tickdup run --mode pending           # pending-diff mode`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		wire.SetVerbose(verbose)
		wire.SetNoNotify(true)

		req, mode, err := requestFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := wire.Config().Validate(); err != nil {
			return err
		}

		unlock, err := acquireRunLock(wire.Config().StateDir)
		if err != nil {
			return err
		}
		defer unlock()

		ctx := context.Background()
		var stats *primary.RunStats
		if mode == primary.ModePendingDiff {
			stats, err = wire.AutomationService().RunPendingDiff(ctx, req)
		} else {
			stats, err = wire.AutomationService().RunCompleted(ctx, req)
		}
		if err != nil {
			return fmt.Errorf("pass failed: %w", err)
		}

		printStats(stats)
		return nil
	},
}

func printStats(stats *primary.RunStats) {
	fmt.Printf("✓ Pass complete\n")
	fmt.Printf("  Checked:    %d\n", stats.Checked)
	fmt.Printf("  Matched:    %d\n", stats.Matched)
	fmt.Printf("  Duplicated: %s\n", color.New(color.FgGreen).Sprintf("%d", stats.Duplicated))
	if stats.Errors > 0 {
		fmt.Printf("  Errors:     %s\n", color.New(color.FgRed).Sprintf("%d", stats.Errors))
	} else {
		fmt.Printf("  Errors:     0\n")
	}
}

// requestFromFlags merges configuration with flag overrides.
func requestFromFlags(cmd *cobra.Command) (primary.RunRequest, string, error) {
	cfg := wire.Config()

	req := primary.RunRequest{
		NameFilter: cfg.NameFilter,
		TagFilters: cfg.TagFilters,
	}

	if name, _ := cmd.Flags().GetString("name"); name != "" {
		req.NameFilter = name
	}
	if tags, _ := cmd.Flags().GetString("tags"); tags != "" {
		req.TagFilters = config.ParseTagFilters(tags)
	}
	if project, _ := cmd.Flags().GetString("project"); project != "" {
		req.ProjectID = project
	}

	window, _ := cmd.Flags().GetString("window")
	if window != "" {
		d, err := time.ParseDuration(window)
		if err != nil || d <= 0 {
			return req, "", fmt.Errorf("invalid --window %q (want a duration like 24h)", window)
		}
		req.Window = d
	}

	mode, _ := cmd.Flags().GetString("mode")
	switch mode {
	case "", primary.ModeCompleted:
		mode = primary.ModeCompleted
	case primary.ModePendingDiff:
	default:
		return req, "", fmt.Errorf("invalid --mode %q (want completed or pending)", mode)
	}

	return req, mode, nil
}

func addPassFlags(cmd *cobra.Command) {
	cmd.Flags().String("mode", "completed", "Reconciliation mode: completed or pending")
	cmd.Flags().String("name", "", "Title substring filter (overrides config)")
	cmd.Flags().String("tags", "", "Comma-separated tag filters (overrides config)")
	cmd.Flags().String("project", "", "Restrict to one project ID")
	cmd.Flags().String("window", "", "Only consider tasks completed within this trailing duration (e.g. 24h)")
	cmd.Flags().BoolP("verbose", "v", false, "Verbose logging")
}

func init() {
	addPassFlags(runCmd)
}

// RunCmd returns the run command.
func RunCmd() *cobra.Command {
	return runCmd
}
