package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/wire"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent automation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := wire.AutomationService().RecentRuns(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("failed to load run history: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}

		fmt.Printf("Last %d run(s):\n\n", len(runs))
		fmt.Println("Started               Mode       Checked  Matched  Duplicated  Errors")
		fmt.Println("─────────────────────────────────────────────────────────────────────")
		for _, run := range runs {
			errCol := fmt.Sprintf("%d", run.Stats.Errors)
			if run.Stats.Errors > 0 {
				errCol = color.New(color.FgRed).Sprintf("%d", run.Stats.Errors)
			}
			fmt.Printf("%-21s %-10s %7d  %7d  %10d  %s\n",
				run.StartedAt, run.Mode,
				run.Stats.Checked, run.Stats.Matched, run.Stats.Duplicated, errCol)
			if run.ErrorText != "" {
				fmt.Printf("  %s\n", color.New(color.FgYellow).Sprint(run.ErrorText))
			}
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Int("limit", 20, "Number of runs to show")
}

// StatusCmd returns the status command.
func StatusCmd() *cobra.Command {
	return statusCmd
}
