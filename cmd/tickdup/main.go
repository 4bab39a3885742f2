package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/cli"
	"github.com/example/tickdup/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "tickdup",
		Short:   "tickdup - duplicate completed TickTick tasks without due dates",
		Version: version.String(),
		Long: `tickdup polls the TickTick Open API for completed tasks matching
configured filters and recreates them without their due dates, so
recurring chores reenter the backlog. Handled task IDs are persisted
locally so no task is ever duplicated twice.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.RunCmd())
	rootCmd.AddCommand(cli.WatchCmd())
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.ProjectsCmd())
	rootCmd.AddCommand(cli.AuthCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
