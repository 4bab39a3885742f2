package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/db"
	"github.com/example/tickdup/internal/wire"
)

// checkResult represents the outcome of a single check
type checkResult struct {
	name    string
	status  string // "✓", "⚠", "✗"
	details string // only shown if status != "✓"
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Validate credentials, state, and database",
	Long: `Health check for the tickdup environment.

Validates:
- Credentials (access token present, API reachable)
- State directory and state files
- Run-history database

Examples:
  tickdup doctor           # run full health check
  tickdup doctor --quiet   # exit code only (0=healthy, 1=issues)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")

		results := []checkResult{
			checkCredentials(),
			checkStateDir(),
			checkDatabase(),
		}

		hasErrors := false
		for _, r := range results {
			if r.status == "✗" {
				hasErrors = true
			}
		}

		if !quiet {
			fmt.Println()
			fmt.Println("Check         Status")
			fmt.Println("────────────────────")
			for _, r := range results {
				fmt.Printf("%-13s %s\n", r.name, r.status)
			}
			fmt.Println()
			for _, r := range results {
				if r.status != "✓" && r.details != "" {
					fmt.Printf("%s %s: %s\n", r.status, r.name, r.details)
				}
			}
		}

		if hasErrors {
			os.Exit(1)
		}
		return nil
	},
}

func checkCredentials() checkResult {
	cfg := wire.Config()
	if err := cfg.Validate(); err != nil {
		return checkResult{name: "credentials", status: "✗", details: err.Error()}
	}

	if _, err := wire.Gateway().ListProjects(context.Background()); err != nil {
		return checkResult{name: "credentials", status: "✗", details: fmt.Sprintf("API not reachable: %v", err)}
	}
	return checkResult{name: "credentials", status: "✓"}
}

func checkStateDir() checkResult {
	dir := wire.Config().StateDir
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return checkResult{name: "state dir", status: "⚠", details: fmt.Sprintf("%s does not exist yet (created on first run)", dir)}
	}
	if err != nil {
		return checkResult{name: "state dir", status: "✗", details: err.Error()}
	}
	if !info.IsDir() {
		return checkResult{name: "state dir", status: "✗", details: fmt.Sprintf("%s is not a directory", dir)}
	}
	return checkResult{name: "state dir", status: "✓"}
}

func checkDatabase() checkResult {
	path, err := db.DefaultPath()
	if err != nil {
		return checkResult{name: "database", status: "✗", details: err.Error()}
	}
	database, err := db.Open(path)
	if err != nil {
		return checkResult{name: "database", status: "⚠", details: fmt.Sprintf("run history unavailable: %v", err)}
	}
	database.Close()
	return checkResult{name: "database", status: "✓"}
}

func init() {
	doctorCmd.Flags().Bool("quiet", false, "Exit code only, no output")
}

// DoctorCmd returns the doctor command.
func DoctorCmd() *cobra.Command {
	return doctorCmd
}
