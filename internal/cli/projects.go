package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tickdup/internal/wire"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List remote projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wire.Config().Validate(); err != nil {
			return err
		}

		projects, err := wire.Gateway().ListProjects(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list projects: %w", err)
		}

		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		fmt.Printf("Found %d project(s):\n\n", len(projects))
		for _, p := range projects {
			status := ""
			if p.Closed {
				status = " (closed)"
			}
			fmt.Printf("  %s  %s%s\n", p.ID, p.Name, status)
		}
		return nil
	},
}

// ProjectsCmd returns the projects command.
func ProjectsCmd() *cobra.Command {
	return projectsCmd
}
