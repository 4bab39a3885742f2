// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application
// drives external systems.
package secondary

import (
	"context"
	"time"

	"github.com/example/tickdup/internal/models"
)

// TaskGateway defines the secondary port for the remote task service.
type TaskGateway interface {
	// ListProjects retrieves all projects.
	ListProjects(ctx context.Context) ([]models.Project, error)

	// ProjectTasks retrieves the project detail payload and returns the
	// tasks embedded in it.
	ProjectTasks(ctx context.Context, projectID string) ([]models.Task, error)

	// Task retrieves a single task by project and task ID.
	Task(ctx context.Context, projectID, taskID string) (*models.Task, error)

	// CompletedTasks retrieves completed tasks, optionally restricted to
	// a project (empty projectID means all projects) and to tasks
	// completed at or after the since timestamp (zero since means no
	// window restriction).
	CompletedTasks(ctx context.Context, projectID string, since time.Time) ([]models.Task, error)

	// CreateTask creates a new task from a draft and returns the created
	// task with its assigned identifier.
	CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error)
}
