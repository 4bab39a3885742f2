// Package primary defines the primary ports (driving interfaces) for the
// application along with their request/response types.
package primary

import (
	"context"
	"time"
)

// AutomationService defines the primary port for the task duplication
// automation.
type AutomationService interface {
	// RunCompleted executes one reconciliation pass over the remote
	// completed-task list. A fetch failure aborts the pass before any
	// mutation; individual create failures are isolated per task.
	RunCompleted(ctx context.Context, req RunRequest) (*RunStats, error)

	// RunPendingDiff executes one reconciliation pass by diffing the
	// stored pending-task snapshot against the current pending set and
	// duplicating tasks that disappeared because they were completed.
	RunPendingDiff(ctx context.Context, req RunRequest) (*RunStats, error)

	// RecentRuns retrieves recorded run history, newest first.
	RecentRuns(ctx context.Context, limit int) ([]*RunSummary, error)
}

// Run modes.
const (
	ModeCompleted   = "completed"
	ModePendingDiff = "pending"
)

// RunRequest contains parameters for one reconciliation pass.
type RunRequest struct {
	// ProjectID restricts the pass to one project. Empty means all.
	ProjectID string
	// NameFilter requires a case-insensitive title substring match.
	NameFilter string
	// TagFilters requires intersection with the task's tags.
	TagFilters []string
	// Window restricts completed-mode to tasks completed within the
	// trailing duration. Zero means no window.
	Window time.Duration
}

// RunStats contains the counters produced by one pass.
type RunStats struct {
	Checked    int
	Matched    int
	Duplicated int
	Errors     int
}

// RunSummary describes one recorded pass.
type RunSummary struct {
	ID         string
	Mode       string
	StartedAt  string
	FinishedAt string
	Stats      RunStats
	ErrorText  string
}
