package secondary

import "context"

// RunRecorder defines the secondary port for run-history persistence.
// Recording is best-effort bookkeeping: failures never affect a pass.
type RunRecorder interface {
	// Record persists the outcome of one reconciliation pass.
	Record(ctx context.Context, run *RunRecord) error

	// ListRecent retrieves the most recent runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]*RunRecord, error)
}

// RunRecord represents one reconciliation pass as stored in persistence.
type RunRecord struct {
	ID         string
	Mode       string // "completed" or "pending"
	StartedAt  string
	FinishedAt string
	Checked    int
	Matched    int
	Duplicated int
	Errors     int
	ErrorText  string
}
