package secondary

import (
	"context"

	"github.com/example/tickdup/internal/models"
)

// ProcessedStore defines the secondary port for the durable set of task
// identifiers already handled. The set is monotonic and append-only: once
// an ID is recorded it is never evicted.
type ProcessedStore interface {
	// LoadProcessed returns the recorded task IDs. A missing or
	// unreadable state file yields an empty set, not an error; the
	// adapter logs a warning for corrupt files.
	LoadProcessed(ctx context.Context) (map[string]bool, error)

	// SaveProcessed overwrites the recorded set in a single atomic
	// whole-file write.
	SaveProcessed(ctx context.Context, ids map[string]bool) error
}

// SnapshotStore defines the secondary port for the pending-task snapshot
// map used by pending-diff reconciliation.
type SnapshotStore interface {
	// LoadSnapshot returns the last persisted map of task ID to task.
	// Missing or corrupt state yields an empty map.
	LoadSnapshot(ctx context.Context) (map[string]models.Task, error)

	// SaveSnapshot overwrites the snapshot in a single atomic
	// whole-file write.
	SaveSnapshot(ctx context.Context, tasks map[string]models.Task) error
}
