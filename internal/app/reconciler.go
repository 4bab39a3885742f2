// Package app contains the application services implementing the primary
// ports.
package app

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/tickdup/internal/core/duplicate"
	"github.com/example/tickdup/internal/core/filter"
	"github.com/example/tickdup/internal/models"
	"github.com/example/tickdup/internal/ports/primary"
	"github.com/example/tickdup/internal/ports/secondary"
)

// ReconcilerService implements the AutomationService interface. It runs
// one reconciliation pass at a time; the mutex rejects overlap if a caller
// ever drives passes concurrently.
type ReconcilerService struct {
	gateway   secondary.TaskGateway
	processed secondary.ProcessedStore
	snapshots secondary.SnapshotStore
	recorder  secondary.RunRecorder
	logger    *log.Logger
	now       func() time.Time

	mu sync.Mutex
}

var _ primary.AutomationService = (*ReconcilerService)(nil)

// NewReconcilerService creates a new ReconcilerService with injected
// dependencies. The recorder may be nil when run history is disabled; a
// nil logger discards output.
func NewReconcilerService(
	gateway secondary.TaskGateway,
	processed secondary.ProcessedStore,
	snapshots secondary.SnapshotStore,
	recorder secondary.RunRecorder,
	logger *log.Logger,
) *ReconcilerService {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &ReconcilerService{
		gateway:   gateway,
		processed: processed,
		snapshots: snapshots,
		recorder:  recorder,
		logger:    logger,
		now:       time.Now,
	}
}

// RunCompleted executes one pass over the remote completed-task list.
//
// A failure fetching the task universe aborts the pass before any state
// mutation: the error counter is incremented and nothing is persisted, so
// the next scheduled pass retries from unchanged state. A failure creating
// an individual duplicate is isolated to that task; its ID stays out of
// the processed set and is retried on the next pass.
func (s *ReconcilerService) RunCompleted(ctx context.Context, req primary.RunRequest) (*primary.RunStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startedAt := s.now()
	stats := &primary.RunStats{}
	criteria := filter.Criteria{Name: req.NameFilter, Tags: req.TagFilters}

	processed, err := s.processed.LoadProcessed(ctx)
	if err != nil {
		// Fail open: re-processing is preferable to never running.
		s.logger.Printf("warning: failed to load processed state: %v", err)
		processed = make(map[string]bool)
	}

	var since time.Time
	if req.Window > 0 {
		since = startedAt.Add(-req.Window)
		s.logger.Printf("fetching tasks completed after %s", since.UTC().Format(time.RFC3339))
	}

	tasks, err := s.gateway.CompletedTasks(ctx, req.ProjectID, since)
	if err != nil {
		s.logger.Printf("failed to fetch completed tasks: %v", err)
		stats.Errors++
		s.record(ctx, primary.ModeCompleted, startedAt, stats, err)
		return stats, err
	}
	s.logger.Printf("found %d completed tasks", len(tasks))

	for i := range tasks {
		task := &tasks[i]
		stats.Checked++

		if task.ID == "" {
			s.logger.Printf("warning: skipping task without ID: %q", task.Title)
			continue
		}
		if processed[task.ID] {
			continue
		}
		if !criteria.Matches(task) {
			// A non-matching task is consumed exactly once and never
			// revisited, even if its title or tags change later.
			processed[task.ID] = true
			continue
		}

		stats.Matched++
		s.logger.Printf("duplicating task %q (ID: %s)", task.Title, task.ID)

		created, err := s.gateway.CreateTask(ctx, duplicate.Draft(task))
		if err != nil {
			s.logger.Printf("failed to duplicate task %s: %v", task.ID, err)
			stats.Errors++
			continue
		}
		s.logger.Printf("duplicated task %q, new task ID: %s", task.Title, created.ID)
		processed[task.ID] = true
		stats.Duplicated++
	}

	// One whole-file commit after the batch. Successes and filter
	// rejections recorded so far are persisted even when some creations
	// failed.
	if err := s.processed.SaveProcessed(ctx, processed); err != nil {
		s.logger.Printf("failed to save processed state: %v", err)
	}

	s.record(ctx, primary.ModeCompleted, startedAt, stats, nil)
	return stats, nil
}

// RunPendingDiff executes one pass by diffing the stored pending snapshot
// against the current pending set. An ID present before but absent now is
// a candidate; its full detail is re-fetched to confirm it was completed
// rather than deleted or moved.
func (s *ReconcilerService) RunPendingDiff(ctx context.Context, req primary.RunRequest) (*primary.RunStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	startedAt := s.now()
	stats := &primary.RunStats{}
	criteria := filter.Criteria{Name: req.NameFilter, Tags: req.TagFilters}

	previous, err := s.snapshots.LoadSnapshot(ctx)
	if err != nil {
		s.logger.Printf("warning: failed to load pending snapshot: %v", err)
		previous = make(map[string]models.Task)
	}
	s.logger.Printf("loaded %d tracked pending tasks", len(previous))

	pending, err := s.fetchPending(ctx, req.ProjectID)
	if err != nil {
		s.logger.Printf("failed to fetch pending tasks: %v", err)
		stats.Errors++
		s.record(ctx, primary.ModePendingDiff, startedAt, stats, err)
		return stats, err
	}
	s.logger.Printf("found %d pending tasks", len(pending))

	current := make(map[string]models.Task, len(pending))
	for _, task := range pending {
		if task.ID != "" {
			current[task.ID] = task
		}
	}

	for id, snapshot := range previous {
		if _, stillPending := current[id]; stillPending {
			continue
		}
		stats.Checked++

		task, err := s.gateway.Task(ctx, snapshot.ProjectID, id)
		if err != nil {
			s.logger.Printf("failed to fetch task %s: %v", id, err)
			stats.Errors++
			// Keep tracking the task so the next pass retries the diff.
			current[id] = snapshot
			continue
		}

		if !task.Completed() {
			// Deleted or moved, not completed. Stop tracking it.
			s.logger.Printf("task %s disappeared without completion (status %d)", id, task.Status)
			continue
		}
		if !criteria.Matches(task) {
			continue
		}

		stats.Matched++
		s.logger.Printf("duplicating task %q (ID: %s)", task.Title, task.ID)

		created, err := s.gateway.CreateTask(ctx, duplicate.Draft(task))
		if err != nil {
			s.logger.Printf("failed to duplicate task %s: %v", id, err)
			stats.Errors++
			current[id] = snapshot
			continue
		}
		s.logger.Printf("duplicated task %q, new task ID: %s", task.Title, created.ID)
		stats.Duplicated++
	}

	// Track only pending tasks the filter cares about; everything else
	// would only bloat the snapshot.
	next := make(map[string]models.Task, len(current))
	for id, task := range current {
		if criteria.Matches(&task) {
			next[id] = task
		}
	}

	if err := s.snapshots.SaveSnapshot(ctx, next); err != nil {
		s.logger.Printf("failed to save pending snapshot: %v", err)
	}
	s.logger.Printf("tracking %d pending tasks", len(next))

	s.record(ctx, primary.ModePendingDiff, startedAt, stats, nil)
	return stats, nil
}

// RecentRuns retrieves recorded run history, newest first.
func (s *ReconcilerService) RecentRuns(ctx context.Context, limit int) ([]*primary.RunSummary, error) {
	if s.recorder == nil {
		return nil, nil
	}

	records, err := s.recorder.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	summaries := make([]*primary.RunSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, &primary.RunSummary{
			ID:         r.ID,
			Mode:       r.Mode,
			StartedAt:  r.StartedAt,
			FinishedAt: r.FinishedAt,
			Stats: primary.RunStats{
				Checked:    r.Checked,
				Matched:    r.Matched,
				Duplicated: r.Duplicated,
				Errors:     r.Errors,
			},
			ErrorText: r.ErrorText,
		})
	}
	return summaries, nil
}

// fetchPending returns the current pending tasks, across all projects or
// restricted to one.
func (s *ReconcilerService) fetchPending(ctx context.Context, projectID string) ([]models.Task, error) {
	if projectID != "" {
		return s.gateway.ProjectTasks(ctx, projectID)
	}

	projects, err := s.gateway.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task
	for _, project := range projects {
		projectTasks, err := s.gateway.ProjectTasks(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, projectTasks...)
	}
	return tasks, nil
}

// record persists the run outcome, best-effort.
func (s *ReconcilerService) record(ctx context.Context, mode string, startedAt time.Time, stats *primary.RunStats, runErr error) {
	if s.recorder == nil {
		return
	}

	record := &secondary.RunRecord{
		ID:         uuid.NewString(),
		Mode:       mode,
		StartedAt:  startedAt.UTC().Format(time.RFC3339),
		FinishedAt: s.now().UTC().Format(time.RFC3339),
		Checked:    stats.Checked,
		Matched:    stats.Matched,
		Duplicated: stats.Duplicated,
		Errors:     stats.Errors,
	}
	if runErr != nil {
		record.ErrorText = runErr.Error()
	}

	if err := s.recorder.Record(ctx, record); err != nil {
		s.logger.Printf("failed to record run history: %v", err)
	}
}
