// Package statefile implements the ProcessedStore and SnapshotStore
// secondary ports with JSON files. Writes are whole-file and atomic
// (temp file + rename); a missing or corrupt file loads as empty state.
package statefile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/example/tickdup/internal/models"
	"github.com/example/tickdup/internal/ports/secondary"
)

// Default state file names inside the state directory.
const (
	ProcessedFileName = "processed_tasks.json"
	SnapshotFileName  = "pending_tasks.json"
)

// processedState is the on-disk format of the processed-ID set.
type processedState struct {
	ProcessedTasks []string `json:"processed_tasks"`
	LastUpdated    string   `json:"last_updated"`
}

// snapshotState is the on-disk format of the pending-task snapshot map.
type snapshotState struct {
	Tasks       map[string]models.Task `json:"tasks"`
	LastUpdated string                 `json:"last_updated"`
}

// Store persists reconciliation state under a directory.
type Store struct {
	dir    string
	logger *log.Logger
	now    func() time.Time
}

var (
	_ secondary.ProcessedStore = (*Store)(nil)
	_ secondary.SnapshotStore  = (*Store)(nil)
)

// NewStore creates a store rooted at dir. The logger receives warnings
// about unreadable state; a nil logger discards them.
func NewStore(dir string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Store{dir: dir, logger: logger, now: time.Now}
}

// LoadProcessed returns the recorded set of handled task IDs. Load
// failures are downgraded to empty state with a warning: a broken state
// file must never stop a run.
func (s *Store) LoadProcessed(ctx context.Context) (map[string]bool, error) {
	ids := make(map[string]bool)

	data, err := os.ReadFile(s.processedPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Printf("warning: failed to read state file %s: %v", s.processedPath(), err)
		}
		return ids, nil
	}

	var state processedState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Printf("warning: corrupt state file %s, starting empty: %v", s.processedPath(), err)
		return ids, nil
	}

	for _, id := range state.ProcessedTasks {
		ids[id] = true
	}
	return ids, nil
}

// SaveProcessed overwrites the processed-ID set atomically.
func (s *Store) SaveProcessed(ctx context.Context, ids map[string]bool) error {
	list := make([]string, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Strings(list)

	state := processedState{
		ProcessedTasks: list,
		LastUpdated:    s.now().UTC().Format(time.RFC3339),
	}
	return s.writeFile(s.processedPath(), state)
}

// LoadSnapshot returns the persisted pending-task map.
func (s *Store) LoadSnapshot(ctx context.Context) (map[string]models.Task, error) {
	tasks := make(map[string]models.Task)

	data, err := os.ReadFile(s.snapshotPath())
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Printf("warning: failed to read state file %s: %v", s.snapshotPath(), err)
		}
		return tasks, nil
	}

	var state snapshotState
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Printf("warning: corrupt state file %s, starting empty: %v", s.snapshotPath(), err)
		return tasks, nil
	}

	if state.Tasks != nil {
		tasks = state.Tasks
	}
	return tasks, nil
}

// SaveSnapshot overwrites the pending-task map atomically.
func (s *Store) SaveSnapshot(ctx context.Context, tasks map[string]models.Task) error {
	state := snapshotState{
		Tasks:       tasks,
		LastUpdated: s.now().UTC().Format(time.RFC3339),
	}
	return s.writeFile(s.snapshotPath(), state)
}

func (s *Store) processedPath() string {
	return filepath.Join(s.dir, ProcessedFileName)
}

func (s *Store) snapshotPath() string {
	return filepath.Join(s.dir, SnapshotFileName)
}

// writeFile serializes state to a temp file in the same directory and
// renames it into place, so readers never observe a partial write.
func (s *Store) writeFile(path string, state any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
