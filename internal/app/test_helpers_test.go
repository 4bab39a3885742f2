package app

import (
	"context"
	"time"

	"github.com/example/tickdup/internal/models"
	"github.com/example/tickdup/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockGateway implements secondary.TaskGateway for testing.
type mockGateway struct {
	projects       []models.Project
	projectTasks   map[string][]models.Task
	tasks          map[string]*models.Task // taskID -> detail
	completed      []models.Task
	created        []models.TaskDraft
	listErr        error
	projectDataErr error
	taskErr        error
	completedErr   error
	createErr      error
	createCalls    int
}

var _ secondary.TaskGateway = (*mockGateway)(nil)

func newMockGateway() *mockGateway {
	return &mockGateway{
		projectTasks: make(map[string][]models.Task),
		tasks:        make(map[string]*models.Task),
	}
}

func (m *mockGateway) ListProjects(ctx context.Context) ([]models.Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.projects, nil
}

func (m *mockGateway) ProjectTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	if m.projectDataErr != nil {
		return nil, m.projectDataErr
	}
	return m.projectTasks[projectID], nil
}

func (m *mockGateway) Task(ctx context.Context, projectID, taskID string) (*models.Task, error) {
	if m.taskErr != nil {
		return nil, m.taskErr
	}
	if task, ok := m.tasks[taskID]; ok {
		return task, nil
	}
	return nil, &notFoundError{id: taskID}
}

func (m *mockGateway) CompletedTasks(ctx context.Context, projectID string, since time.Time) ([]models.Task, error) {
	if m.completedErr != nil {
		return nil, m.completedErr
	}
	return m.completed, nil
}

func (m *mockGateway) CreateTask(ctx context.Context, draft models.TaskDraft) (*models.Task, error) {
	m.createCalls++
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, draft)
	return &models.Task{ID: "new-task", Title: draft.Title, ProjectID: draft.ProjectID}, nil
}

type notFoundError struct{ id string }

func (e *notFoundError) Error() string { return "task " + e.id + " not found" }

// mockStateStore implements both state store ports in memory.
type mockStateStore struct {
	processed    map[string]bool
	snapshot     map[string]models.Task
	loadErr      error
	saveErr      error
	saveCalls    int
	snapSaveErr  error
	snapshotSave int
}

var (
	_ secondary.ProcessedStore = (*mockStateStore)(nil)
	_ secondary.SnapshotStore  = (*mockStateStore)(nil)
)

func newMockStateStore() *mockStateStore {
	return &mockStateStore{
		processed: make(map[string]bool),
		snapshot:  make(map[string]models.Task),
	}
}

func (m *mockStateStore) LoadProcessed(ctx context.Context) (map[string]bool, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]bool, len(m.processed))
	for id := range m.processed {
		out[id] = true
	}
	return out, nil
}

func (m *mockStateStore) SaveProcessed(ctx context.Context, ids map[string]bool) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.processed = ids
	return nil
}

func (m *mockStateStore) LoadSnapshot(ctx context.Context) (map[string]models.Task, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make(map[string]models.Task, len(m.snapshot))
	for id, task := range m.snapshot {
		out[id] = task
	}
	return out, nil
}

func (m *mockStateStore) SaveSnapshot(ctx context.Context, tasks map[string]models.Task) error {
	m.snapshotSave++
	if m.snapSaveErr != nil {
		return m.snapSaveErr
	}
	m.snapshot = tasks
	return nil
}

// mockRunRecorder implements secondary.RunRecorder for testing.
type mockRunRecorder struct {
	records   []*secondary.RunRecord
	recordErr error
	listErr   error
}

var _ secondary.RunRecorder = (*mockRunRecorder)(nil)

func (m *mockRunRecorder) Record(ctx context.Context, run *secondary.RunRecord) error {
	if m.recordErr != nil {
		return m.recordErr
	}
	m.records = append(m.records, run)
	return nil
}

func (m *mockRunRecorder) ListRecent(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > 0 && limit < len(m.records) {
		return m.records[:limit], nil
	}
	return m.records, nil
}

// mockNotifier records notifications.
type mockNotifier struct {
	messages []string
}

var _ secondary.Notifier = (*mockNotifier)(nil)

func (m *mockNotifier) Notify(title, message string) {
	m.messages = append(m.messages, message)
}
