package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/example/tickdup/internal/adapters/sqlite"
	"github.com/example/tickdup/internal/db"
	"github.com/example/tickdup/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { testDB.Close() })

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return testDB
}

func TestRunRepository_RecordAndList(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewRunRepository(testDB)
	ctx := context.Background()

	run := &secondary.RunRecord{
		ID:         "run-1",
		Mode:       "completed",
		StartedAt:  "2025-01-15T10:00:00Z",
		FinishedAt: "2025-01-15T10:00:05Z",
		Checked:    5,
		Matched:    2,
		Duplicated: 2,
		Errors:     0,
	}
	if err := repo.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	got := runs[0]
	if got.ID != "run-1" || got.Checked != 5 || got.Duplicated != 2 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.ErrorText != "" {
		t.Errorf("expected empty error text, got %q", got.ErrorText)
	}
}

func TestRunRepository_RecordWithError(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewRunRepository(testDB)
	ctx := context.Background()

	run := &secondary.RunRecord{
		ID:         "run-err",
		Mode:       "pending",
		StartedAt:  "2025-01-15T10:00:00Z",
		FinishedAt: "2025-01-15T10:00:01Z",
		Errors:     1,
		ErrorText:  "ticktick API error: status 502",
	}
	if err := repo.Record(ctx, run); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	runs, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if runs[0].ErrorText != "ticktick API error: status 502" {
		t.Errorf("error text not round-tripped: %q", runs[0].ErrorText)
	}
}

func TestRunRepository_ListRecent_OrderAndLimit(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewRunRepository(testDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := &secondary.RunRecord{
			ID:         fmt.Sprintf("run-%d", i),
			Mode:       "completed",
			StartedAt:  fmt.Sprintf("2025-01-15T10:0%d:00Z", i),
			FinishedAt: fmt.Sprintf("2025-01-15T10:0%d:01Z", i),
		}
		if err := repo.Record(ctx, run); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	runs, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if runs[0].ID != "run-4" {
		t.Errorf("expected newest first, got %s", runs[0].ID)
	}
}

func TestRunRepository_RejectsUnknownMode(t *testing.T) {
	testDB := setupTestDB(t)
	repo := sqlite.NewRunRepository(testDB)

	run := &secondary.RunRecord{
		ID:         "run-bad",
		Mode:       "bogus",
		StartedAt:  "2025-01-15T10:00:00Z",
		FinishedAt: "2025-01-15T10:00:01Z",
	}
	if err := repo.Record(context.Background(), run); err == nil {
		t.Error("expected CHECK constraint failure for unknown mode")
	}
}
