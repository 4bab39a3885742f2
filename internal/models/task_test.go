package models

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "ticktick offset without colon",
			input: "2025-01-15T09:30:00+0000",
			want:  time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "ticktick offset with millis",
			input: "2025-01-15T09:30:00.000+0000",
			want:  time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339",
			input: "2025-01-15T09:30:00Z",
			want:  time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) failed: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	if _, err := ParseTimestamp("not-a-timestamp"); err == nil {
		t.Error("expected error for malformed timestamp")
	}
}

func TestTaskCompleted(t *testing.T) {
	pending := &Task{Status: TaskStatusPending}
	if pending.Completed() {
		t.Error("pending task reported completed")
	}

	done := &Task{Status: TaskStatusCompleted}
	if !done.Completed() {
		t.Error("completed task not reported completed")
	}
}
