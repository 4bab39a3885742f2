// Package models contains domain types for TickTick entities as exchanged
// with the Open API. Local state persistence lives in
// internal/adapters/statefile and internal/adapters/sqlite.
package models

import (
	"fmt"
	"time"
)

// Task represents a TickTick task.
type Task struct {
	ID            string          `json:"id"`
	ProjectID     string          `json:"projectId"`
	Title         string          `json:"title"`
	Content       string          `json:"content,omitempty"`
	Desc          string          `json:"desc,omitempty"`
	Priority      int             `json:"priority,omitempty"`
	Status        int             `json:"status"`
	Tags          []string        `json:"tags,omitempty"`
	Items         []ChecklistItem `json:"items,omitempty"`
	DueDate       string          `json:"dueDate,omitempty"`
	StartDate     string          `json:"startDate,omitempty"`
	CompletedTime string          `json:"completedTime,omitempty"`
	IsAllDay      bool            `json:"isAllDay,omitempty"`
	TimeZone      string          `json:"timeZone,omitempty"`
	RepeatFlag    string          `json:"repeatFlag,omitempty"`
	SortOrder     int64           `json:"sortOrder,omitempty"`
}

// ChecklistItem is a subtask entry on a task. Items are copied verbatim
// when a task is duplicated.
type ChecklistItem struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Status        int    `json:"status,omitempty"`
	CompletedTime string `json:"completedTime,omitempty"`
	IsAllDay      bool   `json:"isAllDay,omitempty"`
	SortOrder     int64  `json:"sortOrder,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	TimeZone      string `json:"timeZone,omitempty"`
}

// Task status constants as defined by the TickTick Open API.
const (
	TaskStatusPending   = 0
	TaskStatusCompleted = 2
)

// Completed reports whether the task's status is the completed enum value.
func (t *Task) Completed() bool {
	return t.Status == TaskStatusCompleted
}

// TaskDraft is the payload for creating a new task. It deliberately has no
// due date, start date, or completed time fields: a duplicate built from a
// completed task reenters the backlog without a deadline.
type TaskDraft struct {
	Title     string          `json:"title"`
	ProjectID string          `json:"projectId"`
	Content   string          `json:"content"`
	Desc      string          `json:"desc"`
	Priority  int             `json:"priority"`
	Tags      []string        `json:"tags"`
	Items     []ChecklistItem `json:"items,omitempty"`
}

// timestampLayouts covers the formats TickTick emits for task timestamps.
// The API commonly returns zone offsets without a colon ("+0000").
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339,
}

// ParseTimestamp parses a TickTick task timestamp such as a completedTime
// or dueDate value.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
