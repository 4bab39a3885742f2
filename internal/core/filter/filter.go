// Package filter contains the pure predicate deciding whether a task
// qualifies for duplication. No side effects, no error conditions.
package filter

import (
	"strings"

	"github.com/example/tickdup/internal/models"
)

// Criteria describes the configured task filters. Zero-value criteria
// match every task.
type Criteria struct {
	// Name, when non-empty, requires a case-insensitive substring match
	// against the task title.
	Name string
	// Tags, when non-empty, requires the task to carry at least one of
	// the listed tags.
	Tags []string
}

// Empty reports whether no filters are configured.
func (c Criteria) Empty() bool {
	return c.Name == "" && len(c.Tags) == 0
}

// Matches evaluates the criteria against a task.
// Rules:
// - Name filter absent OR title contains the name (case-insensitive)
// - Tag filter absent OR task tags intersect the required tags
func (c Criteria) Matches(task *models.Task) bool {
	if c.Name != "" {
		title := strings.ToLower(task.Title)
		if !strings.Contains(title, strings.ToLower(c.Name)) {
			return false
		}
	}

	if len(c.Tags) > 0 && !intersects(task.Tags, c.Tags) {
		return false
	}

	return true
}

func intersects(taskTags, required []string) bool {
	for _, want := range required {
		for _, have := range taskTags {
			if have == want {
				return true
			}
		}
	}
	return false
}
