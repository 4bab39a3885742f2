// Package duplicate contains the pure transform mapping a completed task
// onto a creation payload for its duplicate.
package duplicate

import "github.com/example/tickdup/internal/models"

// Draft builds the creation payload for a duplicate of the given task.
// Title, project, content, description, priority, and tags are copied
// verbatim; checklist items are copied only when non-empty. Due date,
// start date, and completed time are never carried over, so the duplicate
// lands in the backlog without a deadline. The transform is one-way:
// dropping the schedule fields is the point.
func Draft(task *models.Task) models.TaskDraft {
	draft := models.TaskDraft{
		Title:     task.Title,
		ProjectID: task.ProjectID,
		Content:   task.Content,
		Desc:      task.Desc,
		Priority:  task.Priority,
		Tags:      task.Tags,
	}

	if len(task.Items) > 0 {
		draft.Items = task.Items
	}

	return draft
}
