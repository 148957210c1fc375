// internal/app/features/tasks/types.go
package tasks

import "time"

// taskRequest is the create/update payload. Pointers distinguish "absent"
// from "set to zero" on updates; create treats nil as "use the default".
type taskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	Category    *string    `json:"category"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *string    `json:"assignedTo"`
	Progress    *int       `json:"progress"`
}

// TaskSummary is the admin dashboard roll-up: one count per status plus
// the overdue count, which cuts across statuses.
type TaskSummary struct {
	TotalTasks   int64            `json:"totalTasks"`
	ByStatus     map[string]int64 `json:"byStatus"`
	OverdueTasks int64            `json:"overdueTasks"`
}
