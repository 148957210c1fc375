// internal/domain/models/task.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task lifecycle statuses. Every task is in exactly one of these at any time.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusOnHold     = "On Hold"
)

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// AllStatuses returns the canonical status labels in display order.
func AllStatuses() []string {
	return []string{StatusPending, StatusInProgress, StatusCompleted, StatusOnHold}
}

// AllPriorities returns the canonical priority labels in display order.
func AllPriorities() []string {
	return []string{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValidStatus reports whether s is one of the canonical task statuses.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// IsValidPriority reports whether p is one of the canonical priorities.
func IsValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task is a unit of work assigned to at most one team member.
//
// AssignedTo is a weak reference: the user it points at may be deleted,
// in which case reports render the task as unassigned. DueDate is
// optional; a task without one is never overdue.
type Task struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Description string              `bson:"description,omitempty" json:"description,omitempty"`
	Status      string              `bson:"status" json:"status"`
	Priority    string              `bson:"priority" json:"priority"`
	Category    string              `bson:"category,omitempty" json:"category,omitempty"`
	DueDate     *time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`
	AssignedTo  *primitive.ObjectID `bson:"assigned_to,omitempty" json:"assigned_to,omitempty"`
	CreatedBy   primitive.ObjectID  `bson:"created_by" json:"created_by"`
	Progress    int                 `bson:"progress" json:"progress"` // 0-100

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsOverdue reports whether the task's due date is strictly in the past
// and the task is not completed. Tasks without a due date are never overdue.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}
