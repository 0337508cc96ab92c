package models

import "time"

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskDone      TaskStatus = "done"
	TaskCancelled TaskStatus = "cancelled"
)

// Task is an actionable to-do item created as a side effect of a transition
// and consumed by the external dashboards.
type Task struct {
	ID          string       `bson:"id" json:"id"`
	WorkflowID  string       `bson:"workflow_id" json:"workflow_id"`
	AssignedTo  string       `bson:"assigned_to" json:"assigned_to"`
	Role        string       `bson:"role" json:"role"` // "customer" or "vendor"
	Title       string       `bson:"title" json:"title"`
	Description string       `bson:"description,omitempty" json:"description,omitempty"`
	DueDate     time.Time    `bson:"due_date" json:"due_date"`
	Priority    TaskPriority `bson:"priority" json:"priority"`
	Status      TaskStatus   `bson:"status" json:"status"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}
