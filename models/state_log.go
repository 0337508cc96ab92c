package models

import "time"

// WorkflowStateLog is an append-only audit fact: exactly one row is written
// per successful transition, never updated or deleted.
type WorkflowStateLog struct {
	ID             string        `bson:"id" json:"id"`
	WorkflowID     string        `bson:"workflow_id" json:"workflow_id"`
	FromState      WorkflowState `bson:"from_state" json:"from_state"`
	ToState        WorkflowState `bson:"to_state" json:"to_state"`
	TransitionedAt time.Time     `bson:"transitioned_at" json:"transitioned_at"`
}
