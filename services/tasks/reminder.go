package tasks

import (
	"encoding/json"
	"time"

	"vowflow/models"

	"github.com/hibiken/asynq"
)

const TypeWorkflowReminder = "workflow:reminder"

// NewReminderTask builds a deferred reminder task. asynq persists it in
// Redis, so the reminder survives process restarts; the worker re-validates
// workflow state before firing.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeWorkflowReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt), asynq.MaxRetry(3)}

	return task, opts, nil
}
