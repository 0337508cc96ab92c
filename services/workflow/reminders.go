package workflow

import (
	"context"
	"time"

	"vowflow/models"
	"vowflow/services/tasks"

	"github.com/hibiken/asynq"
)

// AsynqReminderScheduler enqueues reminders on the durable asynq queue so
// they survive process restarts.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func NewAsynqReminderScheduler(client *asynq.Client) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{Client: client}
}

func (s *AsynqReminderScheduler) Schedule(ctx context.Context, payload models.ReminderPayload) error {
	fireAt, err := time.Parse(time.RFC3339, payload.FireDate)
	if err != nil {
		return err
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
