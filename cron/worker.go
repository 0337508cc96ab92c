package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"vowflow/config"
	workflowRepo "vowflow/database/repository/workflow"
	"vowflow/models"
	"vowflow/services/notification"
	"vowflow/services/tasks"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async reminder worker in background. Reminder
// tasks are durable in Redis, so deferred checks survive process restarts.
func InitReminderWorker(workflows workflowRepo.WorkflowRepository, notifier notification.Dispatcher) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeWorkflowReminder, handleReminderTask(workflows, notifier))

	// Start async worker with retry logic.
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// handleReminderTask re-reads the workflow from the store and only fires
// when it still sits in the state it was in when the reminder was
// scheduled. A workflow that has since advanced makes the check a no-op.
func handleReminderTask(workflows workflowRepo.WorkflowRepository, notifier notification.Dispatcher) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		wf, err := workflows.GetByID(ctx, p.WorkflowID)
		if err != nil {
			// The reminder outlived its subject; drop it.
			log.Printf("[ReminderHandler] workflow %s not loadable, dropping reminder: %v", p.WorkflowID, err)
			return nil
		}
		if wf.State != p.State {
			log.Printf("[ReminderHandler] workflow %s advanced from %s to %s, reminder is a no-op",
				p.WorkflowID, p.State, wf.State)
			return nil
		}

		data := map[string]string{
			"reminderId": p.ReminderID,
			"workflowId": p.WorkflowID,
			"fireDate":   p.FireDate,
			"title":      p.Title,
			"body":       p.Body,
		}
		if _, err := notifier.Send(ctx, notification.ChannelPush, p.RecipientID, notification.TemplateWorkflowReminder, data); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder: %v", err)
			return err
		}
		return nil
	}
}
