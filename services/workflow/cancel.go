package workflow

import (
	"context"
	"time"

	"vowflow/models"
	"vowflow/services/notification"
	"vowflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cancel terminates a workflow from any non-terminal state. Each captured
// payment gets exactly one compensating refund attempt before the transition
// commits; a refund failure is recorded for reconciliation but never blocks
// the customer-visible cancellation.
func (s *DefaultWorkflowService) Cancel(ctx context.Context, workflowID, actorID, reason string) (*models.Workflow, error) {
	logger := utils.GetLogger()

	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if actorID != wf.CustomerID && actorID != wf.VendorID {
		return nil, NewAccessDeniedError("actor %s is not party to workflow %s", actorID, workflowID)
	}
	if !canCancel(wf.State) {
		return nil, NewInvalidTransitionError("cannot cancel workflow in state %s", wf.State)
	}

	// One refund per captured payment, full amount. The gateway calls run
	// outside the transaction; their outcomes are written inside it. If the
	// transaction then fails, the refund rows roll back while the gateway
	// refund stands, and a retried cancel re-issues it under the same
	// idempotency key, so the gateway treats it as a replay.
	var captured []models.Payment
	if wf.BookingID != "" {
		captured, err = s.Payments.ListCaptured(ctx, wf.BookingID)
		if err != nil {
			return nil, NewPersistenceError("failed to list captured payments: %v", err)
		}
	}

	refundFailed := false
	refunds := make([]models.Payment, 0, len(captured))
	for _, p := range captured {
		record := models.Payment{
			ID:         uuid.New().String(),
			WorkflowID: wf.ID,
			BookingID:  p.BookingID,
			Type:       models.PaymentRefund,
			Amount:     -p.Amount,
			Currency:   p.Currency,
			IntentID:   p.IntentID,
		}
		refundID, err := s.Gateway.CreateRefund(ctx, p.IntentID, p.Amount)
		if err != nil {
			refundFailed = true
			record.Status = models.PaymentFailed
			record.FailureReason = err.Error()
			logger.Error("refund failed, flagging for manual reconciliation",
				zap.String("workflowID", wf.ID),
				zap.String("intentID", p.IntentID),
				zap.Float64("amount", p.Amount),
				zap.Error(err))
		} else {
			record.Status = models.PaymentSucceeded
			record.RefundID = refundID
		}
		refunds = append(refunds, record)
	}

	updated, err := s.transition(ctx, wf, func(txCtx context.Context) error {
		if wf.BookingID != "" {
			if err := s.Bookings.UpdateStatus(txCtx, wf.BookingID, models.BookingCancelled); err != nil {
				return err
			}
		}
		for _, r := range refunds {
			if _, err := s.Payments.Create(txCtx, r); err != nil {
				return err
			}
		}
		return s.Workflows.SetCancelReason(txCtx, wf.ID, reason)
	}, models.StateCancelled)
	if err != nil {
		return nil, err
	}

	s.notifyCancellation(updated, reason)
	if refundFailed {
		s.createReconciliationTask(updated)
	}
	return updated, nil
}

func (s *DefaultWorkflowService) notifyCancellation(wf *models.Workflow, reason string) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data := map[string]string{
		"workflowId":  wf.ID,
		"serviceDate": wf.ServiceDate,
		"reason":      reason,
	}
	for _, recipient := range []string{wf.CustomerID, wf.VendorID} {
		if _, err := s.Notifier.Send(ctx, notification.ChannelPush, recipient, notification.TemplateWorkflowCancelled, data); err != nil {
			logger.Warn("failed to dispatch cancellation notification",
				zap.String("workflowID", wf.ID),
				zap.String("recipient", recipient),
				zap.Error(err))
		}
	}
}

func (s *DefaultWorkflowService) createReconciliationTask(wf *models.Workflow) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task := models.Task{
		WorkflowID:  wf.ID,
		AssignedTo:  wf.VendorID,
		Role:        roleVendor,
		Title:       "Reconcile failed refund",
		Description: "A refund for this cancelled booking failed and needs manual processing.",
		DueDate:     time.Now().Add(24 * time.Hour),
		Priority:    models.TaskPriorityHigh,
		Status:      models.TaskOpen,
	}
	if _, err := s.Tasks.Create(ctx, task); err != nil {
		logger.Error("failed to create refund reconciliation task",
			zap.String("workflowID", wf.ID), zap.Error(err))
	}
}
