package workflow

import (
	"context"
	"errors"
	"strconv"
	"time"

	paymentRepo "vowflow/database/repository/payment"
	"vowflow/models"
	"vowflow/services/notification"
	"vowflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// initiateDepositPayment requests a gateway intent for the deposit and moves
// the workflow to deposit_pending. The intent is created before the
// transaction: if the transition then fails the intent simply goes unused,
// whereas a gateway failure leaves the workflow in contract_signed with a
// retry task.
func (s *DefaultWorkflowService) initiateDepositPayment(ctx context.Context, wf *models.Workflow) (*models.Workflow, error) {
	booking, err := s.bookingFor(ctx, wf)
	if err != nil {
		return nil, err
	}
	return s.requestPayment(ctx, wf, booking, models.PaymentDeposit, booking.DepositAmount, models.StateDepositPending)
}

// initiateBalancePayment requests the balance intent after delivery.
func (s *DefaultWorkflowService) initiateBalancePayment(ctx context.Context, wf *models.Workflow) (*models.Workflow, error) {
	booking, err := s.bookingFor(ctx, wf)
	if err != nil {
		return nil, err
	}
	return s.requestPayment(ctx, wf, booking, models.PaymentBalance, booking.BalanceAmount, models.StateBalancePending)
}

func (s *DefaultWorkflowService) requestPayment(
	ctx context.Context,
	wf *models.Workflow,
	booking *models.Booking,
	ptype models.PaymentType,
	amount float64,
	pendingState models.WorkflowState,
) (*models.Workflow, error) {
	intentID, err := s.Gateway.CreatePaymentIntent(ctx, amount, s.Currency, map[string]string{
		"workflowId": wf.ID,
		"bookingId":  booking.ID,
		"type":       string(ptype),
	})
	if err != nil {
		s.surfacePaymentRetry(wf, ptype, err)
		return nil, NewPaymentGatewayError("failed to create %s payment intent: %v", ptype, err)
	}

	record := models.Payment{
		ID:         uuid.New().String(),
		WorkflowID: wf.ID,
		BookingID:  booking.ID,
		Type:       ptype,
		Amount:     amount,
		Currency:   s.Currency,
		Status:     models.PaymentPending,
		IntentID:   intentID,
	}
	updated, err := s.transition(ctx, wf, func(txCtx context.Context) error {
		_, err := s.Payments.Create(txCtx, record)
		return err
	}, pendingState)
	if err != nil {
		return nil, err
	}

	s.dispatchFollowUps(updated, pendingState, map[string]string{
		"amount":   formatAmount(amount),
		"currency": s.Currency,
	})
	return updated, nil
}

// RetryPayment re-requests a gateway intent after a failed attempt. Legal
// while the workflow sits in contract_signed (deposit intent never created),
// service_delivered (balance intent never created), or either pending-payment
// state.
func (s *DefaultWorkflowService) RetryPayment(ctx context.Context, workflowID, customerID string) (*models.Workflow, error) {
	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if wf.CustomerID != customerID {
		return nil, NewAccessDeniedError("actor %s is not the customer on workflow %s", customerID, workflowID)
	}

	switch wf.State {
	case models.StateContractSigned:
		return s.initiateDepositPayment(ctx, wf)
	case models.StateServiceDelivered:
		return s.initiateBalancePayment(ctx, wf)
	case models.StateDepositPending, models.StateBalancePending:
		return s.reissueIntent(ctx, wf)
	default:
		return nil, NewInvalidTransitionError("no payment to retry while workflow is in state %s", wf.State)
	}
}

// reissueIntent creates a fresh intent for a workflow already in a
// pending-payment state, recording a new pending payment row. The state does
// not change, so no transition or audit row is involved.
func (s *DefaultWorkflowService) reissueIntent(ctx context.Context, wf *models.Workflow) (*models.Workflow, error) {
	booking, err := s.bookingFor(ctx, wf)
	if err != nil {
		return nil, err
	}

	ptype := models.PaymentDeposit
	amount := booking.DepositAmount
	if wf.State == models.StateBalancePending {
		ptype = models.PaymentBalance
		amount = booking.BalanceAmount
	}

	intentID, err := s.Gateway.CreatePaymentIntent(ctx, amount, s.Currency, map[string]string{
		"workflowId": wf.ID,
		"bookingId":  booking.ID,
		"type":       string(ptype),
	})
	if err != nil {
		return nil, NewPaymentGatewayError("failed to create %s payment intent: %v", ptype, err)
	}

	record := models.Payment{
		ID:         uuid.New().String(),
		WorkflowID: wf.ID,
		BookingID:  booking.ID,
		Type:       ptype,
		Amount:     amount,
		Currency:   s.Currency,
		Status:     models.PaymentPending,
		IntentID:   intentID,
	}
	if _, err := s.Payments.Create(ctx, record); err != nil {
		return nil, NewPersistenceError("failed to record payment: %v", err)
	}

	// Earlier pending intents are retired so a charge landing on one is
	// compensated instead of silently swallowed as stale.
	if err := s.Payments.SupersedePending(ctx, booking.ID, ptype, record.ID); err != nil {
		return nil, NewPersistenceError("failed to supersede earlier intents: %v", err)
	}
	return wf, nil
}

// OnPaymentSucceeded handles the gateway's asynchronous success callback.
// It is idempotent: a replayed callback finds the payment already succeeded
// (or the workflow already advanced) and is swallowed as a logged no-op,
// since the gateway cannot act on the error.
func (s *DefaultWorkflowService) OnPaymentSucceeded(ctx context.Context, intentID string) error {
	logger := utils.GetLogger()

	p, err := s.Payments.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return NewNotFoundError("no payment record for intent %s", intentID)
		}
		return NewPersistenceError("failed to load payment: %v", err)
	}
	if p.Status == models.PaymentSucceeded {
		logger.Info("Duplicate payment callback ignored", zap.String("intentID", intentID))
		return nil
	}
	if p.Status == models.PaymentSuperseded {
		return s.refundSupersededCharge(ctx, p)
	}

	wf, err := s.loadWorkflow(ctx, p.WorkflowID)
	if err != nil {
		return err
	}

	var target models.WorkflowState
	var bookingStatus models.BookingStatus
	switch p.Type {
	case models.PaymentDeposit:
		target = models.StateBookingConfirmed
		bookingStatus = models.BookingConfirmed
	case models.PaymentBalance:
		target = models.StateCompleted
		bookingStatus = models.BookingCompleted
	default:
		logger.Warn("Success callback for non-chargeable payment type ignored",
			zap.String("intentID", intentID), zap.String("type", string(p.Type)))
		return nil
	}

	updated, err := s.transition(ctx, wf, func(txCtx context.Context) error {
		if err := s.Payments.UpdateStatus(txCtx, p.ID, models.PaymentSucceeded, ""); err != nil {
			return err
		}
		return s.Bookings.UpdateStatus(txCtx, p.BookingID, bookingStatus)
	}, target)
	if err != nil {
		if IsInvalidTransition(err) {
			logger.Info("Stale payment callback ignored",
				zap.String("intentID", intentID),
				zap.String("workflowID", wf.ID),
				zap.String("state", string(wf.State)))
			return nil
		}
		return err
	}

	s.dispatchFollowUps(updated, target, map[string]string{
		"amount":   formatAmount(p.Amount),
		"currency": p.Currency,
	})
	return nil
}

// OnPaymentFailed marks the payment failed and surfaces a retry task. The
// workflow stays in its pending-payment state; failure never auto-cancels.
func (s *DefaultWorkflowService) OnPaymentFailed(ctx context.Context, intentID, reason string) error {
	logger := utils.GetLogger()

	p, err := s.Payments.GetByIntentID(ctx, intentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrNotFound) {
			return NewNotFoundError("no payment record for intent %s", intentID)
		}
		return NewPersistenceError("failed to load payment: %v", err)
	}
	if p.Status != models.PaymentPending {
		logger.Info("Stale failure callback ignored",
			zap.String("intentID", intentID), zap.String("status", string(p.Status)))
		return nil
	}

	if err := s.Payments.UpdateStatus(ctx, p.ID, models.PaymentFailed, reason); err != nil {
		return NewPersistenceError("failed to mark payment failed: %v", err)
	}

	wf, err := s.loadWorkflow(ctx, p.WorkflowID)
	if err != nil {
		return err
	}
	s.surfacePaymentRetry(wf, p.Type, errors.New(reason))
	return nil
}

// refundSupersededCharge compensates a charge captured on an intent that a
// reissue has since replaced. The workflow state never moves; only the stray
// money goes back.
func (s *DefaultWorkflowService) refundSupersededCharge(ctx context.Context, p *models.Payment) error {
	logger := utils.GetLogger()

	rows, err := s.Payments.ListByWorkflow(ctx, p.WorkflowID)
	if err != nil {
		return NewPersistenceError("failed to list payments: %v", err)
	}
	for _, r := range rows {
		// An existing refund row means the charge was already compensated,
		// or flagged for manual reconciliation.
		if r.Type == models.PaymentRefund && r.IntentID == p.IntentID {
			logger.Info("Charge on superseded intent already compensated",
				zap.String("intentID", p.IntentID), zap.String("status", string(r.Status)))
			return nil
		}
	}

	record := models.Payment{
		ID:         uuid.New().String(),
		WorkflowID: p.WorkflowID,
		BookingID:  p.BookingID,
		Type:       models.PaymentRefund,
		Amount:     -p.Amount,
		Currency:   p.Currency,
		IntentID:   p.IntentID,
	}
	refundID, refundErr := s.Gateway.CreateRefund(ctx, p.IntentID, p.Amount)
	if refundErr != nil {
		record.Status = models.PaymentFailed
		record.FailureReason = refundErr.Error()
		logger.Error("refund of superseded charge failed, flagging for manual reconciliation",
			zap.String("workflowID", p.WorkflowID),
			zap.String("intentID", p.IntentID),
			zap.Float64("amount", p.Amount),
			zap.Error(refundErr))
	} else {
		record.Status = models.PaymentSucceeded
		record.RefundID = refundID
	}
	if _, err := s.Payments.Create(ctx, record); err != nil {
		return NewPersistenceError("failed to record refund: %v", err)
	}

	wf, err := s.loadWorkflow(ctx, p.WorkflowID)
	if err != nil {
		return err
	}
	if refundErr != nil {
		s.createReconciliationTask(wf)
		return nil
	}

	if _, err := s.Notifier.Send(ctx, notification.ChannelPush, wf.CustomerID, notification.TemplatePaymentRefunded, map[string]string{
		"workflowId":  wf.ID,
		"paymentType": string(p.Type),
		"amount":      formatAmount(p.Amount),
		"currency":    p.Currency,
	}); err != nil {
		logger.Warn("failed to dispatch refund notification",
			zap.String("workflowID", wf.ID), zap.Error(err))
	}
	logger.Info("Refunded charge on superseded intent",
		zap.String("workflowID", wf.ID),
		zap.String("intentID", p.IntentID),
		zap.Float64("amount", p.Amount))
	return nil
}

// surfacePaymentRetry creates the actionable retry task and tells the
// customer their payment needs another attempt. Best-effort.
func (s *DefaultWorkflowService) surfacePaymentRetry(wf *models.Workflow, ptype models.PaymentType, cause error) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task := models.Task{
		WorkflowID:  wf.ID,
		AssignedTo:  wf.CustomerID,
		Role:        roleCustomer,
		Title:       "Retry payment",
		Description: "Your " + string(ptype) + " payment did not go through. Please retry.",
		DueDate:     time.Now().Add(48 * time.Hour),
		Priority:    models.TaskPriorityHigh,
		Status:      models.TaskOpen,
	}
	if _, err := s.Tasks.Create(ctx, task); err != nil {
		logger.Error("failed to create payment retry task",
			zap.String("workflowID", wf.ID), zap.Error(err))
	}

	if _, err := s.Notifier.Send(ctx, notification.ChannelPush, wf.CustomerID, notification.TemplatePaymentFailed, map[string]string{
		"workflowId":  wf.ID,
		"paymentType": string(ptype),
		"reason":      cause.Error(),
	}); err != nil {
		logger.Warn("failed to dispatch payment failure notification",
			zap.String("workflowID", wf.ID), zap.Error(err))
	}
}

func (s *DefaultWorkflowService) bookingFor(ctx context.Context, wf *models.Workflow) (*models.Booking, error) {
	if wf.BookingID == "" {
		return nil, NewInvalidTransitionError("workflow %s has no booking yet", wf.ID)
	}
	booking, err := s.Bookings.GetByID(ctx, wf.BookingID)
	if err != nil {
		return nil, NewPersistenceError("failed to load booking: %v", err)
	}
	return booking, nil
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
