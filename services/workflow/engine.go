package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "vowflow/database/repository/booking"
	workflowRepo "vowflow/database/repository/workflow"
	"vowflow/models"
	"vowflow/services/notification"
	"vowflow/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// Initiate starts a new reservation workflow: the availability guard runs
// first, the workflow is created in `initiated` and immediately advanced to
// `vendor_contacted`, and the vendor is nudged to respond with a quote.
func (s *DefaultWorkflowService) Initiate(ctx context.Context, req models.InitiateWorkflowRequest) (*models.Workflow, error) {
	if err := validateInitiateRequest(req); err != nil {
		return nil, err
	}

	avail, err := s.CheckAvailability(ctx, req.VendorID, req.ServiceDate, req.Start, req.End, "")
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, NewConflictError("vendor %s is not available on %s", req.VendorID, req.ServiceDate)
	}

	wf := models.Workflow{
		ID:              uuid.New().String(),
		CustomerID:      req.CustomerID,
		WeddingID:       req.WeddingID,
		VendorID:        req.VendorID,
		ServiceDate:     req.ServiceDate,
		Start:           req.Start,
		End:             req.End,
		PackageID:       req.PackageID,
		SpecialRequests: req.SpecialRequests,
		State:           models.StateInitiated,
	}
	if _, err := s.Workflows.Create(ctx, wf); err != nil {
		return nil, NewPersistenceError("failed to create workflow: %v", err)
	}

	updated, err := s.transition(ctx, &wf, nil, models.StateVendorContacted)
	if err != nil {
		return nil, err
	}

	s.dispatchFollowUps(updated, models.StateVendorContacted, nil)
	return updated, nil
}

// SignContract records the customer's e-signature and immediately requests
// the deposit payment intent.
func (s *DefaultWorkflowService) SignContract(ctx context.Context, workflowID, customerID string) (*models.Workflow, error) {
	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if wf.CustomerID != customerID {
		return nil, NewAccessDeniedError("actor %s is not the customer on workflow %s", customerID, workflowID)
	}
	if wf.State != models.StateContractGenerated {
		return nil, NewInvalidTransitionError("cannot sign contract while workflow is in state %s", wf.State)
	}

	signedAt := time.Now()
	updated, err := s.transition(ctx, wf, func(txCtx context.Context) error {
		return s.Contracts.MarkSigned(txCtx, wf.ContractID, signedAt)
	}, models.StateContractSigned)
	if err != nil {
		return nil, err
	}

	// The deposit request is a separate transition so a gateway outage
	// leaves the signature committed; RetryPayment picks up from here.
	return s.initiateDepositPayment(ctx, updated)
}

// MarkDelivered is the vendor's confirmation that the service happened; it
// triggers the balance payment request.
func (s *DefaultWorkflowService) MarkDelivered(ctx context.Context, workflowID, vendorID string) (*models.Workflow, error) {
	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if wf.VendorID != vendorID {
		return nil, NewAccessDeniedError("actor %s is not the vendor on workflow %s", vendorID, workflowID)
	}
	if wf.State != models.StateBookingConfirmed {
		return nil, NewInvalidTransitionError("cannot mark delivery while workflow is in state %s", wf.State)
	}

	updated, err := s.transition(ctx, wf, nil, models.StateServiceDelivered)
	if err != nil {
		return nil, err
	}
	s.dispatchFollowUps(updated, models.StateServiceDelivered, nil)

	return s.initiateBalancePayment(ctx, updated)
}

// Reschedule moves the workflow (and its booking, when one exists) to a new
// date or time range. Legal until the service has been delivered.
func (s *DefaultWorkflowService) Reschedule(ctx context.Context, workflowID, actorID, newDate string, start, end int) (*models.Workflow, error) {
	if err := validateSlot(newDate, start, end); err != nil {
		return nil, err
	}
	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if actorID != wf.CustomerID && actorID != wf.VendorID {
		return nil, NewAccessDeniedError("actor %s is not party to workflow %s", actorID, workflowID)
	}
	if !reschedulable(wf.State) {
		return nil, NewInvalidTransitionError("cannot reschedule while workflow is in state %s", wf.State)
	}

	avail, err := s.CheckAvailability(ctx, wf.VendorID, newDate, start, end, wf.BookingID)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return nil, NewConflictError("vendor %s is not available on %s", wf.VendorID, newDate)
	}

	// Workflow and booking move in one transaction; a failure on either
	// side leaves both on the old slot.
	err = s.Workflows.UpdateSchedule(ctx, workflowID, newDate, start, end, func(txCtx context.Context) error {
		if wf.BookingID == "" {
			return nil
		}
		return s.Bookings.UpdateSchedule(txCtx, wf.BookingID, newDate, start, end)
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrSlotTaken):
			return nil, NewConflictError("vendor %s is not available on %s", wf.VendorID, newDate)
		case errors.Is(err, workflowRepo.ErrNotFound):
			return nil, NewNotFoundError("workflow %s not found", workflowID)
		default:
			return nil, NewPersistenceError("failed to reschedule workflow: %v", err)
		}
	}

	s.Registry.Invalidate(ctx, workflowID)
	return s.loadWorkflow(ctx, workflowID)
}

// Get returns the workflow, served from the registry cache when warm. The
// cache is never the source of truth; misses fall through to the store.
func (s *DefaultWorkflowService) Get(ctx context.Context, workflowID string) (*models.Workflow, error) {
	if wf, ok := s.Registry.Get(ctx, workflowID); ok {
		return wf, nil
	}
	wf, err := s.loadWorkflow(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	s.Registry.Put(ctx, wf)
	return wf, nil
}

// Timeline returns the workflow's audit trail, oldest entry first.
func (s *DefaultWorkflowService) Timeline(ctx context.Context, workflowID string) ([]models.WorkflowStateLog, error) {
	if _, err := s.loadWorkflow(ctx, workflowID); err != nil {
		return nil, err
	}
	entries, err := s.StateLogs.ListByWorkflow(ctx, workflowID)
	if err != nil {
		return nil, NewPersistenceError("failed to load timeline: %v", err)
	}
	return entries, nil
}

func (s *DefaultWorkflowService) ListByCustomer(ctx context.Context, customerID string) ([]models.Workflow, error) {
	workflows, err := s.Workflows.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, NewPersistenceError("failed to list workflows: %v", err)
	}
	return workflows, nil
}

func (s *DefaultWorkflowService) ListByVendor(ctx context.Context, vendorID string) ([]models.Workflow, error) {
	workflows, err := s.Workflows.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, NewPersistenceError("failed to list workflows: %v", err)
	}
	return workflows, nil
}

// --- transition plumbing ---

// transition advances wf through one or more graph edges atomically. Every
// hop is validated against the transition graph before the store is touched;
// the store's conditional update on the first hop is the sole arbiter of
// concurrent callers.
func (s *DefaultWorkflowService) transition(
	ctx context.Context,
	wf *models.Workflow,
	within func(ctx context.Context) error,
	states ...models.WorkflowState,
) (*models.Workflow, error) {
	if len(states) == 0 {
		return nil, NewValidationError("transition requires a target state")
	}
	hops := make([]models.StateHop, 0, len(states))
	from := wf.State
	for _, to := range states {
		if !validHop(from, to) {
			return nil, NewInvalidTransitionError("illegal transition %s -> %s", from, to)
		}
		hops = append(hops, models.StateHop{From: from, To: to})
		from = to
	}

	updated, err := s.Workflows.Transition(ctx, wf.ID, hops, within)
	if err != nil {
		return nil, s.mapStoreError(err, wf.ID)
	}

	s.Registry.Invalidate(ctx, wf.ID)
	s.Registry.Put(ctx, updated)
	return updated, nil
}

func (s *DefaultWorkflowService) mapStoreError(err error, workflowID string) error {
	switch {
	case errors.Is(err, workflowRepo.ErrNotFound):
		return NewNotFoundError("workflow %s not found", workflowID)
	case errors.Is(err, workflowRepo.ErrStateMismatch):
		return NewInvalidTransitionError("workflow %s changed state concurrently", workflowID)
	case errors.Is(err, bookingRepo.ErrSlotTaken):
		return NewConflictError("vendor slot was booked concurrently")
	case ErrCode(err) != "":
		return err
	default:
		return NewPersistenceError("transition failed: %v", err)
	}
}

func (s *DefaultWorkflowService) loadWorkflow(ctx context.Context, workflowID string) (*models.Workflow, error) {
	wf, err := s.Workflows.GetByID(ctx, workflowID)
	if err != nil {
		if errors.Is(err, workflowRepo.ErrNotFound) {
			return nil, NewNotFoundError("workflow %s not found", workflowID)
		}
		return nil, NewPersistenceError("failed to load workflow: %v", err)
	}
	return wf, nil
}

// --- post-commit side effects ---

// dispatchFollowUps runs strictly after a committed transition: it creates
// the task the entered state demands, notifies the responsible party and
// schedules the deferred reminder. Failures are logged, never surfaced, and
// never roll back the transition.
func (s *DefaultWorkflowService) dispatchFollowUps(wf *models.Workflow, entered models.WorkflowState, extra map[string]string) {
	logger := utils.GetLogger()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data := map[string]string{
		"workflowId":  wf.ID,
		"serviceDate": wf.ServiceDate,
		"state":       string(entered),
	}
	for k, v := range extra {
		data[k] = v
	}

	if fu, ok := followUps[entered]; ok {
		due := time.Now().Add(fu.due)
		task := models.Task{
			WorkflowID:  wf.ID,
			AssignedTo:  s.recipientFor(wf, fu.role),
			Role:        fu.role,
			Title:       fu.title,
			Description: fu.desc,
			DueDate:     due,
			Priority:    fu.priority,
			Status:      models.TaskOpen,
		}
		if _, err := s.Tasks.Create(ctx, task); err != nil {
			logger.Error("failed to create follow-up task",
				zap.String("workflowID", wf.ID), zap.String("state", string(entered)), zap.Error(err))
		}

		if _, err := s.Notifier.Send(ctx, notification.ChannelPush, task.AssignedTo, fu.template, data); err != nil {
			logger.Warn("failed to dispatch notification",
				zap.String("workflowID", wf.ID), zap.String("template", fu.template), zap.Error(err))
		}

		title, body := notification.Render(fu.template, data)
		payload := models.ReminderPayload{
			ReminderID:  uuid.New().String(),
			WorkflowID:  wf.ID,
			State:       entered,
			Target:      fu.role,
			RecipientID: task.AssignedTo,
			Title:       fmt.Sprintf("Reminder: %s", title),
			Body:        body,
			FireDate:    due.Format(time.RFC3339),
		}
		if err := s.Reminders.Schedule(ctx, payload); err != nil {
			logger.Error("failed to schedule reminder",
				zap.String("workflowID", wf.ID), zap.String("state", string(entered)), zap.Error(err))
		}
	}

	if ann, ok := announcements[entered]; ok {
		if _, err := s.Notifier.Send(ctx, notification.ChannelPush, s.recipientFor(wf, ann.role), ann.template, data); err != nil {
			logger.Warn("failed to dispatch notification",
				zap.String("workflowID", wf.ID), zap.String("template", ann.template), zap.Error(err))
		}
	}
}

func (s *DefaultWorkflowService) recipientFor(wf *models.Workflow, role string) string {
	if role == roleVendor {
		return wf.VendorID
	}
	return wf.CustomerID
}

// --- validation ---

func validateInitiateRequest(req models.InitiateWorkflowRequest) error {
	if req.CustomerID == "" || req.VendorID == "" || req.WeddingID == "" {
		return NewValidationError("customer_id, wedding_id and vendor_id are required")
	}
	return validateSlot(req.ServiceDate, req.Start, req.End)
}

func validateSlot(date string, start, end int) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return NewValidationError("service_date must be formatted as YYYY-MM-DD")
	}
	if start == 0 && end == 0 {
		return nil // full-day reservation
	}
	if start < 0 || end > 24*60 || start >= end {
		return NewValidationError("time range must satisfy 0 <= start < end <= 1440")
	}
	return nil
}
