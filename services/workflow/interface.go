package workflow

import (
	"context"

	blockedRepo "vowflow/database/repository/blocked"
	bookingRepo "vowflow/database/repository/booking"
	contractRepo "vowflow/database/repository/contract"
	paymentRepo "vowflow/database/repository/payment"
	quoteRepo "vowflow/database/repository/quote"
	statelogRepo "vowflow/database/repository/statelog"
	taskRepo "vowflow/database/repository/task"
	workflowRepo "vowflow/database/repository/workflow"
	"vowflow/models"
	"vowflow/services/notification"
	"vowflow/services/payment"
)

// Service is the reservation workflow engine contract consumed by the HTTP
// layer. Payment callbacks arrive on a separate inbound channel
// (OnPaymentSucceeded / OnPaymentFailed) never exposed to end users.
type Service interface {
	Initiate(ctx context.Context, req models.InitiateWorkflowRequest) (*models.Workflow, error)
	SubmitQuote(ctx context.Context, req models.SubmitQuoteRequest) (*models.Workflow, error)
	AcceptQuote(ctx context.Context, workflowID, quoteID, customerID string, acceptedTerms bool) (*models.Workflow, error)
	SignContract(ctx context.Context, workflowID, customerID string) (*models.Workflow, error)
	MarkDelivered(ctx context.Context, workflowID, vendorID string) (*models.Workflow, error)
	Cancel(ctx context.Context, workflowID, actorID, reason string) (*models.Workflow, error)
	Reschedule(ctx context.Context, workflowID, actorID, newDate string, start, end int) (*models.Workflow, error)
	RetryPayment(ctx context.Context, workflowID, customerID string) (*models.Workflow, error)

	Get(ctx context.Context, workflowID string) (*models.Workflow, error)
	Timeline(ctx context.Context, workflowID string) ([]models.WorkflowStateLog, error)
	ListByCustomer(ctx context.Context, customerID string) ([]models.Workflow, error)
	ListByVendor(ctx context.Context, vendorID string) ([]models.Workflow, error)

	CheckAvailability(ctx context.Context, vendorID, date string, start, end int, excludeBookingID string) (*models.AvailabilityResult, error)
	BlockDate(ctx context.Context, vendorID, date string, start, end int, reason string) (string, error)
	UnblockDate(ctx context.Context, vendorID, blockID string) error
	ListBlockedDates(ctx context.Context, vendorID string) ([]models.BlockedDate, error)

	OnPaymentSucceeded(ctx context.Context, intentID string) error
	OnPaymentFailed(ctx context.Context, intentID, reason string) error
}

// ReminderScheduler enqueues a deferred, state-revalidating reminder.
type ReminderScheduler interface {
	Schedule(ctx context.Context, payload models.ReminderPayload) error
}

// DefaultWorkflowService implements Service.
type DefaultWorkflowService struct {
	Workflows workflowRepo.WorkflowRepository
	StateLogs statelogRepo.StateLogRepository
	Bookings  bookingRepo.BookingRepository
	Quotes    quoteRepo.QuoteRepository
	Contracts contractRepo.ContractRepository
	Tasks     taskRepo.TaskRepository
	Payments  paymentRepo.PaymentRepository
	Blocked   blockedRepo.BlockedDateRepository

	Gateway   payment.Gateway
	Notifier  notification.Dispatcher
	Reminders ReminderScheduler
	Registry  *Registry

	Currency string
}
