package workflow

import (
	"context"
	"testing"

	"vowflow/models"
	"vowflow/services/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignContractRequestsDeposit(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)

	assert.Equal(t, models.StateDepositPending, wf.State)

	intent := f.gateway.lastIntent()
	assert.Equal(t, 600.0, intent.amount)
	assert.Equal(t, "usd", intent.currency)
	assert.Equal(t, wf.ID, intent.metadata["workflowId"])
	assert.Equal(t, string(models.PaymentDeposit), intent.metadata["type"])

	deposits := f.payments.ofType(wf.ID, models.PaymentDeposit)
	require.Len(t, deposits, 1)
	assert.Equal(t, models.PaymentPending, deposits[0].Status)
	assert.Equal(t, intent.id, deposits[0].IntentID)
}

func TestGatewayOutageLeavesContractSigned(t *testing.T) {
	f := newFixture()
	wf := f.toContractGenerated(t)

	f.gateway.intentErr = errGatewayDown
	_, err := f.svc.SignContract(context.Background(), wf.ID, testCustomer)
	assert.Equal(t, CodePaymentGateway, ErrCode(err))

	// The signature committed; only the deposit request failed.
	got, getErr := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, getErr)
	assert.Equal(t, models.StateContractSigned, got.State)
	assert.Empty(t, f.payments.ofType(wf.ID, models.PaymentDeposit))
	require.Len(t, f.tasks.titled("Retry payment"), 1)

	// Once the gateway recovers, retry resumes from where it stopped.
	f.gateway.intentErr = nil
	retried, err := f.svc.RetryPayment(context.Background(), wf.ID, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.StateDepositPending, retried.State)
}

func TestOnPaymentSucceededConfirmsBooking(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)

	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), f.gateway.lastIntent().id))

	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateBookingConfirmed, got.State)

	booking, err := f.bookings.GetByID(context.Background(), wf.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, booking.Status)

	deposits := f.payments.ofType(wf.ID, models.PaymentDeposit)
	require.Len(t, deposits, 1)
	assert.Equal(t, models.PaymentSucceeded, deposits[0].Status)

	require.Len(t, f.notifier.templated(notification.TemplateBookingConfirmed), 1)
}

func TestOnPaymentSucceededReplayIsNoOp(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	intentID := f.gateway.lastIntent().id

	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), intentID))
	logsBefore := len(f.workflows.logsFor(wf.ID))
	sendsBefore := len(f.notifier.templated(notification.TemplateBookingConfirmed))

	// The gateway redelivers the same event.
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), intentID))

	assert.Len(t, f.workflows.logsFor(wf.ID), logsBefore)
	assert.Len(t, f.notifier.templated(notification.TemplateBookingConfirmed), sendsBefore)
}

func TestOnPaymentSucceededUnknownIntent(t *testing.T) {
	f := newFixture()
	err := f.svc.OnPaymentSucceeded(context.Background(), "pi_unknown")
	assert.Equal(t, CodeNotFound, ErrCode(err))
}

func TestOnPaymentFailedKeepsWorkflowPending(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	intentID := f.gateway.lastIntent().id

	require.NoError(t, f.svc.OnPaymentFailed(context.Background(), intentID, "card_declined"))

	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateDepositPending, got.State)

	deposits := f.payments.ofType(wf.ID, models.PaymentDeposit)
	require.Len(t, deposits, 1)
	assert.Equal(t, models.PaymentFailed, deposits[0].Status)
	assert.Equal(t, "card_declined", deposits[0].FailureReason)

	require.Len(t, f.tasks.titled("Retry payment"), 1)
	require.Len(t, f.notifier.templated(notification.TemplatePaymentFailed), 1)
}

func TestOnPaymentFailedAfterSuccessIgnored(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	intentID := f.gateway.lastIntent().id

	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), intentID))
	require.NoError(t, f.svc.OnPaymentFailed(context.Background(), intentID, "late failure"))

	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateBookingConfirmed, got.State)

	deposits := f.payments.ofType(wf.ID, models.PaymentDeposit)
	require.Len(t, deposits, 1)
	assert.Equal(t, models.PaymentSucceeded, deposits[0].Status)
}

func TestRetryPaymentReissuesIntentWhilePending(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	firstIntent := f.gateway.lastIntent().id

	require.NoError(t, f.svc.OnPaymentFailed(context.Background(), firstIntent, "card_declined"))

	retried, err := f.svc.RetryPayment(context.Background(), wf.ID, testCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.StateDepositPending, retried.State)

	deposits := f.payments.ofType(wf.ID, models.PaymentDeposit)
	require.Len(t, deposits, 2)
	assert.NotEqual(t, firstIntent, f.gateway.lastIntent().id)

	// The fresh intent completes the confirmation.
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), f.gateway.lastIntent().id))
	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateBookingConfirmed, got.State)
}

func TestRetryPaymentSupersedesEarlierPendingIntent(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	firstIntent := f.gateway.lastIntent().id

	// The customer retries before the first intent ever resolves.
	_, err := f.svc.RetryPayment(context.Background(), wf.ID, testCustomer)
	require.NoError(t, err)

	deposits := f.payments.ofType(wf.ID, models.PaymentDeposit)
	require.Len(t, deposits, 2)
	for _, d := range deposits {
		if d.IntentID == firstIntent {
			assert.Equal(t, models.PaymentSuperseded, d.Status)
		} else {
			assert.Equal(t, models.PaymentPending, d.Status)
		}
	}
}

func TestChargeOnSupersededIntentRefunded(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	firstIntent := f.gateway.lastIntent().id

	_, err := f.svc.RetryPayment(context.Background(), wf.ID, testCustomer)
	require.NoError(t, err)
	secondIntent := f.gateway.lastIntent().id

	// The customer pays both; the replaced intent's charge comes back.
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), secondIntent))
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), firstIntent))

	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateBookingConfirmed, got.State)

	require.Len(t, f.gateway.refunds, 1)
	assert.Equal(t, firstIntent, f.gateway.refunds[0].intentID)
	assert.Equal(t, 600.0, f.gateway.refunds[0].amount)

	refunds := f.payments.ofType(wf.ID, models.PaymentRefund)
	require.Len(t, refunds, 1)
	assert.Equal(t, -600.0, refunds[0].Amount)
	assert.Equal(t, models.PaymentSucceeded, refunds[0].Status)
	require.Len(t, f.notifier.templated(notification.TemplatePaymentRefunded), 1)

	// A redelivered callback for the refunded charge does not refund twice.
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), firstIntent))
	assert.Len(t, f.gateway.refunds, 1)
	assert.Len(t, f.payments.ofType(wf.ID, models.PaymentRefund), 1)
}

func TestSupersededRefundFailureCreatesReconciliationTask(t *testing.T) {
	f := newFixture()
	wf := f.toDepositPending(t)
	firstIntent := f.gateway.lastIntent().id

	_, err := f.svc.RetryPayment(context.Background(), wf.ID, testCustomer)
	require.NoError(t, err)

	f.gateway.refundErr = errGatewayDown
	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), firstIntent))

	refunds := f.payments.ofType(wf.ID, models.PaymentRefund)
	require.Len(t, refunds, 1)
	assert.Equal(t, models.PaymentFailed, refunds[0].Status)
	require.Len(t, f.tasks.titled("Reconcile failed refund"), 1)

	// The stray charge never advances the workflow.
	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateDepositPending, got.State)
}

func TestRetryPaymentWithNothingToRetry(t *testing.T) {
	f := newFixture()
	wf := f.toBookingConfirmed(t)

	_, err := f.svc.RetryPayment(context.Background(), wf.ID, testCustomer)
	assert.Equal(t, CodeInvalidTransition, ErrCode(err))
}

func TestBalanceFlowCompletesWorkflow(t *testing.T) {
	f := newFixture()
	wf := f.toBalancePending(t)

	intent := f.gateway.lastIntent()
	assert.Equal(t, 1400.0, intent.amount)
	assert.Equal(t, string(models.PaymentBalance), intent.metadata["type"])

	require.NoError(t, f.svc.OnPaymentSucceeded(context.Background(), intent.id))

	got, err := f.svc.Get(context.Background(), wf.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCompleted, got.State)

	booking, err := f.bookings.GetByID(context.Background(), wf.BookingID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, booking.Status)

	require.Len(t, f.notifier.templated(notification.TemplateWorkflowCompleted), 1)
}
