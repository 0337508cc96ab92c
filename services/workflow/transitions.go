package workflow

import (
	"time"

	"vowflow/models"
	"vowflow/services/notification"
)

// happyPath is the total order of the non-cancelled lifecycle. cancelled is
// reachable from every state except completed.
var happyPath = []models.WorkflowState{
	models.StateInitiated,
	models.StateVendorContacted,
	models.StateQuoteReceived,
	models.StateQuoteAccepted,
	models.StateContractGenerated,
	models.StateContractSigned,
	models.StateDepositPending,
	models.StateBookingConfirmed,
	models.StateServiceDelivered,
	models.StateBalancePending,
	models.StateCompleted,
}

var stateRank = func() map[models.WorkflowState]int {
	m := make(map[models.WorkflowState]int, len(happyPath))
	for i, s := range happyPath {
		m[s] = i
	}
	return m
}()

// validHop reports whether from -> to is an edge of the transition graph.
func validHop(from, to models.WorkflowState) bool {
	if to == models.StateCancelled {
		return !from.IsTerminal()
	}
	rf, okf := stateRank[from]
	rt, okt := stateRank[to]
	return okf && okt && rt == rf+1
}

// canCancel reports whether a workflow in state s may still be cancelled.
func canCancel(s models.WorkflowState) bool {
	return !s.IsTerminal()
}

// reschedulable reports whether the service date may still change.
func reschedulable(s models.WorkflowState) bool {
	rank, ok := stateRank[s]
	return ok && rank < stateRank[models.StateServiceDelivered]
}

// followUp describes the human action a newly entered state demands: the
// task created for the responsible party and the deferred reminder that
// nudges them if the workflow is still sitting in that state at the due time.
type followUp struct {
	role     string // "customer" or "vendor"
	title    string
	desc     string
	due      time.Duration
	priority models.TaskPriority
	template string
}

const (
	roleCustomer = "customer"
	roleVendor   = "vendor"
)

var followUps = map[models.WorkflowState]followUp{
	models.StateVendorContacted: {
		role:     roleVendor,
		title:    "Respond with a quote",
		desc:     "A couple requested your services. Send them a quote.",
		due:      24 * time.Hour,
		priority: models.TaskPriorityHigh,
		template: notification.TemplateVendorContacted,
	},
	models.StateQuoteReceived: {
		role:     roleCustomer,
		title:    "Review vendor quote",
		desc:     "Your vendor sent a quote. Accept it to move forward.",
		due:      72 * time.Hour,
		priority: models.TaskPriorityMedium,
		template: notification.TemplateQuoteReceived,
	},
	models.StateContractGenerated: {
		role:     roleCustomer,
		title:    "Sign the contract",
		desc:     "Your contract is ready. Sign it to secure the date.",
		due:      48 * time.Hour,
		priority: models.TaskPriorityHigh,
		template: notification.TemplateContractReady,
	},
	models.StateDepositPending: {
		role:     roleCustomer,
		title:    "Pay the deposit",
		desc:     "Pay the deposit to confirm your booking.",
		due:      48 * time.Hour,
		priority: models.TaskPriorityHigh,
		template: notification.TemplateDepositRequested,
	},
	models.StateBalancePending: {
		role:     roleCustomer,
		title:    "Pay the balance",
		desc:     "The service was delivered. Pay the remaining balance.",
		due:      72 * time.Hour,
		priority: models.TaskPriorityHigh,
		template: notification.TemplateBalanceRequested,
	},
}

// announcements are informational notifications for states that demand no
// action from the recipient.
var announcements = map[models.WorkflowState]struct {
	role     string
	template string
}{
	models.StateBookingConfirmed: {role: roleCustomer, template: notification.TemplateBookingConfirmed},
	models.StateServiceDelivered: {role: roleCustomer, template: notification.TemplateServiceDelivered},
	models.StateCompleted:        {role: roleCustomer, template: notification.TemplateWorkflowCompleted},
}
