package models

import "time"

// WorkflowState is the lifecycle state of a reservation workflow.
type WorkflowState string

const (
	StateInitiated         WorkflowState = "initiated"
	StateVendorContacted   WorkflowState = "vendor_contacted"
	StateQuoteReceived     WorkflowState = "quote_received"
	StateQuoteAccepted     WorkflowState = "quote_accepted"
	StateContractGenerated WorkflowState = "contract_generated"
	StateContractSigned    WorkflowState = "contract_signed"
	StateDepositPending    WorkflowState = "deposit_pending"
	StateBookingConfirmed  WorkflowState = "booking_confirmed"
	StateServiceDelivered  WorkflowState = "service_delivered"
	StateBalancePending    WorkflowState = "balance_pending"
	StateCompleted         WorkflowState = "completed"
	StateCancelled         WorkflowState = "cancelled"
)

// IsTerminal reports whether no further transitions are allowed from s.
func (s WorkflowState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

func (s WorkflowState) String() string {
	return string(s)
}

// Workflow is one reservation process between one couple and one vendor
// for one service date. It is mutated only through validated transitions
// and is never deleted; terminal workflows are retained for audit.
type Workflow struct {
	ID              string        `bson:"id" json:"id"`
	CustomerID      string        `bson:"customer_id" json:"customer_id"`
	WeddingID       string        `bson:"wedding_id" json:"wedding_id"`
	VendorID        string        `bson:"vendor_id" json:"vendor_id"`
	ServiceDate     string        `bson:"service_date" json:"service_date"` // "YYYY-MM-DD"
	Start           int           `bson:"start" json:"start"`               // minutes from midnight; 0/0 means full-day
	End             int           `bson:"end" json:"end"`
	PackageID       string        `bson:"package_id,omitempty" json:"package_id,omitempty"`
	SpecialRequests string        `bson:"special_requests,omitempty" json:"special_requests,omitempty"`
	State           WorkflowState `bson:"state" json:"state"`
	QuoteID         string        `bson:"quote_id,omitempty" json:"quote_id,omitempty"`
	ContractID      string        `bson:"contract_id,omitempty" json:"contract_id,omitempty"`
	BookingID       string        `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	CancelReason    string        `bson:"cancel_reason,omitempty" json:"cancel_reason,omitempty"`
	CreatedAt       time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at" json:"updated_at"`
}

// StateHop is one edge of a transition; a multi-hop transition commits all
// hops (and one audit row per hop) in a single store transaction.
type StateHop struct {
	From WorkflowState
	To   WorkflowState
}

// WorkflowRefs carries the entity references a transition attaches to the
// workflow document inside the same transaction.
type WorkflowRefs struct {
	QuoteID    string
	ContractID string
	BookingID  string
}
