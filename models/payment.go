package models

import "time"

type PaymentType string

const (
	PaymentDeposit PaymentType = "deposit"
	PaymentBalance PaymentType = "balance"
	PaymentRefund  PaymentType = "refund"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	// PaymentSuperseded marks a pending intent replaced by a reissued one.
	// A charge landing on it afterwards is refunded, never applied.
	PaymentSuperseded PaymentStatus = "superseded"
)

// Payment correlates a workflow with a payment-gateway intent. Refund rows
// carry a negative amount and reference the intent they compensate.
type Payment struct {
	ID            string        `bson:"id" json:"id"`
	WorkflowID    string        `bson:"workflow_id" json:"workflow_id"`
	BookingID     string        `bson:"booking_id,omitempty" json:"booking_id,omitempty"`
	Type          PaymentType   `bson:"type" json:"type"`
	Amount        float64       `bson:"amount" json:"amount"`
	Currency      string        `bson:"currency" json:"currency"`
	Status        PaymentStatus `bson:"status" json:"status"`
	IntentID      string        `bson:"intent_id,omitempty" json:"intent_id,omitempty"`
	RefundID      string        `bson:"refund_id,omitempty" json:"refund_id,omitempty"`
	FailureReason string        `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}
