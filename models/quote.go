package models

import "time"

type QuoteStatus string

const (
	QuotePending  QuoteStatus = "pending"
	QuoteAccepted QuoteStatus = "accepted"
	QuoteRejected QuoteStatus = "rejected"
)

// Quote is a vendor's priced offer for a workflow. It transitions to
// accepted at most once and is immutable afterwards except for status.
type Quote struct {
	ID                 string      `bson:"id" json:"id"`
	WorkflowID         string      `bson:"workflow_id" json:"workflow_id"`
	VendorID           string      `bson:"vendor_id" json:"vendor_id"`
	QuoteAmount        float64     `bson:"quote_amount" json:"quote_amount"`
	DepositPercentage  float64     `bson:"deposit_percentage" json:"deposit_percentage"`
	ServiceDetails     string      `bson:"service_details,omitempty" json:"service_details,omitempty"`
	TermsAndConditions string      `bson:"terms_and_conditions,omitempty" json:"terms_and_conditions,omitempty"`
	ValidUntil         time.Time   `bson:"valid_until" json:"valid_until"`
	Status             QuoteStatus `bson:"status" json:"status"`
	CreatedAt          time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time   `bson:"updated_at" json:"updated_at"`
}
