package models

import "time"

type ContractStatus string

const (
	ContractDraft  ContractStatus = "draft"
	ContractSigned ContractStatus = "signed"
	ContractVoid   ContractStatus = "void"
)

// Contract is generated from an accepted quote and signed by the customer
// before any payment is requested.
type Contract struct {
	ID          string         `bson:"id" json:"id"`
	WorkflowID  string         `bson:"workflow_id" json:"workflow_id"`
	QuoteID     string         `bson:"quote_id" json:"quote_id"`
	CustomerID  string         `bson:"customer_id" json:"customer_id"`
	VendorID    string         `bson:"vendor_id" json:"vendor_id"`
	TotalAmount float64        `bson:"total_amount" json:"total_amount"`
	Terms       string         `bson:"terms,omitempty" json:"terms,omitempty"`
	Status      ContractStatus `bson:"status" json:"status"`
	SignedAt    *time.Time     `bson:"signed_at,omitempty" json:"signed_at,omitempty"`
	CreatedAt   time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updated_at"`
}
