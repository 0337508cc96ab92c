package models

import "time"

// InitiateWorkflowRequest starts a new reservation workflow.
type InitiateWorkflowRequest struct {
	CustomerID      string `json:"customer_id"`
	WeddingID       string `json:"wedding_id"`
	VendorID        string `json:"vendor_id"`
	ServiceDate     string `json:"service_date"` // "YYYY-MM-DD"
	Start           int    `json:"start"`
	End             int    `json:"end"`
	PackageID       string `json:"package_id"`
	SpecialRequests string `json:"special_requests"`
}

// SubmitQuoteRequest records a vendor's offer on a workflow.
type SubmitQuoteRequest struct {
	WorkflowID         string    `json:"workflow_id"`
	VendorID           string    `json:"vendor_id"`
	QuoteAmount        float64   `json:"quote_amount"`
	DepositPercentage  float64   `json:"deposit_percentage"`
	ServiceDetails     string    `json:"service_details"`
	TermsAndConditions string    `json:"terms_and_conditions"`
	ValidUntil         time.Time `json:"valid_until"`
}
