package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Booking is the durable reservation record materialized when a quote is
// accepted. It is the entity the availability guard queries and it outlives
// the workflow in read models such as dashboards and payment history.
type Booking struct {
	ID            string        `bson:"id" json:"id"`
	WorkflowID    string        `bson:"workflow_id" json:"workflow_id"`
	WeddingID     string        `bson:"wedding_id" json:"wedding_id"`
	VendorID      string        `bson:"vendor_id" json:"vendor_id"`
	CustomerID    string        `bson:"customer_id" json:"customer_id"`
	ServiceDate   string        `bson:"service_date" json:"service_date"` // "YYYY-MM-DD"
	Start         int           `bson:"start" json:"start"`               // minutes from midnight
	End           int           `bson:"end" json:"end"`
	TotalAmount   float64       `bson:"total_amount" json:"total_amount"`
	DepositAmount float64       `bson:"deposit_amount" json:"deposit_amount"`
	BalanceAmount float64       `bson:"balance_amount" json:"balance_amount"`
	Status        BookingStatus `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}
