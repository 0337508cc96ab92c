package models

import "time"

// BlockedDate is a vendor-declared unavailable date or time range.
type BlockedDate struct {
	BlockID   string    `bson:"block_id" json:"block_id"`
	VendorID  string    `bson:"vendor_id" json:"vendor_id"`
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start     int       `bson:"start" json:"start"`
	End       int       `bson:"end" json:"end"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
