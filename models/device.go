package models

import "time"

// Device maps a workflow party to their push-notification token.
type Device struct {
	OwnerID   string    `bson:"owner_id" json:"owner_id"`
	FCMToken  string    `bson:"fcm_token" json:"fcm_token"`
	Platform  string    `bson:"platform,omitempty" json:"platform,omitempty"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
