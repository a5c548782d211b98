package models

import "time"

// PendingSignup is the transient email -> confirmation code record held
// between requesting a code and redeeming it. It is upserted on every code
// request and deleted once redeemed into a User.
type PendingSignup struct {
	Email            string    `json:"email" gorm:"primaryKey;size:254"`
	ConfirmationCode string    `json:"-" gorm:"type:uuid;not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (PendingSignup) TableName() string {
	return "pending_signups"
}
