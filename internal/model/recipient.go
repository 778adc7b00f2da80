// internal/model/recipient.go
package model

import "time"

type Recipient struct {
	ID         int        `db:"id" json:"id"`
	CampaignID int        `db:"campaign_id" json:"campaign_id"`
	Email      string     `db:"email" json:"email"`
	Name       string     `db:"name" json:"name"`
	Status     string     `db:"status" json:"status"` // pending, sent, failed
	LastError  string     `db:"last_error" json:"last_error,omitempty"`
	SentAt     *time.Time `db:"sent_at" json:"sent_at,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
