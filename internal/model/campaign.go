// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID           int        `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Subject      string     `db:"subject" json:"subject"`
	FromEmail    string     `db:"from_email" json:"from_email"`
	FromName     string     `db:"from_name" json:"from_name"`
	BodyTemplate string     `db:"body_template" json:"body_template"`
	Status       string     `db:"status" json:"status"` // draft, sending, sent, failed
	SentCount    int        `db:"sent_count" json:"sent_count"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
