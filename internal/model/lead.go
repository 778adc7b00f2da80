// internal/model/lead.go
package model

import "time"

type Lead struct {
	ID              int        `db:"id" json:"id"`
	PublicID        string     `db:"public_id" json:"public_id"`
	Name            string     `db:"name" json:"name"`
	Email           string     `db:"email" json:"email"`
	Phone           string     `db:"phone" json:"phone"`
	PhoneVerified   bool       `db:"phone_verified" json:"phone_verified"`
	ProductInterest string     `db:"product_interest" json:"product_interest,omitempty"`
	Status          string     `db:"status" json:"status"` // new, contacted, converted
	IPAddress       string     `db:"ip_address" json:"-"`
	UserAgent       string     `db:"user_agent" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}
