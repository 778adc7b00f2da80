// internal/model/contact.go
package model

import "time"

type Contact struct {
	ID           int       `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	CategoryID   string    `db:"category_id" json:"category_id,omitempty"`
	CategoryName string    `db:"category_name" json:"category_name,omitempty"`
	Subscribed   bool      `db:"subscribed" json:"subscribed"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
