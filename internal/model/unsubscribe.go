// internal/model/unsubscribe.go
package model

import "time"

type Unsubscribe struct {
	ID        int       `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	Name      string    `db:"name" json:"name,omitempty"`
	Category  string    `db:"category" json:"category,omitempty"`
	Reason    string    `db:"reason" json:"reason"`
	IPAddress string    `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent string    `db:"user_agent" json:"user_agent,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
