package repository

import (
	"database/sql"

	"github.com/sterlingcover/leadgen-backend/internal/model"
)

type UnsubscribeRepositoryInterface interface {
	// Insert records the unsubscribe atomically. Returns false when the
	// email was already unsubscribed.
	Insert(u *model.Unsubscribe) (bool, error)
	GetByEmail(email string) (*model.Unsubscribe, error)
	ListEmails() ([]string, error)
}

type UnsubscribeRepository struct {
	DB *sql.DB
}

// Insert is a single conflict-handling insert. The unique index on
// lower(email) closes the race two concurrent requests would otherwise
// have with a check-then-insert.
func (r *UnsubscribeRepository) Insert(u *model.Unsubscribe) (bool, error) {
	query := `
        INSERT INTO unsubscribes (email, name, category, reason, ip_address, user_agent, created_at)
        VALUES (lower($1), $2, $3, $4, $5, $6, NOW())
        ON CONFLICT (email) DO NOTHING
        RETURNING id, created_at
    `
	err := r.DB.QueryRow(query, u.Email, u.Name, u.Category, u.Reason, u.IPAddress, u.UserAgent).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			// Conflict: already unsubscribed.
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *UnsubscribeRepository) GetByEmail(email string) (*model.Unsubscribe, error) {
	query := `SELECT id, email, name, category, reason, ip_address, user_agent, created_at
              FROM unsubscribes WHERE email=lower($1)`
	var u model.Unsubscribe
	err := r.DB.QueryRow(query, email).Scan(
		&u.ID, &u.Email, &u.Name, &u.Category, &u.Reason,
		&u.IPAddress, &u.UserAgent, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// ListEmails returns every unsubscribed address in one bulk query, used
// to filter campaign recipients before dispatch.
func (r *UnsubscribeRepository) ListEmails() ([]string, error) {
	rows, err := r.DB.Query(`SELECT email FROM unsubscribes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	emails := []string{}
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, err
		}
		emails = append(emails, email)
	}
	return emails, nil
}

var _ UnsubscribeRepositoryInterface = (*UnsubscribeRepository)(nil)
