package repository

import (
	"database/sql"

	"github.com/sterlingcover/leadgen-backend/internal/model"
)

// ContactRepositoryInterface defines methods used by services
type ContactRepositoryInterface interface {
	GetByEmail(email string) (*model.Contact, error)
	ListSubscribed() ([]model.Contact, error)
	MarkUnsubscribed(email string) error
}

// ContactRepository is the concrete implementation
type ContactRepository struct {
	DB *sql.DB
}

// GetByEmail fetches a contact by email, case-insensitive
func (r *ContactRepository) GetByEmail(email string) (*model.Contact, error) {
	query := `
        SELECT id, email, name, category_id, category_name, subscribed, created_at
        FROM contacts
        WHERE lower(email) = lower($1)
    `
	row := r.DB.QueryRow(query, email)

	var c model.Contact
	if err := row.Scan(&c.ID, &c.Email, &c.Name, &c.CategoryID, &c.CategoryName, &c.Subscribed, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // not found
		}
		return nil, err
	}
	return &c, nil
}

// ListSubscribed fetches all subscribed contacts (used for sending campaigns)
func (r *ContactRepository) ListSubscribed() ([]model.Contact, error) {
	query := `
        SELECT id, email, name, category_id, category_name, subscribed, created_at
        FROM contacts
        WHERE subscribed = TRUE
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []model.Contact{}
	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Email, &c.Name, &c.CategoryID, &c.CategoryName, &c.Subscribed, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, nil
}

// MarkUnsubscribed flips the subscribed flag off for a contact, if one exists.
func (r *ContactRepository) MarkUnsubscribed(email string) error {
	_, err := r.DB.Exec(`UPDATE contacts SET subscribed = FALSE WHERE lower(email) = lower($1)`, email)
	return err
}

var _ ContactRepositoryInterface = (*ContactRepository)(nil)
