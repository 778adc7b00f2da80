package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/sterlingcover/leadgen-backend/internal/errors"
	"github.com/sterlingcover/leadgen-backend/internal/model"
)

type LeadRepositoryInterface interface {
	Create(l *model.Lead) error
	GetByPublicID(publicID string) (*model.Lead, error)
	MarkPhoneVerified(publicID string) error
	UpdateStatus(publicID, status string) error
	ListLeads(offset, limit int, status string) ([]model.Lead, int, error)
}

type LeadRepository struct {
	DB *sql.DB
}

func (r *LeadRepository) Create(l *model.Lead) error {
	l.CreatedAt = time.Now()
	if l.Status == "" {
		l.Status = "new"
	}
	query := `
        INSERT INTO leads (public_id, name, email, phone, phone_verified, product_interest, status, ip_address, user_agent, created_at)
        VALUES ($1, $2, lower($3), $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	return r.DB.QueryRow(query,
		l.PublicID, l.Name, l.Email, l.Phone, l.PhoneVerified,
		l.ProductInterest, l.Status, l.IPAddress, l.UserAgent, l.CreatedAt,
	).Scan(&l.ID)
}

func (r *LeadRepository) GetByPublicID(publicID string) (*model.Lead, error) {
	query := `
        SELECT id, public_id, name, email, phone, phone_verified, product_interest, status, ip_address, user_agent, created_at, updated_at
        FROM leads WHERE public_id=$1
    `
	var l model.Lead
	err := r.DB.QueryRow(query, publicID).Scan(
		&l.ID, &l.PublicID, &l.Name, &l.Email, &l.Phone, &l.PhoneVerified,
		&l.ProductInterest, &l.Status, &l.IPAddress, &l.UserAgent, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewLeadNotFound(publicID)
		}
		return nil, err
	}
	return &l, nil
}

func (r *LeadRepository) MarkPhoneVerified(publicID string) error {
	query := `UPDATE leads SET phone_verified=TRUE, updated_at=NOW() WHERE public_id=$1`
	_, err := r.DB.Exec(query, publicID)
	return err
}

func (r *LeadRepository) UpdateStatus(publicID, status string) error {
	query := `UPDATE leads SET status=$1, updated_at=NOW() WHERE public_id=$2`
	_, err := r.DB.Exec(query, status, publicID)
	return err
}

func (r *LeadRepository) ListLeads(offset, limit int, status string) ([]model.Lead, int, error) {
	leads := []model.Lead{}
	query := `SELECT id, public_id, name, email, phone, phone_verified, product_interest, status, ip_address, user_agent, created_at, updated_at FROM leads WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += " AND status=$1"
		args = append(args, status)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	for rows.Next() {
		var l model.Lead
		if err := rows.Scan(&l.ID, &l.PublicID, &l.Name, &l.Email, &l.Phone, &l.PhoneVerified,
			&l.ProductInterest, &l.Status, &l.IPAddress, &l.UserAgent, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, err
		}
		leads = append(leads, l)
	}

	countQuery := `SELECT COUNT(*) FROM leads WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

var _ LeadRepositoryInterface = (*LeadRepository)(nil)
