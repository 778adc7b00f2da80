package repository

import (
	"database/sql"
	"fmt"
	"time"

	appErrors "github.com/sterlingcover/leadgen-backend/internal/errors"
	"github.com/sterlingcover/leadgen-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	// Campaign CRUD
	ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error)
	GetByID(id int) (*model.Campaign, error)
	UpdateStatus(campaignID int, status string) error
	Create(c *model.Campaign) error
	Finish(campaignID, sentCount int, status string) error

	// Recipients
	CreateRecipient(campaignID int, email, name string) error
	UpdateRecipientStatus(campaignID int, email, status, lastError string, sentAt *time.Time) error
	GetRecipient(campaignID int, email string) (*model.Recipient, error)
	ListRecipients(campaignID int) ([]model.Recipient, error)
	GetCampaignStats(campaignID int) (map[string]int, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

// ====================== Campaign CRUD ======================

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now()
	if c.Status == "" {
		c.Status = "draft"
	}
	query := `
        INSERT INTO campaigns (name, subject, from_email, from_name, body_template, status, sent_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.Name, c.Subject, c.FromEmail, c.FromName, c.BodyTemplate, c.Status, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) UpdateStatus(campaignID int, status string) error {
	query := `UPDATE campaigns SET status=$1, updated_at=$2 WHERE id=$3`
	_, err := r.DB.Exec(query, status, time.Now(), campaignID)
	return err
}

// Finish records the aggregate outcome of a send, one mutation after the
// batch loop completes.
func (r *CampaignRepository) Finish(campaignID, sentCount int, status string) error {
	query := `UPDATE campaigns SET status=$1, sent_count=$2, updated_at=NOW() WHERE id=$3`
	_, err := r.DB.Exec(query, status, sentCount, campaignID)
	return err
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, subject, from_email, from_name, body_template, status, sent_count, created_at, updated_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Subject, &c.FromEmail, &c.FromName, &c.BodyTemplate, &c.Status, &c.SentCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepository) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	campaigns := []*model.Campaign{}
	query := `SELECT id, name, subject, from_email, from_name, body_template, status, sent_count, created_at, updated_at FROM campaigns WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if status != "" {
		query += fmt.Sprintf(" AND status=$%d", argPos)
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
		c := &model.Campaign{}
		if err := rows.Scan(&c.ID, &c.Name, &c.Subject, &c.FromEmail, &c.FromName, &c.BodyTemplate, &c.Status, &c.SentCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, c)
	}

	// Count total
	countQuery := `SELECT COUNT(*) FROM campaigns WHERE 1=1`
	argsCount := []interface{}{}
	if status != "" {
		countQuery += " AND status=$1"
		argsCount = append(argsCount, status)
	}

	var total int
	if err := r.DB.QueryRow(countQuery, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ====================== Recipients ======================

// CreateRecipient is idempotent: a recipient row is keyed by
// (campaign_id, lower(email)) and re-sends reuse the existing row.
func (r *CampaignRepository) CreateRecipient(campaignID int, email, name string) error {
	query := `
        INSERT INTO campaign_recipients (campaign_id, email, name, status, created_at, updated_at)
        VALUES ($1, lower($2), $3, 'pending', NOW(), NOW())
        ON CONFLICT (campaign_id, email) DO NOTHING
    `
	_, err := r.DB.Exec(query, campaignID, email, name)
	return err
}

func (r *CampaignRepository) GetRecipient(campaignID int, email string) (*model.Recipient, error) {
	query := `SELECT id, campaign_id, email, name, status, last_error, sent_at, created_at, updated_at
              FROM campaign_recipients
              WHERE campaign_id=$1 AND email=lower($2)`
	var rec model.Recipient
	err := r.DB.QueryRow(query, campaignID, email).Scan(
		&rec.ID, &rec.CampaignID, &rec.Email, &rec.Name, &rec.Status,
		&rec.LastError, &rec.SentAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *CampaignRepository) UpdateRecipientStatus(campaignID int, email, status, lastError string, sentAt *time.Time) error {
	query := `UPDATE campaign_recipients SET status=$1, last_error=$2, sent_at=$3, updated_at=NOW()
              WHERE campaign_id=$4 AND email=lower($5)`
	_, err := r.DB.Exec(query, status, lastError, sentAt, campaignID, email)
	return err
}

func (r *CampaignRepository) ListRecipients(campaignID int) ([]model.Recipient, error) {
	query := `SELECT id, campaign_id, email, name, status, last_error, sent_at, created_at, updated_at
              FROM campaign_recipients WHERE campaign_id=$1 ORDER BY id`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipients := []model.Recipient{}
	for rows.Next() {
		var rec model.Recipient
		if err := rows.Scan(&rec.ID, &rec.CampaignID, &rec.Email, &rec.Name, &rec.Status,
			&rec.LastError, &rec.SentAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		recipients = append(recipients, rec)
	}
	return recipients, nil
}

func (r *CampaignRepository) GetCampaignStats(campaignID int) (map[string]int, error) {
	query := `SELECT status, COUNT(*) FROM campaign_recipients WHERE campaign_id=$1 GROUP BY status`
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := map[string]int{"pending": 0, "sent": 0, "failed": 0}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, nil
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
