package repository

import (
	"database/sql"
	"time"

	"github.com/sterlingcover/leadgen-backend/internal/model"
)

type TestimonialRepositoryInterface interface {
	Create(t *model.Testimonial) error
	ListApproved() ([]model.Testimonial, error)
}

type TestimonialRepository struct {
	DB *sql.DB
}

func (r *TestimonialRepository) Create(t *model.Testimonial) error {
	t.CreatedAt = time.Now()
	query := `
        INSERT INTO testimonials (author, content, rating, approved, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, t.Author, t.Content, t.Rating, t.Approved, t.CreatedAt).Scan(&t.ID)
}

func (r *TestimonialRepository) ListApproved() ([]model.Testimonial, error) {
	query := `
        SELECT id, author, content, rating, approved, created_at
        FROM testimonials
        WHERE approved = TRUE
        ORDER BY id DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	testimonials := []model.Testimonial{}
	for rows.Next() {
		var t model.Testimonial
		if err := rows.Scan(&t.ID, &t.Author, &t.Content, &t.Rating, &t.Approved, &t.CreatedAt); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, nil
}

var _ TestimonialRepositoryInterface = (*TestimonialRepository)(nil)
