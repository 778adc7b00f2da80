// internal/service/lead_service.go
package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sterlingcover/leadgen-backend/internal/model"
	"github.com/sterlingcover/leadgen-backend/internal/repository"
)

type LeadService struct {
	LeadRepo repository.LeadRepositoryInterface
}

type CreateLeadParams struct {
	Name            string
	Email           string
	Phone           string
	ProductInterest string
	IPAddress       string
	UserAgent       string
}

func (s *LeadService) CreateLead(params CreateLeadParams) (*model.Lead, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if strings.TrimSpace(params.Name) == "" {
		return nil, fmt.Errorf("missing name")
	}

	lead := &model.Lead{
		PublicID:        uuid.NewString(),
		Name:            strings.TrimSpace(params.Name),
		Email:           email,
		Phone:           strings.TrimSpace(params.Phone),
		ProductInterest: params.ProductInterest,
		Status:          "new",
		IPAddress:       params.IPAddress,
		UserAgent:       params.UserAgent,
	}

	if err := s.LeadRepo.Create(lead); err != nil {
		return nil, err
	}
	return lead, nil
}

// MarkPhoneVerified flips the verified flag once the OTP check passed.
func (s *LeadService) MarkPhoneVerified(publicID string) error {
	if _, err := s.LeadRepo.GetByPublicID(publicID); err != nil {
		return err
	}
	return s.LeadRepo.MarkPhoneVerified(publicID)
}

func (s *LeadService) UpdateStatus(publicID, status string) error {
	switch status {
	case "new", "contacted", "converted":
	default:
		return fmt.Errorf("invalid lead status: %s", status)
	}
	if _, err := s.LeadRepo.GetByPublicID(publicID); err != nil {
		return err
	}
	return s.LeadRepo.UpdateStatus(publicID, status)
}

// ListLeads fetches leads with pagination
func (s *LeadService) ListLeads(page, pageSize int, status string) ([]model.Lead, map[string]int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	leads, total, err := s.LeadRepo.ListLeads(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return leads, pagination, nil
}
