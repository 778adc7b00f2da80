// internal/service/unsubscribe_service.go
package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sterlingcover/leadgen-backend/internal/model"
	"github.com/sterlingcover/leadgen-backend/internal/repository"
)

const defaultUnsubscribeReason = "User requested unsubscribe"

type UnsubscribeService struct {
	UnsubscribeRepo repository.UnsubscribeRepositoryInterface
	ContactRepo     repository.ContactRepositoryInterface
}

type UnsubscribeParams struct {
	Email     string
	Name      string
	Category  string
	Reason    string
	IPAddress string
	UserAgent string
}

type UnsubscribeOutcome struct {
	AlreadyUnsubscribed bool
	Record              *model.Unsubscribe
}

// Unsubscribe records the opt-out. Idempotent from the caller's view: a
// repeat call reports AlreadyUnsubscribed instead of erroring. The
// storage layer resolves concurrent duplicates via its unique index.
func (s *UnsubscribeService) Unsubscribe(params UnsubscribeParams) (*UnsubscribeOutcome, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}

	// Inherit name/category from a known contact when the caller left
	// them out (link-based unsubscribes only carry the email).
	if params.Name == "" || params.Category == "" {
		contact, err := s.ContactRepo.GetByEmail(email)
		if err != nil {
			log.Println("contact lookup failed for", email, ":", err)
		} else if contact != nil {
			if params.Name == "" {
				params.Name = contact.Name
			}
			if params.Category == "" {
				params.Category = contact.CategoryName
			}
		}
	}

	reason := params.Reason
	if reason == "" {
		reason = defaultUnsubscribeReason
	}

	record := &model.Unsubscribe{
		Email:     email,
		Name:      params.Name,
		Category:  params.Category,
		Reason:    reason,
		IPAddress: params.IPAddress,
		UserAgent: params.UserAgent,
	}

	inserted, err := s.UnsubscribeRepo.Insert(record)
	if err != nil {
		return nil, err
	}

	if !inserted {
		existing, err := s.UnsubscribeRepo.GetByEmail(email)
		if err != nil {
			log.Println("failed to load existing unsubscribe for", email, ":", err)
		}
		return &UnsubscribeOutcome{AlreadyUnsubscribed: true, Record: existing}, nil
	}

	// Keep the contact book consistent; a failure here does not fail
	// the unsubscribe itself.
	if err := s.ContactRepo.MarkUnsubscribed(email); err != nil {
		log.Println("failed to flag contact unsubscribed:", err)
	}

	return &UnsubscribeOutcome{Record: record}, nil
}
