// internal/errors/errors.go
package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrLeadNotFound is a sentinel error
type ErrLeadNotFound struct {
	PublicID string
}

func (e *ErrLeadNotFound) Error() string {
	return fmt.Sprintf("lead %s not found", e.PublicID)
}

func NewLeadNotFound(publicID string) error {
	return &ErrLeadNotFound{PublicID: publicID}
}

// ErrMissingField signals a request that left out a required field.
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func NewMissingField(field string) error {
	return &ErrMissingField{Field: field}
}
