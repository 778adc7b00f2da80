// internal/service/campaign_service.go
package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/sterlingcover/leadgen-backend/internal/mailer"
	"github.com/sterlingcover/leadgen-backend/internal/model"
	"github.com/sterlingcover/leadgen-backend/internal/queue"
	"github.com/sterlingcover/leadgen-backend/internal/repository"
)

const (
	defaultBatchSize  = 10
	defaultBatchDelay = time.Second
)

type CampaignService struct {
	CampaignRepo    repository.CampaignRepositoryInterface
	UnsubscribeRepo repository.UnsubscribeRepositoryInterface
	ContactRepo     repository.ContactRepositoryInterface
	Mailer          mailer.Sender
	Queue           queue.Queue

	FromEmail          string
	FromName           string
	UnsubscribeBaseURL string
	BatchSize          int
	BatchDelay         time.Duration

	// SleepFn pauses between batches; nil means time.Sleep.
	SleepFn func(time.Duration)
}

// RecipientInput is one address in a send request.
type RecipientInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SendCampaignRequest carries everything one send needs.
type SendCampaignRequest struct {
	CampaignID      int
	TemplateContent string
	Subject         string
	FromEmail       string
	FromName        string
	Recipients      []RecipientInput
}

// SendCampaignResult is the aggregate outcome of a send.
type SendCampaignResult struct {
	Sent    int      `json:"sent"`
	Failed  int      `json:"failed"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// FilterRecipients removes every recipient whose case-folded email is in
// the unsubscribe set and reports how many were skipped.
func FilterRecipients(recipients []RecipientInput, unsubscribed map[string]bool) ([]RecipientInput, int) {
	kept := []RecipientInput{}
	for _, r := range recipients {
		if unsubscribed[strings.ToLower(strings.TrimSpace(r.Email))] {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(recipients) - len(kept)
}

// SendCampaign runs the full dispatch pipeline: bulk unsubscribe fetch,
// filter, batched concurrent sends with a fixed pause between batches,
// per-recipient status recording, then one final campaign update.
func (s *CampaignService) SendCampaign(ctx context.Context, req SendCampaignRequest) (*SendCampaignResult, error) {
	unsubEmails, err := s.UnsubscribeRepo.ListEmails()
	if err != nil {
		return nil, fmt.Errorf("failed to load unsubscribe list: %w", err)
	}
	unsubSet := make(map[string]bool, len(unsubEmails))
	for _, e := range unsubEmails {
		unsubSet[strings.ToLower(strings.TrimSpace(e))] = true
	}

	kept, skipped := FilterRecipients(req.Recipients, unsubSet)

	result := &SendCampaignResult{
		Skipped: skipped,
		Errors:  []string{},
	}

	// Recipient rows are created up front so a crash mid-send leaves
	// the remainder visible as pending.
	for _, r := range kept {
		if err := s.CampaignRepo.CreateRecipient(req.CampaignID, r.Email, r.Name); err != nil {
			log.Println("failed to create recipient row for", r.Email, ":", err)
		}
	}

	fromEmail := req.FromEmail
	if fromEmail == "" {
		fromEmail = s.FromEmail
	}
	fromName := req.FromName
	if fromName == "" {
		fromName = s.FromName
	}

	batchSize := s.BatchSize
	if batchSize < 1 {
		batchSize = defaultBatchSize
	}
	delay := s.BatchDelay
	if delay <= 0 {
		delay = defaultBatchDelay
	}
	sleep := s.SleepFn
	if sleep == nil {
		sleep = time.Sleep
	}

	var mu sync.Mutex
	for start := 0; start < len(kept); start += batchSize {
		end := start + batchSize
		if end > len(kept) {
			end = len(kept)
		}
		batch := kept[start:end]

		var wg sync.WaitGroup
		for _, r := range batch {
			wg.Add(1)
			go func(r RecipientInput) {
				defer wg.Done()
				s.sendOne(ctx, req, r, fromEmail, fromName, result, &mu)
			}(r)
		}
		wg.Wait()

		// Fixed-rate throttle between batches, not after the last one.
		if end < len(kept) {
			sleep(delay)
		}
	}

	status := "sent"
	if result.Sent == 0 && result.Failed > 0 {
		status = "failed"
	}
	if err := s.CampaignRepo.Finish(req.CampaignID, result.Sent, status); err != nil {
		log.Println("failed to record campaign outcome:", err)
	}

	return result, nil
}

// sendOne personalizes, sends, and records one recipient's outcome. A
// send failure is captured per recipient and never aborts the batch; a
// status-recording failure is only logged.
func (s *CampaignService) sendOne(ctx context.Context, req SendCampaignRequest, r RecipientInput, fromEmail, fromName string, result *SendCampaignResult, mu *sync.Mutex) {
	body := Personalize(req.TemplateContent, r.Name, r.Email)
	body += BuildUnsubscribeFooter(s.UnsubscribeBaseURL, r.Email)

	subject := Personalize(req.Subject, r.Name, r.Email)

	err := s.Mailer.Send(ctx, &mailer.Email{
		To:        r.Email,
		Subject:   subject,
		HTML:      body,
		FromEmail: fromEmail,
		FromName:  fromName,
	})

	now := time.Now()
	if err != nil {
		mu.Lock()
		result.Failed++
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", r.Email, err))
		mu.Unlock()
		if uerr := s.CampaignRepo.UpdateRecipientStatus(req.CampaignID, r.Email, "failed", err.Error(), nil); uerr != nil {
			log.Println("failed to record failed status for", r.Email, ":", uerr)
		}
		return
	}

	mu.Lock()
	result.Sent++
	mu.Unlock()
	if uerr := s.CampaignRepo.UpdateRecipientStatus(req.CampaignID, r.Email, "sent", "", &now); uerr != nil {
		log.Println("failed to record sent status for", r.Email, ":", uerr)
	}
}

// SendStoredCampaign dispatches a stored campaign to every subscribed
// contact. This is the path the queue worker takes.
func (s *CampaignService) SendStoredCampaign(ctx context.Context, campaignID int) (*SendCampaignResult, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	if campaign.Status != "draft" && campaign.Status != "sending" && campaign.Status != "failed" {
		return nil, fmt.Errorf("campaign cannot be sent in status: %s", campaign.Status)
	}

	if campaign.Status != "sending" {
		if err := s.CampaignRepo.UpdateStatus(campaignID, "sending"); err != nil {
			return nil, err
		}
	}

	contacts, err := s.ContactRepo.ListSubscribed()
	if err != nil {
		return nil, err
	}

	recipients := make([]RecipientInput, 0, len(contacts))
	for _, c := range contacts {
		recipients = append(recipients, RecipientInput{Email: c.Email, Name: c.Name})
	}

	return s.SendCampaign(ctx, SendCampaignRequest{
		CampaignID:      campaignID,
		TemplateContent: campaign.BodyTemplate,
		Subject:         campaign.Subject,
		FromEmail:       campaign.FromEmail,
		FromName:        campaign.FromName,
		Recipients:      recipients,
	})
}

// EnqueueCampaign hands a stored campaign to the queue for the worker.
func (s *CampaignService) EnqueueCampaign(campaignID int) error {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return err
	}
	if campaign.Status != "draft" && campaign.Status != "failed" {
		return fmt.Errorf("campaign cannot be sent in status: %s", campaign.Status)
	}
	return s.Queue.PublishCampaignSend(campaignID)
}

func (s *CampaignService) CreateCampaign(name, subject, fromEmail, fromName, bodyTemplate string) (*model.Campaign, error) {
	if fromEmail == "" {
		fromEmail = s.FromEmail
	}
	if fromName == "" {
		fromName = s.FromName
	}
	c := &model.Campaign{
		Name:         name,
		Subject:      subject,
		FromEmail:    fromEmail,
		FromName:     fromName,
		BodyTemplate: bodyTemplate,
		Status:       "draft",
	}

	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, err
	}

	return c, nil
}

// ListCampaigns fetches campaigns with pagination
func (s *CampaignService) ListCampaigns(page, pageSize int, status string) ([]model.Campaign, map[string]int, error) {
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

	ptrs, total, err := s.CampaignRepo.ListCampaigns(offset, pageSize, status)
	if err != nil {
		return nil, nil, err
	}

	campaigns := make([]model.Campaign, len(ptrs))
	for i, c := range ptrs {
		campaigns[i] = *c
	}

	totalPages := (total + pageSize - 1) / pageSize
	pagination := map[string]int{
		"page":        page,
		"page_size":   pageSize,
		"total_count": total,
		"total_pages": totalPages,
	}

	return campaigns, pagination, nil
}

// CampaignDetails is a campaign plus its per-status recipient counts.
type CampaignDetails struct {
	ID           int            `json:"id"`
	Name         string         `json:"name"`
	Subject      string         `json:"subject"`
	FromEmail    string         `json:"from_email"`
	FromName     string         `json:"from_name"`
	BodyTemplate string         `json:"body_template"`
	Status       string         `json:"status"`
	SentCount    int            `json:"sent_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    *time.Time     `json:"updated_at"`
	Stats        map[string]int `json:"stats"`
}

func (s *CampaignService) GetCampaignDetailsWithStats(campaignID int) (*CampaignDetails, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	stats, err := s.CampaignRepo.GetCampaignStats(campaignID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, count := range stats {
		total += count
	}
	stats["total"] = total

	return &CampaignDetails{
		ID:           campaign.ID,
		Name:         campaign.Name,
		Subject:      campaign.Subject,
		FromEmail:    campaign.FromEmail,
		FromName:     campaign.FromName,
		BodyTemplate: campaign.BodyTemplate,
		Status:       campaign.Status,
		SentCount:    campaign.SentCount,
		CreatedAt:    campaign.CreatedAt,
		UpdatedAt:    campaign.UpdatedAt,
		Stats:        stats,
	}, nil
}
