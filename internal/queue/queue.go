package queue

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// CampaignSendsQueue is the queue campaign send jobs travel on.
const CampaignSendsQueue = "campaign_sends"

// Queue decouples enqueueing a campaign send from processing it.
type Queue interface {
	PublishCampaignSend(campaignID int) error
	SubscribeCampaignSends(handler func(campaignID int) error) error
}

// InMemoryQueue runs handlers in-process with retry, used when no broker
// is configured and in tests.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers []func(campaignID int) error
}

func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{}
}

type job struct {
	CampaignID int
	RetryCount int
	MaxRetries int
}

// PublishCampaignSend hands the job to every subscriber on its own goroutine.
func (q *InMemoryQueue) PublishCampaignSend(campaignID int) error {
	q.mu.Lock()
	handlers := make([]func(int) error, len(q.handlers))
	copy(handlers, q.handlers)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for queue %s", CampaignSendsQueue)
	}

	j := job{CampaignID: campaignID, MaxRetries: 3}
	for _, handler := range handlers {
		go q.processJob(handler, j)
	}
	return nil
}

// processJob handles retries and errors
func (q *InMemoryQueue) processJob(handler func(campaignID int) error, j job) {
	for j.RetryCount <= j.MaxRetries {
		err := handler(j.CampaignID)
		if err == nil {
			return // ACK
		}

		j.RetryCount++
		log.Printf("campaign send job failed (attempt %d/%d): campaign %d, error: %v\n", j.RetryCount, j.MaxRetries, j.CampaignID, err)

		if j.RetryCount > j.MaxRetries {
			log.Printf("campaign send job permanently failed after %d attempts: campaign %d\n", j.MaxRetries, j.CampaignID)
			return // No requeue
		}

		// Exponential backoff before retry
		time.Sleep(time.Duration(j.RetryCount*500) * time.Millisecond)
	}
}

// SubscribeCampaignSends adds a handler for campaign send jobs.
func (q *InMemoryQueue) SubscribeCampaignSends(handler func(campaignID int) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers = append(q.handlers, handler)
	return nil
}

var _ Queue = (*InMemoryQueue)(nil)
