// cmd/worker/main.go
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/sterlingcover/leadgen-backend/internal/config"
	"github.com/sterlingcover/leadgen-backend/internal/db"
	"github.com/sterlingcover/leadgen-backend/internal/mailer"
	"github.com/sterlingcover/leadgen-backend/internal/queue"
	"github.com/sterlingcover/leadgen-backend/internal/repository"
	"github.com/sterlingcover/leadgen-backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if cfg.AMQPURL == "" {
		log.Fatal("AMQP_URL must be set for the worker")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	unsubscribeRepo := &repository.UnsubscribeRepository{DB: conn}
	contactRepo := &repository.ContactRepository{DB: conn}

	campaignService := &service.CampaignService{
		CampaignRepo:       campaignRepo,
		UnsubscribeRepo:    unsubscribeRepo,
		ContactRepo:        contactRepo,
		Mailer:             mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		FromEmail:          cfg.FromEmail,
		FromName:           cfg.FromName,
		UnsubscribeBaseURL: cfg.UnsubscribeBaseURL,
		BatchSize:          cfg.BatchSize,
		BatchDelay:         cfg.BatchDelay,
	}

	q, err := queue.NewAMQPQueue(cfg.AMQPURL)
	if err != nil {
		log.Fatalf("failed to connect to queue: %v", err)
	}
	defer q.Close()

	log.Println("worker running, waiting for campaign send jobs...")

	err = q.SubscribeCampaignSends(func(campaignID int) error {
		log.Println("processing queued campaign:", campaignID)

		result, err := campaignService.SendStoredCampaign(context.Background(), campaignID)
		if err != nil {
			return err
		}

		log.Printf("campaign %d dispatched: sent=%d failed=%d skipped=%d\n",
			campaignID, result.Sent, result.Failed, result.Skipped)
		return nil
	})
	if err != nil {
		log.Fatalf("consumer stopped: %v", err)
	}
}
