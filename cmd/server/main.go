// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/sterlingcover/leadgen-backend/internal/ads"
	"github.com/sterlingcover/leadgen-backend/internal/config"
	"github.com/sterlingcover/leadgen-backend/internal/controller"
	"github.com/sterlingcover/leadgen-backend/internal/db"
	"github.com/sterlingcover/leadgen-backend/internal/mailer"
	"github.com/sterlingcover/leadgen-backend/internal/queue"
	"github.com/sterlingcover/leadgen-backend/internal/repository"
	"github.com/sterlingcover/leadgen-backend/internal/service"
	"github.com/sterlingcover/leadgen-backend/internal/verify"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	defer conn.Close()
	log.Println("connected to database")

	// Repositories
	campaignRepo := &repository.CampaignRepository{DB: conn}
	unsubscribeRepo := &repository.UnsubscribeRepository{DB: conn}
	contactRepo := &repository.ContactRepository{DB: conn}
	leadRepo := &repository.LeadRepository{DB: conn}
	testimonialRepo := &repository.TestimonialRepository{DB: conn}

	// Queue: RabbitMQ when configured, in-process otherwise.
	var q queue.Queue
	if cfg.AMQPURL != "" {
		amqpQueue, err := queue.NewAMQPQueue(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("failed to connect to queue: %v", err)
		}
		defer amqpQueue.Close()
		q = amqpQueue
	} else {
		log.Println("AMQP_URL not set, using in-memory queue")
		q = queue.NewInMemoryQueue()
	}

	// Services
	campaignService := &service.CampaignService{
		CampaignRepo:       campaignRepo,
		UnsubscribeRepo:    unsubscribeRepo,
		ContactRepo:        contactRepo,
		Mailer:             mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		Queue:              q,
		FromEmail:          cfg.FromEmail,
		FromName:           cfg.FromName,
		UnsubscribeBaseURL: cfg.UnsubscribeBaseURL,
		BatchSize:          cfg.BatchSize,
		BatchDelay:         cfg.BatchDelay,
	}

	unsubscribeService := &service.UnsubscribeService{
		UnsubscribeRepo: unsubscribeRepo,
		ContactRepo:     contactRepo,
	}

	var provider verify.Provider
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		provider = verify.NewTwilioProvider(cfg.TwilioAccountSID, cfg.TwilioAuthToken)
	} else {
		log.Println("Twilio credentials not set, OTP runs in demo mode")
		provider = &verify.DemoProvider{}
	}
	verifyService := &service.VerifyService{Provider: provider}

	leadService := &service.LeadService{LeadRepo: leadRepo}

	conversionService := &service.ConversionService{
		Facebook: ads.NewFacebookClient(cfg.FacebookPixelID, cfg.FacebookAccessToken),
		Google:   ads.NewGoogleAdsClient(cfg.GoogleAdsCustomerID, cfg.GoogleAdsConversionID, cfg.GoogleAdsDeveloperToken),
	}

	// When running with the in-memory queue, process sends in-process.
	if cfg.AMQPURL == "" {
		q.SubscribeCampaignSends(func(campaignID int) error {
			_, err := campaignService.SendStoredCampaign(context.Background(), campaignID)
			return err
		})
	}

	// Controllers
	marketingController := &controller.MarketingController{
		CampaignService:    campaignService,
		UnsubscribeService: unsubscribeService,
	}
	verifyController := &controller.VerifyController{
		VerifyService: verifyService,
		LeadService:   leadService,
	}
	conversionController := &controller.ConversionController{
		ConversionService: conversionService,
	}
	leadController := &controller.LeadController{LeadService: leadService}
	testimonialController := &controller.TestimonialController{TestimonialRepo: testimonialRepo}
	campaignController := &controller.CampaignController{CampaignService: campaignService}

	r := chi.NewRouter()
	r.Use(controller.CORS)

	// Marketing surface
	r.Get("/unsubscribe", marketingController.Unsubscribe)
	r.Post("/unsubscribe", marketingController.Unsubscribe)
	r.Post("/send-campaign", marketingController.SendCampaign)

	// Phone verification
	r.Post("/send-otp", verifyController.SendOTP)
	r.Post("/verify-otp", verifyController.VerifyOTP)

	// Ad platform conversions
	r.Post("/facebook-conversions", conversionController.FacebookConversions)
	r.Post("/google-ads-conversions", conversionController.GoogleAdsConversions)

	// Leads
	r.Post("/leads", leadController.CreateLead)
	r.Get("/leads", leadController.ListLeads)
	r.Put("/leads/{id}/status", leadController.UpdateLeadStatus)

	// Testimonials
	r.Get("/testimonials", testimonialController.ListTestimonials)
	r.Post("/testimonials", testimonialController.CreateTestimonial)

	// Stored campaigns
	r.Post("/campaigns", campaignController.CreateCampaign)
	r.Get("/campaigns", campaignController.ListCampaigns)
	r.Get("/campaigns/{id}", campaignController.GetCampaign)
	r.Post("/campaigns/{id}/send", campaignController.SendCampaignAsync)

	log.Println("server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
