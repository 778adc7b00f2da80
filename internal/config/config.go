// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries everything the process needs from the environment.
// Loaded once in main and injected, nothing reads os.Getenv after startup.
type Config struct {
	Port        string
	DatabaseURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	FromEmail    string
	FromName     string

	UnsubscribeBaseURL string
	BatchSize          int
	BatchDelay         time.Duration

	TwilioAccountSID string
	TwilioAuthToken  string

	FacebookPixelID     string
	FacebookAccessToken string

	GoogleAdsCustomerID     string
	GoogleAdsConversionID   string
	GoogleAdsDeveloperToken string

	AMQPURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    getenv("FROM_EMAIL", "no-reply@sterlingcover.com"),
		FromName:     getenv("FROM_NAME", "Sterling Cover Advisory"),

		UnsubscribeBaseURL: getenv("UNSUBSCRIBE_BASE_URL", "https://sterlingcover.com/unsubscribe"),
		BatchSize:          getenvInt("CAMPAIGN_BATCH_SIZE", 10),
		BatchDelay:         getenvDuration("CAMPAIGN_BATCH_DELAY", time.Second),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),

		FacebookPixelID:     os.Getenv("FACEBOOK_PIXEL_ID"),
		FacebookAccessToken: os.Getenv("FACEBOOK_ACCESS_TOKEN"),

		GoogleAdsCustomerID:     os.Getenv("GOOGLE_ADS_CUSTOMER_ID"),
		GoogleAdsConversionID:   os.Getenv("GOOGLE_ADS_CONVERSION_ID"),
		GoogleAdsDeveloperToken: os.Getenv("GOOGLE_ADS_DEVELOPER_TOKEN"),

		AMQPURL: os.Getenv("AMQP_URL"),
	}

	if cfg.DatabaseURL == "" {
		// Fall back to discrete DB_* variables.
		user := os.Getenv("DB_USER")
		name := os.Getenv("DB_NAME")
		if user == "" || name == "" {
			return nil, fmt.Errorf("missing database configuration: set DATABASE_URL or DB_USER/DB_NAME")
		}
		cfg.DatabaseURL = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=disable",
			user,
			os.Getenv("DB_PASSWORD"),
			getenv("DB_HOST", "localhost"),
			getenv("DB_PORT", "5432"),
			name,
		)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}
