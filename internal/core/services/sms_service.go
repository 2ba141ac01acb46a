package services

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"abonizera-api/internal/config"
)

// SMSSender delivers short messages to a telephone number
type SMSSender interface {
	Send(telephone, message string) error
}

// SMSService sends SMS through the configured gateway. When no gateway
// URL is configured the service runs in dry-run mode and only logs the
// message, which is what local development uses.
type SMSService struct {
	cfg    config.SMSConfig
	client *http.Client
}

// NewSMSService creates a new SMS service
func NewSMSService(cfg config.SMSConfig) *SMSService {
	return &SMSService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Send delivers a message to a telephone number
func (s *SMSService) Send(telephone, message string) error {
	if s.cfg.URL == "" {
		log.Printf("📨 SMS (dry-run) to %s: %s", telephone, message)
		return nil
	}

	form := url.Values{}
	form.Set("to", telephone)
	form.Set("message", message)
	form.Set("sender", s.cfg.Sender)

	req, err := http.NewRequest(http.MethodPost, s.cfg.URL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	log.Printf("✅ SMS sent to %s", telephone)
	return nil
}
