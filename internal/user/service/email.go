package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

const welcomeSubject = "Welcome to UserHub"

// MailgunEmailService sends transactional email through Mailgun.
type MailgunEmailService struct {
	client  *mailgun.MailgunImpl
	sender  string
	timeout time.Duration
}

// NewMailgunEmailService creates a new MailgunEmailService.
func NewMailgunEmailService(domain, apiKey, sender string) *MailgunEmailService {
	return &MailgunEmailService{
		client:  mailgun.NewMailgun(domain, apiKey),
		sender:  sender,
		timeout: 10 * time.Second,
	}
}

// SendWelcome sends the post-registration welcome message.
func (s *MailgunEmailService) SendWelcome(ctx context.Context, email, fullName string) error {
	body := fmt.Sprintf("Hi %s,\n\nyour account is ready. Welcome aboard!\n", fullName)
	message := s.client.NewMessage(s.sender, welcomeSubject, body, email)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// LogEmailService logs instead of sending. Used in development and when no
// Mailgun credentials are configured.
type LogEmailService struct {
	logger *slog.Logger
}

// NewLogEmailService creates a new LogEmailService.
func NewLogEmailService(logger *slog.Logger) *LogEmailService {
	return &LogEmailService{logger: logger}
}

// SendWelcome logs the welcome message instead of delivering it.
func (s *LogEmailService) SendWelcome(ctx context.Context, email, fullName string) error {
	s.logger.Info("welcome email suppressed, no mail provider configured",
		slog.String("email", email),
		slog.String("full_name", fullName),
	)
	return nil
}
