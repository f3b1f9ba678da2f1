package email

import (
	"context"
	"fmt"
	"net/smtp"

	"b2bees-backend/pkg/logger"
)

type WelcomeEmailData struct {
	Email       string
	BeeName     string
	UseCaseSlug string
}

type EmailService interface {
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
}

// sendFunc cho phép test thay net/smtp
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     sendFunc
}

func NewSMTPEmailService(host, port, from string) EmailService {
	return &smtpEmailService{
		smtpAddr: host + ":" + port,
		smtpFrom: from,
		send:     smtp.SendMail,
	}
}

func (s *smtpEmailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	subject := "Welcome to the Bees newsletter"

	intro := "Thanks for subscribing to updates about our AI assistants."
	if data.BeeName != "" {
		intro = fmt.Sprintf("Thanks for your interest in %s.", data.BeeName)
	}

	body := fmt.Sprintf(`Hi there,

%s We'll send you product news, new Bees and practical automation ideas.

You can unsubscribe at any time from the link in any of our emails.

The Bees team`, intro)

	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.smtpFrom, data.Email, subject, body))

	if err := s.send(s.smtpAddr, nil, s.smtpFrom, []string{data.Email}, msg); err != nil {
		logger.Info("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        data.Email,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
