package service

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// Notifier delivers a transactional email. Delivery is best-effort for every
// caller except the gallery dispatch's address validation, which happens
// before Send is reached.
type Notifier interface {
	Send(toEmail, toName, subject, plainBody, htmlBody string) error
}

// SendGridNotifier sends through the SendGrid API.
type SendGridNotifier struct {
	APIKey    string
	FromEmail string
	FromName  string
	Log       *zap.SugaredLogger
}

func NewSendGridNotifier(apiKey, fromEmail, fromName string, log *zap.SugaredLogger) *SendGridNotifier {
	return &SendGridNotifier{APIKey: apiKey, FromEmail: fromEmail, FromName: fromName, Log: log}
}

func (n *SendGridNotifier) Send(toEmail, toName, subject, plainBody, htmlBody string) error {
	if n.APIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY is not configured, email not sent")
	}
	if n.FromEmail == "" {
		return fmt.Errorf("SENDGRID_FROM_EMAIL is not configured, email not sent")
	}

	from := mail.NewEmail(n.FromName, n.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainBody, htmlBody)

	client := sendgrid.NewSendClient(n.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		n.Log.Infow("email sent", "to", toEmail, "subject", subject, "status", response.StatusCode)
		return nil
	}
	return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
}
