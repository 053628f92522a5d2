// Package mailer sends transactional email through sendgrid. Without an API
// key the mailer is disabled and sends become no-ops, which keeps local
// development free of external dependencies.
package mailer

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/ekgus419/go-api-boilerplate/internal/config"
)

type Mailer struct {
	apiKey      string
	fromName    string
	fromAddress string
	log         *zap.Logger
}

func New(cfg config.MailConfig, log *zap.Logger) *Mailer {
	if cfg.SendgridAPIKey == "" {
		log.Info("sendgrid not configured, mail disabled")
	}
	return &Mailer{
		apiKey:      cfg.SendgridAPIKey,
		fromName:    cfg.FromName,
		fromAddress: cfg.FromAddress,
		log:         log,
	}
}

func (m *Mailer) Enabled() bool {
	return m.apiKey != ""
}

// SendWelcome greets a newly registered user. Failures are returned so the
// caller can decide whether they are fatal; user creation treats them as
// best-effort.
func (m *Mailer) SendWelcome(recipientEmail, username string) error {
	if !m.Enabled() {
		return nil
	}

	from := mail.NewEmail(m.fromName, m.fromAddress)
	to := mail.NewEmail(username, recipientEmail)
	subject := "Welcome to User API"
	plainTextContent := fmt.Sprintf("Hi %s, your account has been created.", username)
	htmlContent := fmt.Sprintf("<p>Hi <strong>%s</strong>, your account has been created.</p>", username)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}

	m.log.Debug("welcome mail sent", zap.String("email", recipientEmail), zap.Int("status", response.StatusCode))
	return nil
}
