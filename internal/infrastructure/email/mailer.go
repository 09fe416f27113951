package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"domain-agent.backend/internal/config"
	"domain-agent.backend/internal/domain/services"
)

// SMTPMailer implements the mailer port over plain SMTP
type SMTPMailer struct {
	cfg config.MailConfig

	// send is replaceable in tests
	send func(m *gomail.Message) error
}

// NewSMTPMailer creates a mailer using the configured SMTP relay
func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &SMTPMailer{
		cfg:  cfg,
		send: func(m *gomail.Message) error { return dialer.DialAndSend(m) },
	}
}

var _ services.Mailer = (*SMTPMailer)(nil)

// SendWelcome greets a freshly registered user
func (m *SMTPMailer) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Welcome aboard! Your account is ready. Search for a domain, ask the assistant for
name ideas, and secure the right one before someone else does.</p>
<p>Happy hunting,<br>%s</p>`, name, m.cfg.FromName)
	return m.deliver(ctx, email, "Welcome to "+m.cfg.FromName, body)
}

// SendPasswordReset delivers a reset link with the one-time token
func (m *SMTPMailer) SendPasswordReset(ctx context.Context, email, name, resetToken string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", m.cfg.ClientURL, resetToken)
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>We received a request to reset your password. The link below is valid for one hour:</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not request this, you can safely ignore this email.</p>`, name, link)
	return m.deliver(ctx, email, "Reset your password", body)
}

// SendPurchaseConfirmation confirms a completed domain registration
func (m *SMTPMailer) SendPurchaseConfirmation(ctx context.Context, email, name, domain string, amount float64) error {
	body := fmt.Sprintf(`<p>Hi %s,</p>
<p>Your domain <strong>%s</strong> is registered. We charged $%.2f to your card.</p>
<p>You can manage DNS records and renewal settings from your dashboard.</p>`, name, domain, amount)
	return m.deliver(ctx, email, "Your domain "+domain+" is ready", body)
}

func (m *SMTPMailer) deliver(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.Username, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.send(msg)
}
