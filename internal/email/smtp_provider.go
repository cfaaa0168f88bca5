package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider sends mail through gomail. Each Send dials a fresh connection.
type SMTPProvider struct {
	config *SMTPConfig
	dialer *gomail.Dialer
}

func NewSMTPProvider(config *SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if len(email.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	return p.dialer.DialAndSend(p.buildMessage(email))
}

// SendNotification mails the notification as HTML with the bare message as the text part.
func (p *SMTPProvider) SendNotification(mail *NotificationMail) error {
	if mail.To == "" {
		return fmt.Errorf("no recipients specified")
	}
	htmlBody, err := RenderNotification(mail)
	if err != nil {
		return err
	}
	return p.Send(&Email{
		To:       []string{mail.To},
		Subject:  mail.Title,
		Body:     mail.Message,
		HTMLBody: htmlBody,
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.config.Port <= 0 || p.config.Port > 65535 {
		return fmt.Errorf("invalid SMTP port: %d", p.config.Port)
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) *gomail.Message {
	m := gomail.NewMessage()

	from := email.From
	if from == "" {
		from = m.FormatAddress(p.config.FromEmail, p.config.FromName)
	}
	m.SetHeader("From", from)
	m.SetHeader("To", email.To...)
	m.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.Body != "":
		m.SetBody("text/plain", email.Body)
		m.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		m.SetBody("text/html", email.HTMLBody)
	default:
		m.SetBody("text/plain", email.Body)
	}
	return m
}

// NoopProvider drops every message. Used when e-mail is disabled.
type NoopProvider struct{}

func (NoopProvider) Send(*Email) error { return nil }

func (NoopProvider) SendNotification(*NotificationMail) error { return nil }

func (NoopProvider) Validate() error { return nil }

func (NoopProvider) Close() error { return nil }
