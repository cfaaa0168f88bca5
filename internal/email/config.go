package email

import (
	"bloodbank_backend/internal/config"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// ConfigFromApp copies the email section of the application config.
func ConfigFromApp(cfg *config.Config) *SMTPConfig {
	return &SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}
}

// NewProvider returns an SMTP provider when e-mail is enabled and a no-op one otherwise.
func NewProvider(cfg *config.Config) Provider {
	if !cfg.Email.Enabled {
		return NoopProvider{}
	}
	return NewSMTPProvider(ConfigFromApp(cfg))
}
