package emailsend

import (
	"fmt"
	"time"

	"outreach-campaigns/internal/common/config"
)

const (
	ProviderSMTP = "smtp"
	ProviderSES  = "ses"
)

type Config struct {
	Provider     string        `mapstructure:"provider"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SMTPHost     string        `mapstructure:"smtp_host"`
	SMTPPort     int           `mapstructure:"smtp_port"`
	SMTPUsername string        `mapstructure:"smtp_username"`
	SMTPPassword string        `mapstructure:"smtp_password"`
	UseTLS       bool          `mapstructure:"use_tls"`
	DefaultFrom  string        `mapstructure:"default_from"`
	SESRegion    string        `mapstructure:"ses_region"`
}

func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderSMTP,
		Timeout:     30 * time.Second,
		SMTPHost:    "smtp.gmail.com",
		SMTPPort:    587,
		UseTLS:      true,
		DefaultFrom: "noreply@example.com",
		SESRegion:   "us-east-1",
	}
}

// FromAppConfig maps the mail section of the application config.
func FromAppConfig(app *config.Config) *Config {
	cfg := DefaultConfig()
	if app == nil {
		return cfg
	}
	cfg.Provider = app.Mail.Provider
	cfg.SMTPHost = app.Mail.SMTP.Host
	cfg.SMTPPort = app.Mail.SMTP.Port
	cfg.SMTPUsername = app.Mail.SMTP.Username
	cfg.SMTPPassword = app.Mail.SMTP.Password
	cfg.UseTLS = app.Mail.SMTP.UseTLS
	cfg.SESRegion = app.Mail.SES.Region
	if app.Mail.DefaultFrom != "" {
		cfg.DefaultFrom = app.Mail.DefaultFrom
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.DefaultFrom == "" {
		return fmt.Errorf("default_from email is required")
	}
	switch c.Provider {
	case ProviderSMTP:
		if c.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("smtp_port must be between 1 and 65535")
		}
	case ProviderSES:
		if c.SESRegion == "" {
			return fmt.Errorf("ses_region is required")
		}
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	return nil
}
