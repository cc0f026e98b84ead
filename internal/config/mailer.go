package config

import "fmt"

type MailerConfig struct {
	From       string
	AdminEmail string
	GmailEmail string
	Password   string
	SMTPHost   string
	SMTPPort   int
}

// DefaultMailerConfig reads SMTP settings. Gmail credentials double as SMTP auth.
func DefaultMailerConfig() *MailerConfig {
	gmail := getEnvWithDefault("GMAIL_EMAIL", "")
	from := getEnvWithDefault("MAILER_FROM", gmail)
	return &MailerConfig{
		From:       from,
		AdminEmail: getEnvWithDefault("MAILER_ADMIN_EMAIL", from),
		GmailEmail: gmail,
		Password:   getEnvWithDefault("GMAIL_PASSWORD", ""),
		SMTPHost:   getEnvWithDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:   getEnvIntWithDefault("SMTP_PORT", 587),
	}
}

func (c *MailerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}
