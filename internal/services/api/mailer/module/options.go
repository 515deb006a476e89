package module

import (
	"resumeranker/internal/platform/config"
)

// Config holds mail settings, EMAIL_USER and EMAIL_PASS are required at send time
type Config struct {
	SMTPAddr string
	User     string
	Pass     string
	Missing  []string
}

// FromConfig reads mail settings
// credentials use the bare EMAIL_ names the deploy environment already carries
func FromConfig(cfg config.Conf) Config {
	return Config{
		SMTPAddr: cfg.MayString("MAIL_SMTP_ADDR", "smtp.gmail.com:587"),
		User:     cfg.MayString("EMAIL_USER", ""),
		Pass:     cfg.MayString("EMAIL_PASS", ""),
		Missing:  cfg.Missing("EMAIL_USER", "EMAIL_PASS"),
	}
}
