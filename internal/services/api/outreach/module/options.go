package module

import (
	"adrata/internal/platform/config"
)

// Options selects and configures the mail providers
type Options struct {
	Primary  string
	Fallback string

	ResendAPIKey   string
	SendgridAPIKey string
}

// FromConfig reads with OUTREACH_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("OUTREACH_")
	return Options{
		Primary:        c.MayString("PRIMARY", "resend"),
		Fallback:       c.MayString("FALLBACK", "sendgrid"),
		ResendAPIKey:   c.MayString("RESEND_API_KEY", ""),
		SendgridAPIKey: c.MayString("SENDGRID_API_KEY", ""),
	}
}
