package templates

import (
	"time"

	"github.com/bratat/go-user-accounts/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		if t.IsZero() {
			return
		}
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

// NewBaseEmailData fills the common fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,
		Type:  typ,

		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewConfirmEmailData(cfg *config.Config, name, email, confirmURL string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, ConfirmEmail, name, email, opts...)
	d.ConfirmURL = confirmURL
	return ToMap(d)
}
