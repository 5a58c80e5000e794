package mailer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/config"
)

// NewSenderFromConfig picks the transport named by MAIL_PROVIDER. With
// MAIL_SEND_ENABLED=false every provider degrades to the log transport.
func NewSenderFromConfig(cfg *config.Config, logger *logrus.Logger) (Sender, error) {
	if !cfg.MailSendEnabled {
		return NewLogSender(logger), nil
	}
	switch cfg.MailProvider {
	case "mailgun":
		return NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailSender), nil
	case "resend":
		return NewResend(cfg.ResendAPIKey, cfg.MailSender), nil
	case "log", "":
		return NewLogSender(logger), nil
	default:
		return nil, fmt.Errorf("unknown mail provider %q", cfg.MailProvider)
	}
}
