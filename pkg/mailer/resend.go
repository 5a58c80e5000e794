package mailer

import (
	"context"
	"time"

	"github.com/resend/resend-go/v2"
)

// Resend sends mail through the Resend API.
type Resend struct {
	client *resend.Client
	Sender string
}

func NewResend(apiKey, sender string) *Resend {
	return &Resend{client: resend.NewClient(apiKey), Sender: sender}
}

func (r *Resend) Send(ctx context.Context, to, subject, text, html string) error {
	params := &resend.SendEmailRequest{
		From:    r.Sender,
		To:      []string{to},
		Subject: subject,
		Text:    text,
		Html:    html,
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, err := r.client.Emails.SendWithContext(c, params)
	return err
}

var _ Sender = (*Resend)(nil)
