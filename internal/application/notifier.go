package application

import (
	"context"
	"fmt"
	"time"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/mailer"
	mailtpl "github.com/bratat/go-user-accounts/pkg/mailer/templates"
)

// EmailNotifier mails confirmation links through a mailer.Dispatcher, which
// either sends right away or queues the job for the email worker.
type EmailNotifier struct {
	JWT        *helpers.JWTManager
	Dispatcher mailer.Dispatcher
	Cfg        *config.Config
	now        func() time.Time
}

func NewEmailNotifier(jwt *helpers.JWTManager, d mailer.Dispatcher, cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{JWT: jwt, Dispatcher: d, Cfg: cfg, now: time.Now}
}

func (n *EmailNotifier) SendConfirmation(ctx context.Context, userID, email string) error {
	token, exp, err := n.JWT.GenerateConfirmationToken(userID)
	if err != nil {
		return fmt.Errorf("issue confirmation token: %w", err)
	}

	data := mailtpl.NewConfirmEmailData(n.Cfg, "", email, n.Cfg.ConfirmationURL(token),
		mailtpl.WithTime(n.now()),
		mailtpl.WithExpiresAt(exp),
	)
	job := mailer.EmailJob{
		To:       email,
		Template: mailtpl.ConfirmEmail,
		Data:     data,
	}
	if err := n.Dispatcher.Dispatch(ctx, job); err != nil {
		return fmt.Errorf("dispatch confirmation: %w", err)
	}
	return nil
}
