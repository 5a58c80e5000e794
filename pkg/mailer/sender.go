package mailer

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/bratat/go-user-accounts/pkg/mailer/templates"
)

// Sender is a mail transport.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Render fills Subject, Text and HTML from the job's template, if any.
func Render(job *EmailJob) error {
	if job.Template == "" {
		return nil
	}
	job.ensureRecipient()
	subject, text, html, err := mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return fmt.Errorf("render %s: %w", job.Template, err)
	}
	job.Subject, job.Text, job.HTML = subject, text, html
	return nil
}

// Deliver renders the job and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if err := Render(&job); err != nil {
		return err
	}
	return s.Send(ctx, job.To, job.Subject, job.Text, job.HTML)
}

// LogSender writes messages to the log instead of sending them. Used when
// MAIL_PROVIDER=log or sending is disabled.
type LogSender struct {
	Logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{Logger: logger}
}

func (l *LogSender) Send(_ context.Context, to, subject, text, _ string) error {
	if l.Logger != nil {
		l.Logger.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("email sent (log transport)\n" + text)
	}
	return nil
}
