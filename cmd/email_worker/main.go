package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/mailer"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	sender, err := mailer.NewSenderFromConfig(cfg, logger)
	if err != nil {
		logger.Fatalf("mail transport: %v", err)
	}
	if !cfg.MailSendEnabled {
		logger.Warn("MAIL_SEND_ENABLED=false; jobs are consumed and logged, no real emails will be sent")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch across workers
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			handle(logger, sender, msg)
		}
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// handle acks delivered mail, drops malformed jobs and requeues transport
// failures once.
func handle(logger *logrus.Logger, sender mailer.Sender, msg amqp.Delivery) {
	var job mailer.EmailJob
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		helpers.LogError(logger, "bad message", err, nil)
		_ = msg.Nack(false, false)
		return
	}
	if err := job.Validate(); err != nil {
		helpers.LogError(logger, "invalid email job", err, logrus.Fields{"to": job.To})
		_ = msg.Nack(false, false)
		return
	}
	if err := mailer.Render(&job); err != nil {
		helpers.LogError(logger, "render failed", err, logrus.Fields{"template": job.Template})
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := sender.Send(ctx, job.To, job.Subject, job.Text, job.HTML); err != nil {
		helpers.LogError(logger, "send failed", err, logrus.Fields{"to": job.To, "redelivered": msg.Redelivered})
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}
	_ = msg.Ack(false)
}
