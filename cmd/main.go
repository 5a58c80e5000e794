package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/internal/container"
	"github.com/bratat/go-user-accounts/internal/infrastructure/store"
	"github.com/bratat/go-user-accounts/internal/router"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/mailer"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration:\n%v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	repo, closeStore, err := store.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to open user store: %v", err)
	}
	defer closeStore()

	// Mail: either enqueue for cmd/email_worker or send from this process
	var dispatcher mailer.Dispatcher
	if cfg.MailDispatch == "queue" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer pub.Close()
		dispatcher = mailer.NewQueueDispatcher(pub)
	} else {
		sender, err := mailer.NewSenderFromConfig(cfg, logger)
		if err != nil {
			logger.Fatalf("mail transport: %v", err)
		}
		dispatcher = mailer.NewDirectDispatcher(sender)
	}
	logger.WithFields(logrus.Fields{"dispatch": cfg.MailDispatch, "provider": cfg.MailProvider}).Info("mail configured")

	c := container.New(cfg, logger, repo, dispatcher)
	r := router.New(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	// let in-flight confirmation emails finish before the store and broker close
	c.AuthService.Wait()
	logger.Info("server exited properly")
}
