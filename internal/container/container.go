package container

import (
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/config"
	"github.com/bratat/go-user-accounts/internal/application"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
	handlers "github.com/bratat/go-user-accounts/internal/interface/http"
	"github.com/bratat/go-user-accounts/pkg/helpers"
	"github.com/bratat/go-user-accounts/pkg/mailer"
	"github.com/bratat/go-user-accounts/pkg/validation"
)

// Container holds the components built once at startup and shared by the
// router modules. It is constructed explicitly and passed down; nothing is
// kept in package state.
type Container struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	JWT    *helpers.JWTManager
	Repo   repository.UserRepository

	AuthService *application.AuthService
	UserService *application.UserService

	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler
}

// New wires services and handlers on top of an already opened store and
// mail dispatcher.
func New(cfg *config.Config, logger *logrus.Logger, repo repository.UserRepository, dispatcher mailer.Dispatcher) *Container {
	jwt := helpers.NewJWTManager(cfg.SessionTokenSecret, cfg.EmailTokenSecret, cfg.SessionTokenTTL, cfg.EmailTokenTTL)
	validator := application.NewValidator(validation.New())
	notifier := application.NewEmailNotifier(jwt, dispatcher, cfg)

	authSvc := application.NewAuthService(repo, helpers.NewPasswordHasher(cfg.BcryptCost), jwt, notifier, validator, logger)
	userSvc := application.NewUserService(repo, validator, logger)

	return &Container{
		Cfg:         cfg,
		Logger:      logger,
		JWT:         jwt,
		Repo:        repo,
		AuthService: authSvc,
		UserService: userSvc,
		AuthHandler: handlers.NewAuthHandler(authSvc, cfg, logger),
		UserHandler: handlers.NewUserHandler(userSvc, logger),
	}
}
