package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	repo "github.com/bratat/go-user-accounts/internal/domain/repository"
	"github.com/bratat/go-user-accounts/pkg/helpers"
)

const defaultNotifyTimeout = 15 * time.Second

// Notifier delivers the confirmation link for a freshly registered account.
type Notifier interface {
	SendConfirmation(ctx context.Context, userID, email string) error
}

// AuthService drives registration, login and email confirmation.
// An account starts unconfirmed and becomes confirmed exactly once.
type AuthService struct {
	Repo          repo.UserRepository
	Hasher        *helpers.PasswordHasher
	JWT           *helpers.JWTManager
	Notifier      Notifier
	Validator     Validator
	Logger        *logrus.Logger
	NotifyTimeout time.Duration

	wg sync.WaitGroup
}

func NewAuthService(repo repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, notifier Notifier, validator Validator, logger *logrus.Logger) *AuthService {
	return &AuthService{
		Repo:          repo,
		Hasher:        hasher,
		JWT:           jwt,
		Notifier:      notifier,
		Validator:     validator,
		Logger:        logger,
		NotifyTimeout: defaultNotifyTimeout,
	}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

// Register creates an unconfirmed account and mails its confirmation link.
// The mail goes out in the background; a delivery failure is logged and
// never reported to the caller.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := s.Validator.ValidateRegistration(in); err != nil {
		return nil, err
	}

	// The unique index is what actually guarantees uniqueness; this lookup
	// only buys the friendlier error in the common case.
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrDuplicateUser
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, storeErr("lookup by email", err)
	}

	hash, err := s.Hasher.Hash(in.Password)
	if errors.Is(err, helpers.ErrPasswordTooLong) {
		// max=72 counts characters; multi-byte input can still overflow
		return nil, &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password length must be at most %d bytes long", helpers.MaxPasswordBytes),
		}
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Settings:     entity.Settings{Mode: entity.ModeLight},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrDuplicateUser
		}
		return nil, storeErr("create user", err)
	}

	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID})
	s.sendConfirmation(ctx, u.ID, u.Email)
	return u, nil
}

func (s *AuthService) sendConfirmation(ctx context.Context, userID, email string) {
	if s.Notifier == nil {
		return
	}
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	// Detached from the request: the handler answers before the mail is out.
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		if err := s.Notifier.SendConfirmation(c, userID, email); err != nil {
			helpers.LogError(s.Logger, "confirmation email not sent", fmt.Errorf("%w: %w", ErrDelivery, err), logrus.Fields{"user_id": userID})
		}
	}()
}

// Wait blocks until every background confirmation send has finished.
func (s *AuthService) Wait() {
	s.wg.Wait()
}

// Login checks credentials and issues a session token. Unconfirmed
// accounts are refused even with the right password.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if err := s.Validator.ValidateLogin(in); err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("lookup by email", err)
	}

	ok, err := s.Hasher.Compare(u.PasswordHash, in.Password)
	if err != nil {
		return nil, storeErr("compare password", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !u.Confirmed {
		return nil, ErrUnconfirmedAccount
	}

	token, exp, err := s.JWT.GenerateSessionToken(u.ID, u.Name, u.Email)
	if err != nil {
		helpers.LogError(s.Logger, "generate session token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// ConfirmEmail marks the token's account as confirmed. Confirming twice is
// not an error and writes nothing the second time.
func (s *AuthService) ConfirmEmail(ctx context.Context, token string) (*entity.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	claims, err := s.JWT.ParseConfirmationToken(token)
	if err != nil {
		return nil, err
	}

	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}

	if !u.Confirm() {
		return u, nil
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("save confirmation", err)
	}

	helpers.LogInfo(s.Logger, "email confirmed", logrus.Fields{"user_id": u.ID})
	return u, nil
}

// ResendConfirmation mails a fresh link to an unconfirmed account. Unknown
// and already confirmed addresses are silently accepted so the endpoint
// cannot be used to probe for accounts.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	if err := s.Validator.ValidateEmail(email); err != nil {
		return err
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil
		}
		return storeErr("lookup by email", err)
	}
	if u.Confirmed {
		return nil
	}
	s.sendConfirmation(ctx, u.ID, u.Email)
	return nil
}
