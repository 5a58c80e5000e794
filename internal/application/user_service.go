package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	repo "github.com/bratat/go-user-accounts/internal/domain/repository"
	"github.com/bratat/go-user-accounts/pkg/helpers"
)

// UserService serves profile reads and writes for authenticated callers.
// Any authenticated caller may act on any user id.
type UserService struct {
	Repo      repo.UserRepository
	Validator Validator
	Logger    *logrus.Logger
}

func NewUserService(repo repo.UserRepository, validator Validator, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, Validator: validator, Logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("get user", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		return nil, storeErr("list users", err)
	}
	return users, nil
}

// UpdateProfile changes name and/or email. Moving to an address another
// account already uses fails with ErrDuplicateUser.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*entity.User, error) {
	if err := s.Validator.ValidateProfile(in); err != nil {
		return nil, err
	}

	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != u.Email {
		other, err := s.Repo.GetByEmail(ctx, *in.Email)
		switch {
		case err == nil && other.ID != u.ID:
			return nil, ErrDuplicateUser
		case err != nil && !errors.Is(err, repo.ErrNotFound):
			return nil, storeErr("lookup by email", err)
		}
		u.Email = *in.Email
	}
	if in.Name != nil {
		u.Name = *in.Name
	}

	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateSettings stores the requested mode. Unknown modes are ignored, not
// rejected; the returned user carries whatever mode is in effect.
func (s *UserService) UpdateSettings(ctx context.Context, id string, mode string) (*entity.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !u.ApplyMode(entity.Mode(mode)) {
		helpers.LogWarn(s.Logger, "ignoring unsupported settings mode", logrus.Fields{"user_id": u.ID, "mode": mode})
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return storeErr("delete user", err)
	}
	helpers.LogInfo(s.Logger, "user removed", logrus.Fields{"user_id": id})
	return nil
}

func (s *UserService) save(ctx context.Context, u *entity.User) error {
	if err := s.Repo.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateEmail):
			return ErrDuplicateUser
		}
		return storeErr("update user", err)
	}
	return nil
}
