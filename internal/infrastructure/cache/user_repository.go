// Package cache decorates a user repository with a Redis read-through cache
// for lookups by id. Writes always go to the store first and then drop the
// cached copy, so a failed invalidation costs at most one TTL of staleness.
//
// Password hashes never reach Redis. A user served from the cache carries an
// empty PasswordHash, and Update restores it from the store before writing.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
	"github.com/bratat/go-user-accounts/pkg/helpers"
)

func userKey(id string) string { return "user:profile:" + id }

type cachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Confirmed bool      `json:"confirmed"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCached(u *entity.User) cachedUser {
	return cachedUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Confirmed: u.Confirmed,
		Mode:      string(u.Settings.Mode),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c cachedUser) user() *entity.User {
	return &entity.User{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Confirmed: c.Confirmed,
		Settings:  entity.Settings{Mode: entity.Mode(c.Mode)},
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type UserRepository struct {
	next   repository.UserRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewUserRepository(next repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *UserRepository {
	return &UserRepository{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (r *UserRepository) warn(err error, key, msg string) {
	if r.logger != nil {
		r.logger.WithError(err).WithField("key", key).Warn(msg)
	}
}

func (r *UserRepository) invalidate(ctx context.Context, id string) {
	if err := helpers.RedisDel(ctx, r.rdb, userKey(id)); err != nil {
		r.warn(err, userKey(id), "user cache invalidation failed")
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	return r.next.Create(ctx, u)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	key := userKey(id)
	var cached cachedUser
	hit, err := helpers.RedisGetJSON(ctx, r.rdb, key, &cached)
	if err != nil {
		// fail-open: the store stays authoritative
		r.warn(err, key, "user cache read failed")
	}
	if hit {
		return cached.user(), nil
	}

	u, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, r.rdb, key, toCached(u), r.ttl); err != nil {
		r.warn(err, key, "user cache write failed")
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.next.GetByEmail(ctx, email)
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	if u.PasswordHash == "" {
		cur, err := r.next.GetByID(ctx, u.ID)
		if err != nil {
			return err
		}
		u.PasswordHash = cur.PasswordHash
	}
	if err := r.next.Update(ctx, u); err != nil {
		return err
	}
	r.invalidate(ctx, u.ID)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, id)
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	return r.next.List(ctx)
}

var _ repository.UserRepository = (*UserRepository)(nil)
