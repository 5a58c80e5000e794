package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
	"github.com/bratat/go-user-accounts/internal/infrastructure/memory"
)

type countingRepo struct {
	repository.UserRepository
	gets int
}

func (c *countingRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	c.gets++
	return c.UserRepository.GetByID(ctx, id)
}

func newCached(t *testing.T) (*UserRepository, *countingRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	inner := &countingRepo{UserRepository: memory.NewUserRepository()}
	return NewUserRepository(inner, rdb, time.Minute, nil), inner, mr
}

func TestGetByID_ReadThrough(t *testing.T) {
	repo, inner, mr := newCached(t)
	ctx := context.Background()
	u := &entity.User{Name: "Juan Mata", Email: "jo.mata@gmail.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))

	first, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	second, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.gets)
	assert.Equal(t, first.Email, second.Email)
	assert.True(t, mr.Exists(userKey(u.ID)))
}

func TestUpdate_Invalidates(t *testing.T) {
	repo, inner, mr := newCached(t)
	ctx := context.Background()
	u := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	_, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)

	u.Confirm()
	require.NoError(t, repo.Update(ctx, u))
	assert.False(t, mr.Exists(userKey(u.ID)))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Confirmed)
	assert.Equal(t, 2, inner.gets)
}

func TestGetByID_CacheHoldsNoPasswordHash(t *testing.T) {
	repo, _, mr := newCached(t)
	ctx := context.Background()
	u := &entity.User{
		Name:         "Juan Mata",
		Email:        "jo.mata@gmail.com",
		PasswordHash: "$2a$04$secret-hash",
		Settings:     entity.Settings{Mode: entity.ModeDark},
	}
	require.NoError(t, repo.Create(ctx, u))

	_, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	raw, err := mr.Get(userKey(u.ID))
	require.NoError(t, err)
	assert.NotContains(t, raw, "secret-hash")

	cached, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, cached.PasswordHash)
	assert.Equal(t, "jo.mata@gmail.com", cached.Email)
	assert.Equal(t, entity.ModeDark, cached.Settings.Mode)
}

func TestUpdate_FromCachedReadKeepsPasswordHash(t *testing.T) {
	repo, inner, _ := newCached(t)
	ctx := context.Background()
	u := &entity.User{Name: "Juan Mata", Email: "jo.mata@gmail.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	_, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)

	cached, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, cached.PasswordHash)
	cached.Name = "Juan Manuel Mata"
	require.NoError(t, repo.Update(ctx, cached))

	stored, err := inner.UserRepository.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "h", stored.PasswordHash)
	assert.Equal(t, "Juan Manuel Mata", stored.Name)
}

func TestUpdate_MissingUserWithoutHash(t *testing.T) {
	repo, _, _ := newCached(t)
	err := repo.Update(context.Background(), &entity.User{ID: "missing", Name: "a"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete_Invalidates(t *testing.T) {
	repo, _, mr := newCached(t)
	ctx := context.Background()
	u := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))
	_, _ = repo.GetByID(ctx, u.ID)

	require.NoError(t, repo.Delete(ctx, u.ID))
	assert.False(t, mr.Exists(userKey(u.ID)))

	_, err := repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetByID_RedisDownFallsBackToStore(t *testing.T) {
	repo, inner, mr := newCached(t)
	ctx := context.Background()
	u := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))

	mr.Close()

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, 1, inner.gets)
}
