package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
)

func TestCreate_AssignsIDAndDefaults(t *testing.T) {
	repo := NewUserRepository()
	u := &entity.User{Name: "Juan Mata", Email: "jo.mata@gmail.com", PasswordHash: "h"}

	require.NoError(t, repo.Create(context.Background(), u))
	assert.NotEmpty(t, u.ID)

	got, err := repo.GetByEmail(context.Background(), "jo.mata@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, entity.ModeLight, got.Settings.Mode)
}

func TestCreate_ConcurrentSameEmail(t *testing.T) {
	repo := NewUserRepository()
	const n = 32

	var ok, dup atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(context.Background(), &entity.User{Name: "x", Email: "same@x.y", PasswordHash: "h"})
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, repository.ErrDuplicateEmail):
				dup.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(n-1), dup.Load())
}

func TestUpdate_NeverUnconfirms(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	u := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h", Confirmed: true}
	require.NoError(t, repo.Create(ctx, u))

	stale := u.Clone()
	stale.Confirmed = false
	stale.Name = "b"
	require.NoError(t, repo.Update(ctx, stale))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.Confirmed)
	assert.Equal(t, "b", got.Name)
}

func TestUpdate_EmailTakenByAnother(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	a := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h"}
	b := &entity.User{Name: "b", Email: "b@x.y", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	b.Email = "a@x.y"
	assert.ErrorIs(t, repo.Update(ctx, b), repository.ErrDuplicateEmail)

	b.Email = "c@x.y"
	require.NoError(t, repo.Update(ctx, b))
	_, err := repo.GetByEmail(ctx, "b@x.y")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReturnedUsersAreCopies(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	u := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, u))

	got, _ := repo.GetByID(ctx, u.ID)
	got.Name = "mutated"

	again, _ := repo.GetByID(ctx, u.ID)
	assert.Equal(t, "a", again.Name)
}

func TestDeleteAndList(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	a := &entity.User{Name: "a", Email: "a@x.y", PasswordHash: "h"}
	b := &entity.User{Name: "b", Email: "b@x.y", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.Delete(ctx, a.ID))
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), repository.ErrNotFound)

	all, _ = repo.List(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, b.ID, all[0].ID)
}
