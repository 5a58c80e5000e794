// Package memory holds an in-process user store used by tests and by
// STORE_DRIVER=memory for local runs.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bratat/go-user-accounts/internal/domain/entity"
	"github.com/bratat/go-user-accounts/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

// Create inserts u. The email index is checked and written under one lock,
// so concurrent inserts of the same address cannot both succeed.
func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[u.Email]; taken {
		return repository.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.Settings.Mode == "" {
		u.Settings.Mode = entity.ModeLight
	}

	r.byID[u.ID] = u.Clone()
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.byID[id].Clone(), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.byID[u.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if owner, taken := r.byEmail[u.Email]; taken && owner != u.ID {
		return repository.ErrDuplicateEmail
	}

	u.UpdatedAt = time.Now().UTC()
	next := u.Clone()
	next.Confirmed = cur.Confirmed || u.Confirmed
	next.CreatedAt = cur.CreatedAt
	if next.Settings.Mode == "" {
		next.Settings.Mode = cur.Settings.Mode
	}

	delete(r.byEmail, cur.Email)
	r.byEmail[next.Email] = next.ID
	r.byID[next.ID] = next
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.byEmail, u.Email)
	delete(r.byID, id)
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
