// Package memory holds process-local implementations of the directory ports.
// Every type is safe for concurrent use and hands out copies of its records.
package memory

import (
	"context"
	"sync"

	"github.com/storefront/shop-api/internal/core/domain"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	key := user.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[key]; ok {
		return domain.ErrUserExists
	}
	r.users[key] = user.Clone()
	r.order = append(r.order, key)
	return nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[domain.UsernameKey(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u.Clone(), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	key := user.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.users[key]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored := user.Clone()
	stored.Version = current.Version + 1
	r.users[key] = stored
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.users[key].Clone())
	}
	return out, nil
}
