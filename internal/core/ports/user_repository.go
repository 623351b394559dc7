package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UserRepository is the user directory, keyed by the lower-cased username.
// Implementations must be safe for concurrent use and must never hand out
// references to their stored records.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// lower-cased username is already taken.
	Create(ctx context.Context, user *domain.User) error
	// FindByUsername looks the user up case-insensitively regardless of the
	// active flag. Returns domain.ErrUserNotFound when absent.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Update replaces the stored record with the same key.
	Update(ctx context.Context, user *domain.User) error
	// List returns every stored user, active or not.
	List(ctx context.Context) ([]*domain.User, error)
}

// SessionStore maps opaque session tokens to lower-cased usernames.
// Tokens never expire.
type SessionStore interface {
	Save(ctx context.Context, token, username string) error
	// Lookup returns the username bound to token and whether it exists.
	Lookup(ctx context.Context, token string) (string, bool, error)
	// Delete removes token and reports whether it was present.
	Delete(ctx context.Context, token string) (bool, error)
}
