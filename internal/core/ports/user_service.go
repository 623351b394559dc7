package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UserService covers registration, authentication and profile management.
// A false/nil result with a nil error is a soft failure; the error is only
// set when the backing store fails.
type UserService interface {
	Register(ctx context.Context, username, password string) (bool, error)
	RegisterWithEmail(ctx context.Context, username, password, email string) (bool, error)
	// Login returns a new session token when ok is true.
	Login(ctx context.Context, username, password string) (token string, ok bool, err error)
	Logout(ctx context.Context, token string) (bool, error)
	IsValidSession(ctx context.Context, token string) (bool, error)
	GetUsernameFromSession(ctx context.Context, token string) (string, bool, error)
	GetProfile(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, username, newPassword string) (bool, error)
	DeleteProfile(ctx context.Context, username string) (bool, error)
	GetAllUsers(ctx context.Context) ([]*domain.User, error)
}
