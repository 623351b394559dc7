package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// UserService implements registration, login sessions and profile management.
type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	cost     int
	locks    *keyLock
	logger   zerolog.Logger

	// decoyHash is compared against when the username is unknown so that a
	// failed login costs the same whether or not the account exists.
	decoyHash []byte
	tokenHash func() hash.Hash
	now       func() time.Time
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService wires the user directory and session table. bcryptCost
// outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
func NewUserService(users ports.UserRepository, sessions ports.SessionStore, bcryptCost int, logger zerolog.Logger) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	decoy, err := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcryptCost)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to build decoy hash")
	}
	return &UserService{
		users:     users,
		sessions:  sessions,
		cost:      bcryptCost,
		locks:     newKeyLock(defaultLockShards),
		logger:    logger,
		decoyHash: decoy,
		tokenHash: sha256.New,
		now:       time.Now,
	}
}

// Register creates an account without an email address.
func (s *UserService) Register(ctx context.Context, username, password string) (bool, error) {
	return s.RegisterWithEmail(ctx, username, password, "")
}

// RegisterWithEmail creates an account. It reports false when either
// credential is empty, fails validation, or the username is taken
// case-insensitively.
func (s *UserService) RegisterWithEmail(ctx context.Context, username, password, email string) (bool, error) {
	if username == "" || password == "" {
		return false, nil
	}

	key := domain.UsernameKey(username)
	unlock := s.locks.lock(key)
	defer unlock()

	_, err := s.users.FindByUsername(ctx, key)
	switch {
	case err == nil:
		s.logger.Debug().Str("username", key).Msg("registration rejected: username taken")
		return false, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return false, fmt.Errorf("register: %w", err)
	}

	user, err := domain.NewUser(username, password, s.cost)
	if err != nil {
		s.logger.Debug().Err(err).Str("username", key).Msg("registration rejected")
		return false, nil
	}
	if err := user.SetEmail(email); err != nil {
		s.logger.Debug().Err(err).Str("username", key).Msg("registration rejected")
		return false, nil
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return false, nil
		}
		return false, fmt.Errorf("register: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("user registered")
	return true, nil
}

// Login checks the credentials of an active user and mints a new session
// token. A user may hold any number of concurrent tokens.
func (s *UserService) Login(ctx context.Context, username, password string) (string, bool, error) {
	if username == "" || password == "" {
		return "", false, nil
	}

	user, err := s.users.FindByUsername(ctx, domain.UsernameKey(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.decoyHash, []byte(password))
			return "", false, nil
		}
		return "", false, fmt.Errorf("login: %w", err)
	}

	if !user.CheckPassword(password) || !user.Active {
		return "", false, nil
	}

	token := mintToken(s.tokenHash, user.Key(), s.now(), newTokenNonce())
	if err := s.sessions.Save(ctx, token, user.Key()); err != nil {
		return "", false, fmt.Errorf("login: save session: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("session opened")
	return token, true, nil
}

// Logout reports whether a session was actually removed.
func (s *UserService) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	removed, err := s.sessions.Delete(ctx, token)
	if err != nil {
		return false, fmt.Errorf("logout: %w", err)
	}
	return removed, nil
}

func (s *UserService) IsValidSession(ctx context.Context, token string) (bool, error) {
	_, ok, err := s.GetUsernameFromSession(ctx, token)
	return ok, err
}

// GetUsernameFromSession resolves token to the lower-cased username.
func (s *UserService) GetUsernameFromSession(ctx context.Context, token string) (string, bool, error) {
	if token == "" {
		return "", false, nil
	}
	username, ok, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		return "", false, fmt.Errorf("lookup session: %w", err)
	}
	return username, ok, nil
}

// GetProfile returns the stored user whether or not it is active.
func (s *UserService) GetProfile(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, nil
	}
	user, err := s.users.FindByUsername(ctx, domain.UsernameKey(username))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile replaces the user's password.
func (s *UserService) UpdateProfile(ctx context.Context, username, newPassword string) (bool, error) {
	if username == "" {
		return false, nil
	}

	key := domain.UsernameKey(username)
	unlock := s.locks.lock(key)
	defer unlock()

	user, err := s.users.FindByUsername(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("update profile: %w", err)
	}

	if err := user.SetPassword(newPassword, s.cost); err != nil {
		s.logger.Debug().Err(err).Str("username", key).Msg("profile update rejected")
		return false, nil
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return false, fmt.Errorf("update profile: %w", err)
	}
	return true, nil
}

// DeleteProfile soft-deletes an active user. Deleting an inactive or unknown
// user reports false.
func (s *UserService) DeleteProfile(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}

	key := domain.UsernameKey(username)
	unlock := s.locks.lock(key)
	defer unlock()

	user, err := s.users.FindByUsername(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("delete profile: %w", err)
	}
	if !user.Active {
		return false, nil
	}

	user.Active = false
	user.UpdatedAt = s.now().UTC()
	if err := s.users.Update(ctx, user); err != nil {
		return false, fmt.Errorf("delete profile: %w", err)
	}

	s.logger.Info().Str("username", user.Username).Msg("user deactivated")
	return true, nil
}

// GetAllUsers lists active users in directory order.
func (s *UserService) GetAllUsers(ctx context.Context) ([]*domain.User, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	active := make([]*domain.User, 0, len(all))
	for _, u := range all {
		if u.Active {
			active = append(active, u)
		}
	}
	return active, nil
}
