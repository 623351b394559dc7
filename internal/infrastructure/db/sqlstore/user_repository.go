package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefront/shop-api/internal/core/domain"
)

const userColumns = `id, username, email, password_hash, active, created_at, updated_at, version`

type UserRepository struct {
	db *sql.DB
	d  Dialect
}

func NewUserRepository(db *sql.DB, d Dialect) *UserRepository {
	return &UserRepository{db: db, d: d}
}

// Create inserts user. ON CONFLICT DO NOTHING covers both the primary key and
// the unique username_key, so zero affected rows means the name is taken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := r.d.Rebind(`INSERT INTO users (id, username, username_key, email, password_hash, active, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING`)

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Key(), user.Email, user.PasswordHash,
		user.Active, user.CreatedAt.UTC(), user.UpdatedAt.UTC(), user.Version)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserExists
	}
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := r.d.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username_key = $1`)
	u, err := scanUser(r.db.QueryRowContext(ctx, query, domain.UsernameKey(username)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Update writes user if the stored version still equals user.Version and
// bumps it. A stale version yields domain.ErrConflict.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	query := r.d.Rebind(`UPDATE users
		SET email = $1, password_hash = $2, active = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6`)

	res, err := r.db.ExecContext(ctx, query,
		user.Email, user.PasswordHash, user.Active, user.UpdatedAt.UTC(), user.ID, user.Version)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return r.missingOrConflict(ctx, user.ID)
	}
	user.Version++
	return nil
}

func (r *UserRepository) missingOrConflict(ctx context.Context, id string) error {
	var exists int
	err := r.db.QueryRowContext(ctx, r.d.Rebind(`SELECT 1 FROM users WHERE id = $1`), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return domain.ErrConflict
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	if err := s.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Active,
		&u.CreatedAt, &u.UpdatedAt, &u.Version); err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}
