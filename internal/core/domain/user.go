package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@(.+)$`)
)

// User models a registered account. Deleting a user only clears Active.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Version      int64     `json:"-"`
}

// NewUser validates the credentials and returns an active user with a fresh id.
// The password is stored as a bcrypt hash of the given cost.
func NewUser(username, password string, cost int) (*User, error) {
	u := &User{ID: uuid.NewString(), Active: true}
	if err := u.SetUsername(username); err != nil {
		return nil, err
	}
	if err := u.SetPassword(password, cost); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	return u, nil
}

// UsernameKey is the case-insensitive directory key for a username.
func UsernameKey(username string) string {
	return strings.ToLower(username)
}

// Key returns the directory key of u.
func (u *User) Key() string {
	return UsernameKey(u.Username)
}

func (u *User) SetUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	u.Username = username
	return nil
}

// SetPassword rejects blank passwords and replaces the stored hash.
func (u *User) SetPassword(password string, cost int) error {
	if strings.TrimSpace(password) == "" {
		return ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetEmail accepts an empty value (no email) or a local@domain address.
// Surrounding whitespace is ignored.
func (u *User) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if email != "" && !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
