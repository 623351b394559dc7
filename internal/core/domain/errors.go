package domain

import "errors"

// Validation errors raised by entity constructors and setters.
var (
	ErrInvalidUsername   = errors.New("username must be 3-20 characters of letters, digits or underscores")
	ErrInvalidPassword   = errors.New("password cannot be empty")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrEmptyName         = errors.New("product name cannot be empty")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrNegativeStock     = errors.New("stock cannot be negative")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidRating     = errors.New("rating must be between 0.0 and 5.0")
	ErrInvalidArgument   = errors.New("invalid argument")
)

// Directory errors returned by repositories.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
	ErrConflict        = errors.New("concurrent modification detected")
)

// ErrInvalidCredentials is what the boundary reports for any failed login.
var ErrInvalidCredentials = errors.New("invalid username or password")
