package domain

import "errors"

// Not-found errors map to HTTP 404.
var (
	ErrCardNotFound = errors.New("card not found")
	ErrUserNotFound = errors.New("user not found")
)

// Authorization errors map to HTTP 403. ErrNotCardOwner and
// ErrCardsDifferentOwners carry distinct messages so operators can tell an
// ownership mismatch from a missing privilege.
var (
	ErrForbidden            = errors.New("access forbidden")
	ErrNotCardOwner         = errors.New("card belongs to another user")
	ErrCardsDifferentOwners = errors.New("cards belong to different users")
)

// Business-rule violations map to HTTP 400.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrCardNumberFormat  = errors.New("card number must be 16 digits")
	ErrCardNumberTaken   = errors.New("card number already exists")
	ErrNegativeBalance   = errors.New("balance must not be negative")
	ErrUserExists        = errors.New("username already exists")
	ErrInvalidRole       = errors.New("unknown role")
)

// Authentication errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)
