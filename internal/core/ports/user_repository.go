package ports

import (
	"context"

	"github.com/fintrust/card-ledger/internal/core/domain"
)

// UserRepository is the identity store: persistence for user accounts.
// The card ledger only reads from it (ownership lookups); mutation happens
// through the user-management operations.
type UserRepository interface {
	// Create persists a new user and returns the stored record. Returns
	// domain.ErrUserExists when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// FindByID returns the user or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// FindByUsername returns the user or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindAll returns every user.
	FindAll(ctx context.Context) ([]*domain.User, error)

	// UpdateRoles replaces the user's role set and returns the updated
	// record, or domain.ErrUserNotFound.
	UpdateRoles(ctx context.Context, id string, roles []string) (*domain.User, error)

	// Delete permanently removes the user, or returns domain.ErrUserNotFound.
	Delete(ctx context.Context, id string) error
}
