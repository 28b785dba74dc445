package ports

import (
	"context"

	"github.com/fintrust/card-ledger/internal/core/domain"
)

// UserService defines the admin-facing user management use cases.
type UserService interface {
	// GetUser reads a single user by id. ADMIN only.
	GetUser(ctx context.Context, id domain.Identity, userID string) (*domain.User, error)

	// ListUsers returns every user. ADMIN only.
	ListUsers(ctx context.Context, id domain.Identity) ([]*domain.User, error)

	// ChangeRole replaces the user's role set with the single given role.
	// ADMIN only.
	ChangeRole(ctx context.Context, id domain.Identity, userID, role string) (*domain.User, error)

	// DeleteUser permanently removes the user. ADMIN only.
	DeleteUser(ctx context.Context, id domain.Identity, userID string) error
}
