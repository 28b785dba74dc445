package ports

import (
	"context"

	"github.com/fintrust/card-ledger/internal/core/domain"
)

// AuthService turns credentials into accounts and tokens.
type AuthService interface {
	// Register creates a user account. An empty role defaults to USER.
	Register(ctx context.Context, username, password, role string) (*domain.User, error)

	// Authenticate verifies the password and returns a signed token plus
	// the matching user.
	Authenticate(ctx context.Context, username, password string) (string, *domain.User, error)
}

// LoginGuard throttles repeated failed logins per username.
type LoginGuard interface {
	// Blocked reports whether the username is currently locked out.
	Blocked(ctx context.Context, username string) (bool, error)

	// RecordFailure counts one failed attempt.
	RecordFailure(ctx context.Context, username string) error

	// Reset clears the failure count after a successful login.
	Reset(ctx context.Context, username string) error
}
