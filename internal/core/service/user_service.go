package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fintrust/card-ledger/internal/core/domain"
	"github.com/fintrust/card-ledger/internal/core/ports"
)

// UserService implements the admin-facing user management operations.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) GetUser(ctx context.Context, id domain.Identity, userID string) (*domain.User, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context, id domain.Identity) ([]*domain.User, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.FindAll(ctx)
}

// ChangeRole replaces the user's role set with the single given role.
func (s *UserService) ChangeRole(ctx context.Context, id domain.Identity, userID, role string) (*domain.User, error) {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return nil, err
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	user, err := s.users.UpdateRoles(ctx, userID, []string{role})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", userID).Str("role", role).Msg("user role changed")
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id domain.Identity, userID string) error {
	if err := domain.RequireRole(id, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", userID).Msg("user deleted")
	return nil
}
