package service

import (
	"context"
	"errors"
	"testing"

	"github.com/fintrust/card-ledger/internal/core/domain"
)

func TestUserService_GetUser(t *testing.T) {
	svc := NewUserService(fixtureUsers(), discardLogger)

	user, err := svc.GetUser(context.Background(), adminIdentity, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %s", user.Username)
	}

	if _, err := svc.GetUser(context.Background(), adminIdentity, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_GetUser_RequiresAdmin(t *testing.T) {
	svc := NewUserService(fixtureUsers(), discardLogger)

	if _, err := svc.GetUser(context.Background(), u1Identity, "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_ListUsers(t *testing.T) {
	svc := NewUserService(fixtureUsers(), discardLogger)

	users, err := svc.ListUsers(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestUserService_ChangeRole(t *testing.T) {
	repo := fixtureUsers()
	svc := NewUserService(repo, discardLogger)

	user, err := svc.ChangeRole(context.Background(), adminIdentity, "u1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleAdmin {
		t.Errorf("expected roles [ADMIN], got %v", user.Roles)
	}
}

func TestUserService_ChangeRole_InvalidRole(t *testing.T) {
	svc := NewUserService(fixtureUsers(), discardLogger)

	if _, err := svc.ChangeRole(context.Background(), adminIdentity, "u1", "WIZARD"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_DeleteUser(t *testing.T) {
	repo := fixtureUsers()
	svc := NewUserService(repo, discardLogger)
	ctx := context.Background()

	if err := svc.DeleteUser(ctx, adminIdentity, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.DeleteUser(ctx, adminIdentity, "u1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_DeleteUser_RequiresAdmin(t *testing.T) {
	svc := NewUserService(fixtureUsers(), discardLogger)

	if err := svc.DeleteUser(context.Background(), u2Identity, "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
