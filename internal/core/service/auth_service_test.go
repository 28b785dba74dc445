package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrust/card-ledger/internal/core/domain"
)

const testSecret = "test-secret"

type stubLoginGuard struct {
	failures map[string]int
	limit    int
}

func newStubLoginGuard(limit int) *stubLoginGuard {
	return &stubLoginGuard{failures: make(map[string]int), limit: limit}
}

func (g *stubLoginGuard) Blocked(_ context.Context, username string) (bool, error) {
	return g.failures[username] >= g.limit, nil
}

func (g *stubLoginGuard) RecordFailure(_ context.Context, username string) error {
	g.failures[username]++
	return nil
}

func (g *stubLoginGuard) Reset(_ context.Context, username string) error {
	delete(g.failures, username)
	return nil
}

func registeredUser(t *testing.T, repo *stubUserRepo, username, password string, roles ...string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestAuthService_Register_DefaultsToUserRole(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, testSecret, time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), "alice", "sekret1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == "" {
		t.Error("user id must be assigned")
	}
	if len(user.Roles) != 1 || user.Roles[0] != domain.RoleUser {
		t.Errorf("expected roles [USER], got %v", user.Roles)
	}
	if user.PasswordHash == "sekret1" {
		t.Error("password must not be stored in the clear")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("sekret1")) != nil {
		t.Error("stored hash does not match the password")
	}
}

func TestAuthService_Register_AdminRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, testSecret, time.Hour, discardLogger)

	user, err := svc.Register(context.Background(), "root", "sekret1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.HasRole(domain.RoleAdmin) {
		t.Errorf("expected ADMIN role, got %v", user.Roles)
	}
}

func TestAuthService_Register_UnknownRole(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, testSecret, time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), "alice", "sekret1", "SUPERUSER"); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, nil, testSecret, time.Hour, discardLogger)

	if _, err := svc.Register(context.Background(), "alice", "sekret1", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "alice", "other12", ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	repo := newStubUserRepo()
	registeredUser(t, repo, "alice", "sekret1", domain.RoleUser)
	svc := NewAuthService(repo, nil, testSecret, time.Hour, discardLogger)

	token, user, err := svc.Authenticate(context.Background(), "alice", "sekret1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected user alice, got %s", user.Username)
	}

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(testSecret), nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		t.Fatal("token must carry valid map claims")
	}
	if claims["sub"] != "alice" {
		t.Errorf("expected sub alice, got %v", claims["sub"])
	}
	if claims["roles"] != domain.RoleUser {
		t.Errorf("expected roles USER, got %v", claims["roles"])
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		t.Fatal("token must carry an expiry")
	}
	if time.Unix(int64(exp), 0).Before(time.Now()) {
		t.Error("token expired on issue")
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	registeredUser(t, repo, "alice", "sekret1", domain.RoleUser)
	svc := NewAuthService(repo, nil, testSecret, time.Hour, discardLogger)

	_, _, err := svc.Authenticate(context.Background(), "alice", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, testSecret, time.Hour, discardLogger)

	_, _, err := svc.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_ThrottledAfterFailures(t *testing.T) {
	repo := newStubUserRepo()
	registeredUser(t, repo, "alice", "sekret1", domain.RoleUser)
	guard := newStubLoginGuard(3)
	svc := NewAuthService(repo, guard, testSecret, time.Hour, discardLogger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}

	// The correct password is refused while the account is throttled.
	if _, _, err := svc.Authenticate(ctx, "alice", "sekret1"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Authenticate_SuccessResetsGuard(t *testing.T) {
	repo := newStubUserRepo()
	registeredUser(t, repo, "alice", "sekret1", domain.RoleUser)
	guard := newStubLoginGuard(3)
	svc := NewAuthService(repo, guard, testSecret, time.Hour, discardLogger)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, _, _ = svc.Authenticate(ctx, "alice", "wrong")
	}
	if _, _, err := svc.Authenticate(ctx, "alice", "sekret1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if guard.failures["alice"] != 0 {
		t.Errorf("expected failure count reset, got %d", guard.failures["alice"])
	}
}

func TestAuthService_Authenticate_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, testSecret, time.Hour, discardLogger)

	for _, tc := range [][2]string{{"", "pass"}, {"alice", ""}, {"", ""}} {
		if _, _, err := svc.Authenticate(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("(%q,%q): expected ErrInvalidCredentials, got %v", tc[0], tc[1], err)
		}
	}
}
