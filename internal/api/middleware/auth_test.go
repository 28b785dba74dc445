package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/fintrust/card-ledger/internal/core/domain"
)

const testSecret = "test-secret"

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Username] = u
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.users[u.Username] = u
	return u, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdateRoles(_ context.Context, id string, roles []string) (*domain.User, error) {
	u, err := r.FindByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	u.Roles = roles
	return u, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	for name, u := range r.users {
		if u.ID == id {
			delete(r.users, name)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

func signedToken(t *testing.T, secret, sub, roles string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

// runAuth sends a request through Auth and a terminal handler that echoes
// the resolved identity.
func runAuth(t *testing.T, users *stubUserRepo, authHeader string) (*httptest.ResponseRecorder, *domain.Identity) {
	t.Helper()
	e := echo.New()
	var captured *domain.Identity
	handler := Auth(testSecret, users)(func(c echo.Context) error {
		if id, ok := IdentityFrom(c); ok {
			captured = &id
		}
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, captured
}

func TestAuth_ValidToken(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Username: "alice", Roles: []string{domain.RoleUser}})
	token := signedToken(t, testSecret, "alice", "USER", time.Hour)

	rec, id := runAuth(t, users, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	if id == nil {
		t.Fatal("identity not stored in context")
	}
	if id.UserID != "u1" || id.Username != "alice" {
		t.Errorf("unexpected identity %+v", id)
	}
	if len(id.Roles) != 1 || id.Roles[0] != domain.RoleUser {
		t.Errorf("unexpected roles %v", id.Roles)
	}
}

func TestAuth_MultipleRoles(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Username: "ops", Roles: []string{domain.RoleUser, domain.RoleAdmin}})
	token := signedToken(t, testSecret, "ops", "USER,ADMIN", time.Hour)

	rec, id := runAuth(t, users, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(id.Roles) != 2 {
		t.Errorf("expected two roles, got %v", id.Roles)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	rec, _ := runAuth(t, newStubUserRepo(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		rec, _ := runAuth(t, newStubUserRepo(), header)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Username: "alice", Roles: []string{domain.RoleUser}})
	token := signedToken(t, "other-secret", "alice", "USER", time.Hour)

	rec, _ := runAuth(t, users, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	users := newStubUserRepo(&domain.User{ID: "u1", Username: "alice", Roles: []string{domain.RoleUser}})
	token := signedToken(t, testSecret, "alice", "USER", -time.Minute)

	rec, _ := runAuth(t, users, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

// A token for a user removed from the store is rejected even when its
// signature and expiry are still good.
func TestAuth_DeletedUser(t *testing.T) {
	token := signedToken(t, testSecret, "ghost", "USER", time.Hour)

	rec, _ := runAuth(t, newStubUserRepo(), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
