package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/pkg/repository/mock"
	"golang.org/x/crypto/bcrypt"
)

func newTestManager(t *testing.T) (*Manager, *mock.Store) {
	t.Helper()
	store := mock.NewStore()
	m, err := NewManager(store, Options{Secret: "test-secret", TokenDuration: time.Hour, BcryptCost: bcrypt.MinCost})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m, store
}

func alice() Registration {
	return Registration{Name: "Alice", Email: " Alice@X.com ", Phone: "5551234", Password: "password123", Role: string(models.RoleJobSeeker)}
}

func TestNewManager_Rejects(t *testing.T) {
	store := mock.NewStore()
	if _, err := NewManager(store, Options{TokenDuration: time.Hour}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewManager(store, Options{Secret: "s"}); err == nil {
		t.Fatalf("expected error for zero duration")
	}
}

func TestRegister(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	u, s, err := m.Register(ctx, alice())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Email != "alice@x.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.ID == "" || u.Role != models.RoleJobSeeker {
		t.Fatalf("unexpected user: %#v", u)
	}
	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Fatalf("password must be stored hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(store.Users[u.ID].PasswordHash), []byte("password123")) != nil {
		t.Fatalf("stored hash does not match password")
	}
	if id, ok := m.ResolveSession(s.Token); !ok || id != u.ID {
		t.Fatalf("session from Register does not resolve to user: %q %v", id, ok)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	m, store := newTestManager(t)
	ctx := context.Background()

	if _, _, err := m.Register(ctx, alice()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	again := alice()
	again.Email = "ALICE@x.com"
	again.Role = string(models.RoleEmployer)
	_, _, err := m.Register(ctx, again)
	if !errors.Is(err, apperr.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(store.Users) != 1 {
		t.Fatalf("expected 1 stored user, got %d", len(store.Users))
	}
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Registration)
	}{
		{"missing name", func(r *Registration) { r.Name = "" }},
		{"short name", func(r *Registration) { r.Name = "Al" }},
		{"bad email", func(r *Registration) { r.Email = "not-an-email" }},
		{"non numeric phone", func(r *Registration) { r.Phone = "555-1234" }},
		{"signed phone", func(r *Registration) { r.Phone = "-5551234" }},
		{"plus phone", func(r *Registration) { r.Phone = "+5551234" }},
		{"decimal phone", func(r *Registration) { r.Phone = "555.1234" }},
		{"short password", func(r *Registration) { r.Password = "short" }},
		{"long password", func(r *Registration) { r.Password = strings.Repeat("x", 33) }},
		{"unknown role", func(r *Registration) { r.Role = "Admin" }},
		{"missing role", func(r *Registration) { r.Role = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, store := newTestManager(t)
			in := alice()
			tt.mutate(&in)
			_, _, err := m.Register(context.Background(), in)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if apperr.Message(err) == "" {
				t.Fatalf("validation error must carry a message")
			}
			if len(store.Users) != 0 {
				t.Fatalf("no user should be stored")
			}
		})
	}
}

func TestLogin(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	reg, _, err := m.Register(ctx, alice())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		role     string
		wantErr  error
	}{
		{"ok", "alice@x.com", "password123", string(models.RoleJobSeeker), nil},
		{"ok mixed case email", "ALICE@x.com", "password123", string(models.RoleJobSeeker), nil},
		{"wrong password", "alice@x.com", "password124", string(models.RoleJobSeeker), apperr.ErrInvalidCredentials},
		{"wrong role", "alice@x.com", "password123", string(models.RoleEmployer), apperr.ErrInvalidCredentials},
		{"unknown email", "nobody@x.com", "password123", string(models.RoleJobSeeker), apperr.ErrInvalidCredentials},
		{"unknown role", "alice@x.com", "password123", "Admin", apperr.ErrInvalidCredentials},
		{"role wrong case", "alice@x.com", "password123", "job seeker", apperr.ErrInvalidCredentials},
		{"missing role", "alice@x.com", "password123", "", apperr.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, s, err := m.Login(ctx, tt.email, tt.password, tt.role)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login error: %v", err)
			}
			if u.ID != reg.ID {
				t.Fatalf("expected user %s, got %s", reg.ID, u.ID)
			}
			if id, ok := m.ResolveSession(s.Token); !ok || id != reg.ID {
				t.Fatalf("login session does not resolve: %q %v", id, ok)
			}
		})
	}
}

func TestLogin_StorageFailure(t *testing.T) {
	m, store := newTestManager(t)
	store.Err = errors.New("boom")

	_, _, err := m.Login(context.Background(), "alice@x.com", "password123", string(models.RoleJobSeeker))
	if err == nil || errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("expected unexpected error, got %v", err)
	}
}

func TestResolveSession(t *testing.T) {
	m, _ := newTestManager(t)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return base }

	s, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if !s.ExpiresAt.Equal(base.Add(time.Hour)) {
		t.Fatalf("unexpected expiry %v", s.ExpiresAt)
	}

	other, _ := NewManager(mock.NewStore(), Options{Secret: "other-secret", TokenDuration: time.Hour, BcryptCost: bcrypt.MinCost})
	other.now = m.now
	foreign, _ := other.Issue("user-1")

	tests := []struct {
		name   string
		token  string
		at     time.Time
		wantOK bool
	}{
		{"valid", s.Token, base.Add(time.Minute), true},
		{"empty", "", base, false},
		{"garbage", "not.a.token", base, false},
		{"tampered", tamper(s.Token), base, false},
		{"wrong secret", foreign.Token, base, false},
		{"expired", s.Token, base.Add(2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			at := tt.at
			m.now = func() time.Time { return at }
			id, ok := m.ResolveSession(tt.token)
			if ok != tt.wantOK {
				t.Fatalf("ResolveSession ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && id != "user-1" {
				t.Fatalf("unexpected subject %q", id)
			}
		})
	}
}

func TestCookies(t *testing.T) {
	m, _ := newTestManager(t)
	s, err := m.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	rec := httptest.NewRecorder()
	m.SetCookie(rec, s)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "token" || c.Value != s.Token || !c.HttpOnly || c.Path != "/" {
		t.Fatalf("unexpected cookie: %#v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if got := m.TokenFromRequest(req); got != s.Token {
		t.Fatalf("TokenFromRequest = %q", got)
	}
	if got := m.TokenFromRequest(httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Fatalf("expected empty token without cookie, got %q", got)
	}

	rec = httptest.NewRecorder()
	m.ClearCookie(rec)
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].Value != "" || cleared[0].MaxAge >= 0 {
		t.Fatalf("unexpected cleared cookie: %#v", cleared)
	}
}

// tamper flips the first character of the signature segment.
func tamper(token string) string {
	i := strings.LastIndex(token, ".") + 1
	c := byte('A')
	if token[i] == 'A' {
		c = 'B'
	}
	return token[:i] + string(c) + token[i+1:]
}
