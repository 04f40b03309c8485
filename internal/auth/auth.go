// Package auth registers and logs in users, hashes their passwords and issues
// the signed session token carried in the session cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/garnizeh/jobboard/internal/apperr"
	"github.com/garnizeh/jobboard/internal/models"
	"github.com/garnizeh/jobboard/internal/validate"
	"github.com/garnizeh/jobboard/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
	MaxPasswordLen = 32

	// bcrypt ignores input past this many bytes
	maxPasswordBytes = 72
)

// Options configures a Manager.
type Options struct {
	Secret        string
	TokenDuration time.Duration
	CookieName    string
	CookieSecure  bool
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// Manager owns password hashing and session tokens.
type Manager struct {
	users        repository.UserRepo
	secret       []byte
	ttl          time.Duration
	cookieName   string
	cookieSecure bool
	cost         int
	dummyHash    []byte
	now          func() time.Time
}

func NewManager(users repository.UserRepo, opts Options) (*Manager, error) {
	if opts.Secret == "" {
		return nil, errors.New("auth: empty secret")
	}
	if opts.TokenDuration <= 0 {
		return nil, errors.New("auth: token duration must be positive")
	}
	if opts.CookieName == "" {
		opts.CookieName = "token"
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}

	// compared against when the email is unknown so both paths cost one bcrypt run
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), opts.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("auth: dummy hash: %w", err)
	}

	return &Manager{
		users:        users,
		secret:       []byte(opts.Secret),
		ttl:          opts.TokenDuration,
		cookieName:   opts.CookieName,
		cookieSecure: opts.CookieSecure,
		cost:         opts.BcryptCost,
		dummyHash:    dummy,
		now:          time.Now,
	}, nil
}

// Registration is the input of Register.
type Registration struct {
	Name     string
	Email    string
	Phone    string
	Password string
	Role     string
}

// Session is an issued token and the instant it stops being accepted.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Register creates a user and opens a session for it.
func (m *Manager) Register(ctx context.Context, in Registration) (*models.User, Session, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.Password == "" || in.Role == "" {
		return nil, Session{}, apperr.Validation("please fill the full registration form")
	}

	u := &models.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Email:     NormalizeEmail(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      models.Role(in.Role),
		CreatedAt: m.now().UTC().Truncate(time.Millisecond),
	}
	if err := validate.Struct(u); err != nil {
		return nil, Session{}, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, Session{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), m.cost)
	if err != nil {
		return nil, Session{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := m.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, Session{}, apperr.ErrDuplicateEmail
		}
		return nil, Session{}, fmt.Errorf("create user: %w", err)
	}

	s, err := m.Issue(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	return u, s, nil
}

// Login checks email, password and role together. Any mismatch yields
// apperr.ErrInvalidCredentials without saying which part was wrong.
func (m *Manager) Login(ctx context.Context, email, password, role string) (*models.User, Session, error) {
	if email == "" || password == "" || role == "" {
		return nil, Session{}, apperr.Validation("please provide email, password and role")
	}

	u, err := m.users.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, Session{}, fmt.Errorf("lookup user: %w", err)
	}

	hash := m.dummyHash
	if u != nil {
		hash = []byte(u.PasswordHash)
	}
	pwErr := bcrypt.CompareHashAndPassword(hash, []byte(password))
	want, roleErr := models.ParseRole(role)
	if u == nil || pwErr != nil || roleErr != nil || u.Role != want {
		return nil, Session{}, apperr.ErrInvalidCredentials
	}

	s, err := m.Issue(u.ID)
	if err != nil {
		return nil, Session{}, err
	}
	return u, s, nil
}

// Issue signs a token for userID that expires TokenDuration from now.
func (m *Manager) Issue(userID string) (Session, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	return Session{Token: signed, ExpiresAt: exp}, nil
}

// ResolveSession verifies the signature and expiry of token and returns the
// user id it was issued for. ok is false for any missing, malformed, expired
// or tampered token.
func (m *Manager) ResolveSession(token string) (userID string, ok bool) {
	if token == "" {
		return "", false
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// NormalizeEmail trims and lowercases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkPassword(pw string) error {
	n := utf8.RuneCountInString(pw)
	switch {
	case n < MinPasswordLen:
		return apperr.Validation("password must contain at least %d characters", MinPasswordLen)
	case n > MaxPasswordLen || len(pw) > maxPasswordBytes:
		return apperr.Validation("password cannot exceed %d characters", MaxPasswordLen)
	}
	return nil
}
