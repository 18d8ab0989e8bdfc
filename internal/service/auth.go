package service

import (
	"context"      // Request context for stores
	"errors"       // Error matching
	"regexp"       // Email shape check
	"strings"      // Input normalization
	"sync"         // Lazy dummy hash
	"unicode/utf8" // Rune-counted lengths

	"feedback_system/internal/domain" // Custom import path (Models)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`) // local@domain.tld

// Registration bounds
const (
	MinNameLength     = 2
	MaxNameLength     = 100
	MinPasswordLength = 6
	MaxPasswordBytes  = 72 // bcrypt input limit
)

const invalidCredentials = "Invalid email or password" // Same message for both login failures

// UserView is a user without credential material.
type UserView struct {
	ID    string      `json:"id"`    // Opaque user id
	Name  string      `json:"name"`  // Display name
	Email string      `json:"email"` // Lowercased email
	Role  domain.Role `json:"role"`  // USER or ADMIN
}

func newUserView(u *domain.User) *UserView {
	return &UserView{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	User  *UserView `json:"user"`  // Authenticated user
	Token string    `json:"token"` // Signed JWT
}

// AuthService registers and authenticates users.
type AuthService struct {
	users  UserStore      // Credential store
	hasher PasswordHasher // Password hashing
	tokens TokenIssuer    // JWT signing

	dummyOnce sync.Once
	dummyHash string // Compared against on unknown emails so both failures cost the same
}

// NewAuthService builds an AuthService. A nil hasher means bcrypt at default cost.
func NewAuthService(users UserStore, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	if hasher == nil {
		hasher = BcryptHasher{} // Default cost
	}
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a USER account. An existing email yields domain.ErrConflict.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*UserView, error) {
	return s.create(ctx, name, email, password, domain.RoleUser)
}

// Login verifies credentials and issues a token. Unknown email and wrong password
// fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.hasher.Verify(s.dummy(), password) // Burn the same time as a real comparison
			return nil, domain.NewError(domain.ErrUnauthorized, invalidCredentials)
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, domain.NewError(domain.ErrUnauthorized, invalidCredentials) // Wrong password
	}
	token, err := s.tokens.GenerateToken(u.ID, u.Role)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "failed to generate token", err)
	}
	return &LoginResult{User: newUserView(u), Token: token}, nil
}

// EnsureAdmin creates an ADMIN account unless the email is already taken.
// The bool reports whether an account was created.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (*UserView, bool, error) {
	existing, err := s.users.ByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return newUserView(existing), false, nil // Already present, left untouched
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	u, err := s.create(ctx, name, email, password, domain.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}

func (s *AuthService) create(ctx context.Context, name, email, password string, role domain.Role) (*UserView, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err := s.users.ByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.NewError(domain.ErrConflict, "Email already registered")
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(password) // Hash the password
	if err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "failed to hash password", err)
	}
	u := &domain.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	// A concurrent registration can still win the race; the store reports it as a conflict
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id": u.ID,
		"role":    u.Role,
	}).Info("User registered")
	return newUserView(u), nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("feedback-system-dummy-password")
	})
	return s.dummyHash
}

func validateRegistration(name, email, password string) error {
	if n := utf8.RuneCountInString(name); n < MinNameLength || n > MaxNameLength {
		return domain.NewError(domain.ErrInvalid, "Name must be between 2 and 100 characters")
	}
	if !emailPattern.MatchString(email) {
		return domain.NewError(domain.ErrInvalid, "Please provide a valid email address")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return domain.NewError(domain.ErrInvalid, "Password must be at least 6 characters")
	}
	if len(password) > MaxPasswordBytes {
		return domain.NewError(domain.ErrInvalid, "Password must be at most 72 bytes")
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
