package repository

import (
	"context" // Request-scoped queries
	"errors"  // Error matching
	"strings" // Email normalization

	"feedback_system/internal/domain" // Importing domain models

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// UserRepo is the credential store backed by GORM
type UserRepo struct{ db *gorm.DB }

// NewUserRepo builds a UserRepo
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user. A duplicate email surfaces as domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = normalizeEmail(u.Email) // Lowercase to keep uniqueness case-insensitive
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.WrapError(domain.ErrConflict, "Email already registered", err)
		}
		return domain.WrapError(domain.ErrInternal, "failed to create user", err)
	}
	return nil
}

// ByEmail finds a user, including the password hash, by case-insensitive email
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// translate maps gorm errors onto domain error kinds
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.WrapError(domain.ErrNotFound, what+" not found", err)
	}
	return domain.WrapError(domain.ErrInternal, "failed to load "+what, err)
}
