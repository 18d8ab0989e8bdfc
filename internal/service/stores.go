// Package service holds the business rules: registration and login, role-scoped
// feedback access, and rating analytics. Stores, caches, token issuing and event
// publishing are injected at construction.
package service

import (
	"context" // Request context for stores
	"time"    // Date bounds

	"feedback_system/internal/domain" // Custom import path (Models)
)

// UserStore persists users. ByEmail returns the password hash too.
type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	ByEmail(ctx context.Context, email string) (*domain.User, error)
}

// FeedbackStore persists and queries feedback records.
type FeedbackStore interface {
	Create(ctx context.Context, f *domain.Feedback) error
	ByID(ctx context.Context, id string) (*domain.Feedback, error)
	Find(ctx context.Context, f domain.FeedbackFilter, offset, limit int) ([]domain.Feedback, error)
	Count(ctx context.Context, f domain.FeedbackFilter) (int64, error)
}

// AnalyticsStore runs the aggregate queries. Averages come back unrounded.
type AnalyticsStore interface {
	RatingSummary(ctx context.Context) (*domain.RatingSummary, error)
	DailyStats(ctx context.Context, from, to *time.Time) ([]domain.DailyStat, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	GenerateToken(userID string, role domain.Role) (string, error)
}

// Cache is a JSON result cache keyed by string.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	DeletePrefix(ctx context.Context, prefix string) error
}
