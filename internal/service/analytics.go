package service

import (
	"context" // Request context for stores and cache
	"time"    // Date range bounds

	"feedback_system/internal/domain" // Custom import path (Models)

	"github.com/shopspring/decimal" // Decimal rounding
	"github.com/sirupsen/logrus"    // Logrus for structured logging
)

const (
	analyticsCachePrefix = "analytics:"                              // Every analytics key starts with this
	averageRatingKey     = analyticsCachePrefix + "average-rating"   // Whole-store summary
	feedbackPerDayKey    = analyticsCachePrefix + "feedback-per-day" // Suffixed with the date range
)

// AnalyticsService computes rating aggregates. Access is restricted to admins by the caller.
type AnalyticsService struct {
	store AnalyticsStore // Aggregate queries
	cache Cache          // Optional read-through cache
}

// NewAnalyticsService builds an AnalyticsService. cache may be nil.
func NewAnalyticsService(store AnalyticsStore, cache Cache) *AnalyticsService {
	return &AnalyticsService{store: store, cache: cache}
}

// AverageRating aggregates every record as one group. An empty store yields a zero
// average and nil min/max.
func (s *AnalyticsService) AverageRating(ctx context.Context) (*domain.RatingSummary, error) {
	var cached domain.RatingSummary
	if s.fromCache(ctx, averageRatingKey, &cached) {
		return &cached, nil // Cache hit
	}
	summary, err := s.store.RatingSummary(ctx)
	if err != nil {
		return nil, err
	}
	summary.AverageRating = roundRating(summary.AverageRating)
	s.toCache(ctx, averageRatingKey, summary)
	return summary, nil
}

// FeedbackPerDay returns per-day counts and averages, oldest day first. from and to
// are optional inclusive bounds on the creation time.
func (s *AnalyticsService) FeedbackPerDay(ctx context.Context, from, to *time.Time) ([]domain.DailyStat, error) {
	key := feedbackPerDayKey + ":from=" + cacheTime(from) + ":to=" + cacheTime(to) // One entry per range
	var cached []domain.DailyStat
	if s.fromCache(ctx, key, &cached) {
		return cached, nil // Cache hit
	}
	stats, err := s.store.DailyStats(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []domain.DailyStat{} // Render as [] rather than null
	}
	for i := range stats {
		stats[i].AverageRating = roundRating(stats[i].AverageRating)
	}
	s.toCache(ctx, key, stats)
	return stats, nil
}

// fromCache loads key into dest. Cache errors count as a miss.
func (s *AnalyticsService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Analytics cache read failed")
		return false
	}
	return found
}

func (s *AnalyticsService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("Analytics cache write failed")
	}
}

// roundRating rounds to two decimals, halves away from zero, on the shortest decimal
// form of v so that 2.675 becomes 2.68.
func roundRating(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func cacheTime(t *time.Time) string {
	if t == nil {
		return "-" // Open bound
	}
	return t.UTC().Format(time.RFC3339Nano)
}
