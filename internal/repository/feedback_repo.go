package repository

import (
	"context"      // Request-scoped queries
	"database/sql" // Nullable aggregate columns
	"time"         // Date bounds

	"feedback_system/internal/domain" // Importing domain models

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// FeedbackRepo is the feedback store backed by GORM
type FeedbackRepo struct{ db *gorm.DB }

// NewFeedbackRepo builds a FeedbackRepo
func NewFeedbackRepo(db *gorm.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// withCreator resolves the creator to id, name and email only
func withCreator(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Creator", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name", "email")
	})
}

// applyFilter chains the filter onto a query
func applyFilter(q *gorm.DB, f domain.FeedbackFilter) *gorm.DB {
	if f.CreatedByID != "" {
		q = q.Where("created_by_id = ?", f.CreatedByID) // Filter by creator
	}
	if f.Rating != 0 {
		q = q.Where("rating = ?", f.Rating) // Filter by rating
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source) // Filter by source
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", f.From.UTC()) // Filter by start date
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", f.To.UTC()) // Filter by end date
	}
	return q
}

// Create inserts a feedback record
func (r *FeedbackRepo) Create(ctx context.Context, f *domain.Feedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	// Omit the association so the creator row is never upserted
	if err := r.db.WithContext(ctx).Omit("Creator").Create(f).Error; err != nil {
		return domain.WrapError(domain.ErrInternal, "failed to save feedback", err)
	}
	return nil
}

// ByID loads one feedback record with its creator resolved
func (r *FeedbackRepo) ByID(ctx context.Context, id string) (*domain.Feedback, error) {
	var f domain.Feedback
	if err := withCreator(r.db.WithContext(ctx)).First(&f, "id = ?", id).Error; err != nil {
		return nil, translate(err, "feedback")
	}
	return &f, nil
}

// Find returns one page of matching feedback, most recent first
func (r *FeedbackRepo) Find(ctx context.Context, f domain.FeedbackFilter, offset, limit int) ([]domain.Feedback, error) {
	var out []domain.Feedback
	q := applyFilter(r.db.WithContext(ctx).Model(&domain.Feedback{}), f)
	if err := withCreator(q).Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "failed to fetch feedback", err)
	}
	return out, nil
}

// Count returns the number of records matching the filter
func (r *FeedbackRepo) Count(ctx context.Context, f domain.FeedbackFilter) (int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&domain.Feedback{}), f).Count(&total).Error; err != nil {
		return 0, domain.WrapError(domain.ErrInternal, "failed to count feedback", err)
	}
	return total, nil
}

// RatingSummary aggregates every record as one group. The average is not rounded.
func (r *FeedbackRepo) RatingSummary(ctx context.Context) (*domain.RatingSummary, error) {
	var row struct {
		Total     int64
		Average   sql.NullFloat64
		MinRating sql.NullInt64
		MaxRating sql.NullInt64
	}
	err := r.db.WithContext(ctx).Model(&domain.Feedback{}).
		Select("COUNT(*) AS total, AVG(rating) AS average, MIN(rating) AS min_rating, MAX(rating) AS max_rating").
		Scan(&row).Error
	if err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "failed to aggregate ratings", err)
	}
	summary := &domain.RatingSummary{TotalFeedback: row.Total}
	if row.Total == 0 {
		return summary, nil // Empty store: zero average, nil bounds
	}
	summary.AverageRating = row.Average.Float64
	if row.MinRating.Valid {
		v := int(row.MinRating.Int64)
		summary.MinRating = &v
	}
	if row.MaxRating.Valid {
		v := int(row.MaxRating.Int64)
		summary.MaxRating = &v
	}
	return summary, nil
}

// DailyStats groups records by UTC calendar day, oldest first. Averages are not rounded.
func (r *FeedbackRepo) DailyStats(ctx context.Context, from, to *time.Time) ([]domain.DailyStat, error) {
	var rows []struct {
		Day     string
		Count   int64
		Average float64
	}
	q := applyFilter(r.db.WithContext(ctx).Model(&domain.Feedback{}), domain.FeedbackFilter{From: from, To: to})
	err := q.Select(dayExpr(r.db.Dialector.Name()) + " AS day, COUNT(*) AS count, AVG(rating) AS average").
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, domain.WrapError(domain.ErrInternal, "failed to aggregate daily feedback", err)
	}
	out := make([]domain.DailyStat, len(rows))
	for i, row := range rows {
		out[i] = domain.DailyStat{Date: row.Day, Count: row.Count, AverageRating: row.Average}
	}
	return out, nil
}

// dayExpr truncates created_at to a YYYY-MM-DD string in UTC
func dayExpr(dialect string) string {
	switch dialect {
	case "postgres":
		return "to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')"
	case "sqlite":
		return "strftime('%Y-%m-%d', created_at)"
	default:
		return "DATE_FORMAT(created_at, '%Y-%m-%d')" // Sessions run with loc=UTC
	}
}
