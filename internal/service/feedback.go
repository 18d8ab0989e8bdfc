package service

import (
	"context"      // Request context for stores
	"strings"      // Comment trimming
	"time"         // Timestamps
	"unicode/utf8" // Rune-counted lengths

	"feedback_system/internal/domain" // Custom import path (Models)
	"feedback_system/internal/events" // Custom import path (Events)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Pagination bounds
const (
	DefaultPage  = 1   // First page
	DefaultLimit = 10  // Page size when none is given
	MaxLimit     = 100 // Largest accepted page size
)

// Pagination describes one page of a listing.
type Pagination struct {
	Page  int   `json:"page"`  // Current page, 1-based
	Limit int   `json:"limit"` // Page size
	Total int64 `json:"total"` // Matching records
	Pages int   `json:"pages"` // Total pages
}

// FeedbackPage is one page of feedback plus its pagination metadata.
type FeedbackPage struct {
	Data       []domain.Feedback // Records on this page
	Pagination Pagination        // Page metadata
}

// FeedbackService creates feedback and lists it with role-scoped visibility.
type FeedbackService struct {
	store     FeedbackStore    // Feedback persistence
	cache     Cache            // Optional; analytics entries are dropped on every submission
	publisher events.Publisher // Optional
	now       func() time.Time // Clock, replaced in tests
}

// NewFeedbackService builds a FeedbackService. cache and publisher may be nil.
func NewFeedbackService(store FeedbackStore, cache Cache, publisher events.Publisher) *FeedbackService {
	if publisher == nil {
		publisher = events.Noop{} // Events disabled
	}
	return &FeedbackService{store: store, cache: cache, publisher: publisher, now: time.Now}
}

// Submit validates and stores a feedback record for userID, returning it with the
// creator resolved. Nothing is stored when validation fails.
func (s *FeedbackService) Submit(ctx context.Context, userID string, rating int, comment string, source domain.Source) (*domain.Feedback, error) {
	if userID == "" {
		return nil, domain.NewError(domain.ErrUnauthorized, "User not authenticated")
	}
	comment = strings.TrimSpace(comment) // Validate the trimmed text
	if err := validateFeedback(rating, comment, source); err != nil {
		return nil, err
	}

	now := s.now().UTC() // Stored in UTC
	f := &domain.Feedback{
		Rating:      rating,
		Comment:     comment,
		Source:      source,
		CreatedByID: userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, f); err != nil {
		return nil, err // Nothing stored
	}

	logrus.WithFields(logrus.Fields{
		"feedback_id": f.ID,
		"user_id":     userID,
		"rating":      rating,
		"source":      source,
	}).Info("Feedback submitted")

	s.invalidateAnalytics(ctx)
	s.publish(ctx, f)

	created, err := s.store.ByID(ctx, f.ID) // Reload with the creator resolved
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns one page of feedback visible to the caller, most recent first.
func (s *FeedbackService) List(ctx context.Context, userID string, role domain.Role, p ListParams) (*FeedbackPage, error) {
	if err := normalizeListParams(&p); err != nil {
		return nil, err
	}
	filter, err := scopeFilter(role, userID, p)
	if err != nil {
		return nil, err
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	items, err := s.store.Find(ctx, filter, (p.Page-1)*p.Limit, p.Limit)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Feedback{} // Render as [] rather than null
	}
	return &FeedbackPage{
		Data: items,
		Pagination: Pagination{
			Page:  p.Page,
			Limit: p.Limit,
			Total: total,
			Pages: int((total + int64(p.Limit) - 1) / int64(p.Limit)), // ceil(total / limit)
		},
	}, nil
}

func (s *FeedbackService) invalidateAnalytics(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePrefix(ctx, analyticsCachePrefix); err != nil {
		logrus.WithError(err).Warn("Failed to invalidate analytics cache")
	}
}

func (s *FeedbackService) publish(ctx context.Context, f *domain.Feedback) {
	ev := events.FeedbackSubmitted{
		FeedbackID: f.ID,
		UserID:     f.CreatedByID,
		Rating:     f.Rating,
		Source:     string(f.Source),
		CreatedAt:  f.CreatedAt,
	}
	if err := s.publisher.PublishJSON(ctx, events.RKFeedbackSubmitted, ev); err != nil {
		logrus.WithFields(logrus.Fields{
			"feedback_id": f.ID,
			"error":       err.Error(),
		}).Warn("Failed to publish feedback event")
	}
}

func validateFeedback(rating int, comment string, source domain.Source) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return domain.NewError(domain.ErrInvalid, "Rating must be between 1 and 5")
	}
	if n := utf8.RuneCountInString(comment); n < domain.MinCommentLength || n > domain.MaxCommentLength {
		return domain.NewError(domain.ErrInvalid, "Comment must be between 3 and 1000 characters")
	}
	if !source.Valid() {
		return domain.NewError(domain.ErrInvalid, "Source must be one of: web, mobile, email, in-person")
	}
	return nil
}

func normalizeListParams(p *ListParams) error {
	if p.Page == 0 {
		p.Page = DefaultPage // Not set
	}
	if p.Limit == 0 {
		p.Limit = DefaultLimit // Not set
	}
	switch {
	case p.Page < 1:
		return domain.NewError(domain.ErrInvalid, "Page must be a positive integer")
	case p.Limit < 1 || p.Limit > MaxLimit:
		return domain.NewError(domain.ErrInvalid, "Limit must be between 1 and 100")
	case p.Rating != 0 && (p.Rating < domain.MinRating || p.Rating > domain.MaxRating):
		return domain.NewError(domain.ErrInvalid, "Rating must be between 1 and 5")
	case p.Source != "" && !p.Source.Valid():
		return domain.NewError(domain.ErrInvalid, "Source must be one of: web, mobile, email, in-person")
	}
	return nil
}
