package domain

import "time" // Timestamps

// Source is the channel a feedback record was collected through
type Source string

// Known sources
const (
	SourceWeb      Source = "web"
	SourceMobile   Source = "mobile"
	SourceEmail    Source = "email"
	SourceInPerson Source = "in-person"
)

// Sources lists every accepted source in display order
var Sources = []Source{SourceWeb, SourceMobile, SourceEmail, SourceInPerson}

// Valid reports whether s is one of the known sources
func (s Source) Valid() bool {
	for _, known := range Sources {
		if s == known {
			return true
		}
	}
	return false
}

// Rating and comment bounds
const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 3
	MaxCommentLength = 1000
)

// Feedback Model
type Feedback struct {
	ID          string    `gorm:"primaryKey;size:36"`                                          // Primary key (uuid)
	Rating      int       `gorm:"not null;index;index:idx_feedback_rating_created,priority:1"` // 1..5
	Comment     string    `gorm:"size:1000;not null"`                                          // Trimmed comment
	Source      Source    `gorm:"size:16;not null;index"`                                      // Collection channel
	CreatedByID string    `gorm:"size:36;not null;index"`                                      // Foreign key to User
	Creator     *User     `gorm:"foreignKey:CreatedByID"`                                      // Resolved creator (id, name, email only)
	CreatedAt   time.Time `gorm:"index;index:idx_feedback_rating_created,priority:2"`          // Creation timestamp (UTC)
	UpdatedAt   time.Time // Update timestamp (UTC)
}

// FeedbackFilter narrows a feedback query. Zero values mean "no restriction".
type FeedbackFilter struct {
	CreatedByID string     // Restrict to one creator
	Rating      int        // Exact rating
	Source      Source     // Exact source
	From        *time.Time // Inclusive lower bound on CreatedAt
	To          *time.Time // Inclusive upper bound on CreatedAt
}

// RatingSummary is the ungrouped aggregate over all feedback
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalFeedback int64   `json:"totalFeedback"`
	MinRating     *int    `json:"minRating"`
	MaxRating     *int    `json:"maxRating"`
}

// DailyStat is the aggregate for one UTC calendar day
type DailyStat struct {
	Date          string  `json:"date"` // YYYY-MM-DD
	Count         int64   `json:"count"`
	AverageRating float64 `json:"averageRating"`
}
