package api

import (
	"net/http" // HTTP status codes

	"feedback_system/internal/service" // Analytics use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// feedbackPerDayQuery holds the optional date range
type feedbackPerDayQuery struct {
	StartDate string `form:"startDate"` // Inclusive lower bound
	EndDate   string `form:"endDate"`   // Inclusive upper bound
}

// AverageRatingHandler returns the global rating summary
func AverageRatingHandler(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := analytics.AverageRating(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Average rating retrieved successfully", summary)
	}
}

// FeedbackPerDayHandler returns per-day counts and averages, oldest day first
func FeedbackPerDayHandler(analytics *service.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q feedbackPerDayQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindError(c, err)
			return
		}
		from, to, fields := dateRange(q.StartDate, q.EndDate)
		if len(fields) > 0 {
			respondValidation(c, fields)
			return
		}
		stats, err := analytics.FeedbackPerDay(c.Request.Context(), from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusOK, "Feedback per day retrieved successfully", stats)
	}
}
