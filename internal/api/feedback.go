package api

import (
	"net/http" // HTTP status codes
	"time"     // Timestamps

	"feedback_system/internal/domain"     // Importing domain models
	"feedback_system/internal/middleware" // Authenticated identity
	"feedback_system/internal/service"    // Feedback use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// SubmitFeedbackRequest represents a feedback submission
type SubmitFeedbackRequest struct {
	Rating  *int   `json:"rating" binding:"required,min=1,max=5"`                      // 1..5
	Comment string `json:"comment" binding:"required,min=3,max=1000"`                  // Trimmed by the service
	Source  string `json:"source" binding:"required,oneof=web mobile email in-person"` // Collection channel
}

// listFeedbackQuery holds the GET /api/feedback query string. Pointers tell "absent" from zero.
type listFeedbackQuery struct {
	Page      *int   `form:"page" binding:"omitempty,min=1"`                              // Page number
	Limit     *int   `form:"limit" binding:"omitempty,min=1,max=100"`                     // Page size
	Rating    *int   `form:"rating" binding:"omitempty,min=1,max=5"`                      // Exact rating
	Source    string `form:"source" binding:"omitempty,oneof=web mobile email in-person"` // Exact source
	StartDate string `form:"startDate"`                                                   // Inclusive lower bound
	EndDate   string `form:"endDate"`                                                     // Inclusive upper bound
}

// CreatorView is the public part of a feedback creator
type CreatorView struct {
	ID    string `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email
}

// FeedbackResponse is a feedback record as returned to clients
type FeedbackResponse struct {
	ID        string        `json:"id"`        // Feedback ID
	Rating    int           `json:"rating"`    // 1..5
	Comment   string        `json:"comment"`   // Trimmed comment
	Source    domain.Source `json:"source"`    // Collection channel
	CreatedBy *CreatorView  `json:"createdBy"` // Creator, resolved
	CreatedAt time.Time     `json:"createdAt"` // Creation timestamp
	UpdatedAt time.Time     `json:"updatedAt"` // Update timestamp
}

// FeedbackListResponse is one page of feedback
type FeedbackListResponse struct {
	Data       []FeedbackResponse `json:"data"`       // Records on this page
	Pagination service.Pagination `json:"pagination"` // Page metadata
}

// toFeedbackResponse converts a stored record, dropping everything but id, name and email of the creator
func toFeedbackResponse(f *domain.Feedback) FeedbackResponse {
	resp := FeedbackResponse{
		ID:        f.ID,
		Rating:    f.Rating,
		Comment:   f.Comment,
		Source:    f.Source,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if f.Creator != nil {
		resp.CreatedBy = &CreatorView{ID: f.Creator.ID, Name: f.Creator.Name, Email: f.Creator.Email}
	}
	return resp
}

// params validates the query and converts it to service parameters
func (q listFeedbackQuery) params() (service.ListParams, []FieldError) {
	p := service.ListParams{Source: domain.Source(q.Source)}
	if q.Page != nil {
		p.Page = *q.Page
	}
	if q.Limit != nil {
		p.Limit = *q.Limit
	}
	if q.Rating != nil {
		p.Rating = *q.Rating
	}
	var fields []FieldError
	p.StartDate, p.EndDate, fields = dateRange(q.StartDate, q.EndDate)
	return p, fields
}

// unauthenticated is returned when a handler runs without JWTAuthMiddleware identity
var unauthenticated = domain.NewError(domain.ErrUnauthorized, "User not authenticated")

// SubmitFeedbackHandler stores feedback for the authenticated user
func SubmitFeedbackHandler(feedback *service.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _, ok := middleware.CurrentUser(c) // Get userID from context
		if !ok {
			respondError(c, unauthenticated)
			return
		}
		var req SubmitFeedbackRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		created, err := feedback.Submit(c.Request.Context(), userID, *req.Rating, req.Comment, domain.Source(req.Source))
		if err != nil {
			respondError(c, err)
			return
		}
		respond(c, http.StatusCreated, "Feedback submitted successfully", toFeedbackResponse(created))
	}
}

// ListFeedbackHandler returns the feedback visible to the caller, most recent first
func ListFeedbackHandler(feedback *service.FeedbackService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := middleware.CurrentUser(c)
		if !ok {
			respondError(c, unauthenticated)
			return
		}
		var q listFeedbackQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondBindError(c, err)
			return
		}
		params, fields := q.params()
		if len(fields) > 0 {
			respondValidation(c, fields)
			return
		}
		page, err := feedback.List(c.Request.Context(), userID, role, params)
		if err != nil {
			respondError(c, err)
			return
		}
		items := make([]FeedbackResponse, 0, len(page.Data))
		for i := range page.Data {
			items = append(items, toFeedbackResponse(&page.Data[i]))
		}
		respond(c, http.StatusOK, "Feedback retrieved successfully", FeedbackListResponse{Data: items, Pagination: page.Pagination})
	}
}
