package service

import (
	"time" // Date bounds

	"feedback_system/internal/domain" // Custom import path (Models)
)

// ListParams are the caller-supplied feedback filters. Zero values mean "not set";
// Page and Limit fall back to 1 and DefaultLimit.
type ListParams struct {
	Rating    int           // Exact rating, 0 for any
	Source    domain.Source // Exact source, empty for any
	StartDate *time.Time    // Inclusive lower bound on creation
	EndDate   *time.Time    // Inclusive upper bound on creation
	Page      int           // 1-based page
	Limit     int           // Page size
}

// scopeFilter narrows the requested filter by the caller's role before anything else
// is applied. A USER is always pinned to their own records; an ADMIN is unrestricted.
func scopeFilter(role domain.Role, userID string, p ListParams) (domain.FeedbackFilter, error) {
	var f domain.FeedbackFilter
	switch role {
	case domain.RoleUser:
		if userID == "" {
			return f, domain.NewError(domain.ErrUnauthorized, "User not authenticated")
		}
		f.CreatedByID = userID // Own records only
	case domain.RoleAdmin:
		// No creator restriction
	default:
		return f, domain.NewError(domain.ErrForbidden, "Insufficient permissions")
	}
	f.Rating = p.Rating
	f.Source = p.Source
	f.From = p.StartDate
	f.To = p.EndDate
	return f, nil
}
