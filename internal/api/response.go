package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"feedback_system/internal/domain" // Error kinds

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Response is the envelope every endpoint answers with
type Response struct {
	Success bool   `json:"success"`        // Outcome flag
	Message string `json:"message"`        // Human readable summary
	Data    any    `json:"data,omitempty"` // Payload, omitted when nil
}

// respond writes a successful envelope
func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// fail writes a failure envelope
func fail(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: false, Message: message, Data: data})
}

// statusOf maps a domain error kind to an HTTP status
func statusOf(kind error) int {
	switch {
	case errors.Is(kind, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(kind, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(kind, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(kind, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError renders err with the status of its kind. Internal causes are logged, never exposed.
func respondError(c *gin.Context, err error) {
	status := statusOf(domain.KindOf(err))
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method, // HTTP method
			"path":   c.FullPath(),     // Route pattern
		}).Error("Request failed")
		fail(c, status, "Internal server error", nil)
		return
	}
	fail(c, status, domain.MessageOf(err, http.StatusText(status)), nil)
}
