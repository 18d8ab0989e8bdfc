package api

import (
	"context"  // Health ping
	"net/http" // HTTP status codes
	"time"     // Start time for uptime

	"feedback_system/internal/middleware" // Authentication and logging middleware
	"feedback_system/internal/service"    // Use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// Deps are the collaborators the HTTP layer needs
type Deps struct {
	Auth           *service.AuthService        // Register and login
	Feedback       *service.FeedbackService    // Submit and list
	Analytics      *service.AnalyticsService   // Aggregates
	Tokens         middleware.TokenVerifier    // Bearer token verification
	Ping           func(context.Context) error // Database check for /api/health, optional
	Environment    string                      // Reported by /api/health
	TrustedProxies []string                    // Proxies allowed to set client IP headers
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) (*gin.Engine, error) {
	registerFieldNames()

	r := gin.New()                                    // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger()) // Recover panics, log through logrus
	if err := r.SetTrustedProxies(d.TrustedProxies); err != nil {
		return nil, err
	}

	apiGroup := r.Group("/api")
	apiGroup.GET("/health", HealthHandler(time.Now(), d.Environment, d.Ping)) // Health endpoint

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.POST("/register", RegisterHandler(d.Auth)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Auth))       // Login endpoint

	// Feedback routes (protected by JWT)
	feedbackGroup := apiGroup.Group("/feedback", middleware.JWTAuthMiddleware(d.Tokens))
	feedbackGroup.POST("", SubmitFeedbackHandler(d.Feedback)) // Submit endpoint
	feedbackGroup.GET("", ListFeedbackHandler(d.Feedback))    // List endpoint, scoped by role

	// Analytics routes (protected, admin only)
	analyticsGroup := apiGroup.Group("/analytics", middleware.JWTAuthMiddleware(d.Tokens), middleware.AdminOnlyMiddleware())
	analyticsGroup.GET("/average-rating", AverageRatingHandler(d.Analytics))    // Rating summary endpoint
	analyticsGroup.GET("/feedback-per-day", FeedbackPerDayHandler(d.Analytics)) // Per-day stats endpoint

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found", "path": c.Request.URL.Path})
	})
	return r, nil
}
