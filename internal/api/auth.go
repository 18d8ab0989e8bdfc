package api

import (
	"net/http" // HTTP status codes

	"feedback_system/internal/service" // Auth use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=100"`    // Display name
	Email           string `json:"email" binding:"required,email"`           // Login email
	Password        string `json:"password" binding:"required,min=6,max=72"` // Plaintext, hashed by the service
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`       // Must equal Password
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Login email
	Password string `json:"password" binding:"required"`    // Plaintext password
}

// RegisterHandler creates a USER account
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		// Verify passwords match
		if req.Password != req.PasswordConfirm {
			fail(c, http.StatusBadRequest, "Passwords do not match", nil)
			return
		}
		user, err := auth.Register(c.Request.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Conflict on a taken email
			return
		}
		respond(c, http.StatusCreated, "User registered successfully", user)
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		result, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err) // Same 401 for unknown email and wrong password
			return
		}
		respond(c, http.StatusOK, "Login successful", result)
	}
}
