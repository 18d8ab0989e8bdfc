package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"feedback_system/internal/domain" // Roles and error messages
	"feedback_system/internal/utils"  // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// Context keys set by JWTAuthMiddleware
const (
	ContextUserID = "userID"
	ContextRole   = "role"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	VerifyToken(token string) (*utils.Claims, error)
}

// abort stops the chain with the standard failure body
func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}
		// Expected format: "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}
		claims, err := tokens.VerifyToken(parts[1]) // Parse the JWT token
		if err != nil {
			// Expired and invalid tokens are both 401, with distinct messages
			abort(c, http.StatusUnauthorized, domain.MessageOf(err, "Authentication failed"))
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store userID in context
		c.Set(ContextRole, claims.Role)     // Store role in context
		c.Next()                            // Proceed to the next handler
	}
}

// CurrentUser returns the identity stored by JWTAuthMiddleware
func CurrentUser(c *gin.Context) (string, domain.Role, bool) {
	userID := c.GetString(ContextUserID)
	v, exists := c.Get(ContextRole)
	role, _ := v.(domain.Role)
	return userID, role, exists && userID != ""
}
