package middleware

import (
	"net/http" // HTTP status codes

	"feedback_system/internal/domain" // Roles

	"github.com/gin-gonic/gin" // Gin web framework
)

// RequireRole lets the request through only when the token's role is one of roles.
// It must run after JWTAuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		_, role, ok := CurrentUser(c)
		// Check if the user was authenticated at all
		if !ok {
			abort(c, http.StatusUnauthorized, "User not authenticated")
			return
		}
		// Check if user role is allowed
		if _, permitted := allowed[role]; !permitted {
			abort(c, http.StatusForbidden, "Insufficient permissions")
			return
		}
		c.Next()
	}
}

// AdminOnlyMiddleware restricts a route group to ADMIN tokens
func AdminOnlyMiddleware() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin)
}
