package utils

import (
	"errors" // Error matching
	"time"   // Time for token expiration

	"feedback_system/internal/domain" // Roles and error kinds

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// Token failure causes. Both surface as domain.ErrUnauthorized.
var (
	ErrMissingSecret = errors.New("JWT secret is not configured")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

// DefaultTokenExpiry is used when no expiry is configured
const DefaultTokenExpiry = 7 * 24 * time.Hour

// JWT Claims
type Claims struct {
	UserID               string      `json:"userId"` // Custom claim for user ID
	Role                 domain.Role `json:"role"`   // Custom claim for role
	jwt.RegisteredClaims             // Standard JWT claims
}

// TokenService issues and verifies signed bearer tokens
type TokenService struct {
	secret []byte           // HMAC signing key
	expiry time.Duration    // Token lifetime
	now    func() time.Time // Clock, replaceable in tests
}

// NewTokenService builds a TokenService. A blank secret is a configuration error.
func NewTokenService(secret string, expiry time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &TokenService{secret: []byte(secret), expiry: expiry, now: time.Now}, nil
}

// GenerateToken creates a token for a given user ID and role
func (s *TokenService) GenerateToken(userID string, role domain.Role) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := s.now()
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		Role:   role,   // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,                                // Subject mirrors the user ID
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),               // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString(s.secret)                        // Sign the token with the secret
}

// VerifyToken parses and validates a token string. Expired tokens wrap ErrTokenExpired,
// every other failure wraps ErrTokenInvalid.
func (s *TokenService) VerifyToken(tokenStr string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil // Return the secret key for validation
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), // Reject alg confusion
		jwt.WithExpirationRequired(),                                 // Tokens must carry exp
		jwt.WithTimeFunc(s.now),                                      // Use the service clock
	)
	// Check for parsing errors
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.WrapError(domain.ErrUnauthorized, "Token has expired", ErrTokenExpired)
		}
		return nil, domain.WrapError(domain.ErrUnauthorized, "Invalid token", ErrTokenInvalid)
	}
	// Validate token and required custom claims
	if !token.Valid || claims.UserID == "" || !claims.Role.Valid() {
		return nil, domain.WrapError(domain.ErrUnauthorized, "Invalid token", ErrTokenInvalid)
	}
	return claims, nil
}
