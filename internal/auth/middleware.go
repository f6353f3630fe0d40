package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenHeader carries the session token on authenticated requests.
const TokenHeader = "x-access-token"

// Context keys for user data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// Middleware enforces a valid session token before protected handlers run.
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireToken returns a Gin handler that validates the x-access-token header,
// loads the user and injects their identity into the request context. Any
// failure aborts with 401 before downstream handlers see the request.
func (m *Middleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.service.ResolveToken(c.GetHeader(TokenHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": FailureReason(err),
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyUsername, user.Username)
		c.Next()
	}
}

// FailureReason maps a token validation error to the client-facing message.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrMissingToken):
		return "Token is missing!"
	case errors.Is(err, ErrTokenExpired):
		return "Token has expired"
	default:
		return "Invalid token"
	}
}

// GetUserID extracts the authenticated user's ID from the Gin context.
// Returns 0 when no user is authenticated.
func GetUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
