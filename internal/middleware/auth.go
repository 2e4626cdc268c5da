package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todo-be/internal/apperror"
	"todo-be/internal/jwt"
)

const (
	userIDKey    = "userID"
	userEmailKey = "userEmail"
)

// TokenVerifier validates a bearer token and returns its claims
type TokenVerifier interface {
	VerifyToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware requires a valid JWT in the Authorization header.
// The header is "<scheme> <token>"; the scheme itself is not checked.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.Fields(c.GetHeader("Authorization"))
		if len(parts) < 2 {
			_ = c.Error(apperror.Authentication(apperror.CodeInvalidToken, "Access denied", nil))
			c.Abort()
			return
		}

		claims, err := verifier.VerifyToken(parts[1])
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(userEmailKey, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user's id, or "" outside AuthMiddleware
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// UserEmail returns the authenticated user's email
func UserEmail(c *gin.Context) string {
	return c.GetString(userEmailKey)
}
