package auth

import (
	"net/http"
	"strings"

	"github.com/Mieeelll/Taskflow-To-Do-App/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const bearerPrefix = "Bearer "

const contextKeyUserID = "user_id"

// UserIDFromContext returns the current user ID set by RequireToken.
// uuid.Nil if not set.
func UserIDFromContext(c *gin.Context) uuid.UUID {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return uuid.Nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}

// RequireToken returns a middleware that validates the Authorization
// bearer token and sets the current user ID in context. If missing or
// invalid, responds with 401. Every todo route runs through this.
func RequireToken(creds *Credentials) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}
		userID, err := creds.VerifyToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		uid, err := uuid.Parse(userID)
		if err != nil {
			abortUnauthorized(c, "Invalid token payload")
			return
		}
		c.Set(contextKeyUserID, uid)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:  msg,
		Status: http.StatusUnauthorized,
	})
}
