package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shareit-backend/internal/parse"
)

// UserIDHeader carries the id of the acting user. It is trusted as-is.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "sharerUserID"

// RequireUserID rejects requests without a valid identity header and stores the id
// in the context for UserID.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parse.UserID(c.GetHeader(UserIDHeader))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": UserIDHeader + ": " + err.Error()})
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the id stored by RequireUserID.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}
