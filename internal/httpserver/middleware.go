package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionHeader = "X-Session-ID"

const sessionKey = "sessionID"

// createSessionHandler issues a fresh session id. All session-scoped state
// hangs off this id via the X-Session-ID header.
func createSessionHandler(c *gin.Context) {
	c.JSON(http.StatusCreated, gin.H{"sessionId": uuid.NewString()})
}

// sessionMiddleware requires a session id on state-bearing routes.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(sessionHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + sessionHeader + " header"})
			return
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}

// adminAuthMiddleware guards the admin surface with bearer tokens.
func adminAuthMiddleware(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := tokens.Validate(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set("adminEmail", claims.Email)
		c.Next()
	}
}
