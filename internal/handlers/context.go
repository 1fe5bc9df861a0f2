package handlers

import (
	"safecity/internal/models"

	"github.com/gin-gonic/gin"
)

// SessionContextKey is where the auth middleware stores the resolved
// session for downstream handlers.
const SessionContextKey = "session"

func sessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(SessionContextKey)
	if !exists {
		return nil
	}

	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}

	return session
}
