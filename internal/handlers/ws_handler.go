package handlers

import (
	"safecity/internal/models"
	"safecity/internal/utils"
	"safecity/pkg/websocket"

	"github.com/gin-gonic/gin"
)

type WSHandler struct {
	hub *websocket.Hub
}

func NewWSHandler(hub *websocket.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
	}
}

// ModerationFeed upgrades the connection and streams moderation events
// to dashboard clients
func (h *WSHandler) ModerationFeed(c *gin.Context) {
	session := sessionFromContext(c)
	if session == nil {
		utils.UnauthorizedResponse(c)
		return
	}

	if !session.Role.HasCapability(models.CapViewAlerts) {
		utils.ForbiddenResponse(c)
		return
	}

	// on upgrade failure the upgrader has already written the response
	_ = websocket.ServeWS(h.hub, c.Writer, c.Request, session.UserID)
}
