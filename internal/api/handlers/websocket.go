package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/websocket"
)

type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleWebSocket upgrades a viewer connection to the live feed. The
// feed is public; no authentication.
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	websocket.ServeWs(h.hub, c.Writer, c.Request)
}
