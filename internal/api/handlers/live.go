package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
)

type LiveHandler struct {
	liveService *service.LiveService
}

func NewLiveHandler(liveService *service.LiveService) *LiveHandler {
	return &LiveHandler{liveService: liveService}
}

// GetLive returns the current live snapshot for initial page render;
// the WebSocket feed keeps it fresh afterwards.
func (h *LiveHandler) GetLive(c *gin.Context) {
	snapshot, err := h.liveService.Snapshot()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
