package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/api/middleware"
	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
)

type MatchHandler struct {
	matchService *service.MatchService
	eventService *service.EventService
}

func NewMatchHandler(matchService *service.MatchService, eventService *service.EventService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
		eventService: eventService,
	}
}

// CreateMatch registers a planned match or a retro-entered result (admin).
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	var m models.Match
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.matchService.Create(&m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMatches returns matches, filterable by team and status.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	matches, err := h.matchService.List(
		models.Division(c.Query("team")),
		models.MatchStatus(c.Query("status")),
		limit,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// GetMatch returns one match record.
func (h *MatchHandler) GetMatch(c *gin.Context) {
	m, err := h.matchService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// UpdateMatch rewrites scheduling fields (admin).
func (h *MatchHandler) UpdateMatch(c *gin.Context) {
	var m models.Match
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.matchService.Update(c.Param("id"), &m)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMatch removes a match and its event log (admin).
func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	if err := h.matchService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Match deleted"})
}

// StartMatch begins live tracking.
func (h *MatchHandler) StartMatch(c *gin.Context) {
	m, err := h.matchService.Start(c.Request.Context(), c.Param("id"), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// PauseMatch blows the half-time whistle.
func (h *MatchHandler) PauseMatch(c *gin.Context) {
	m, err := h.matchService.Pause(c.Request.Context(), c.Param("id"), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// ResumeMatch restarts play after a pause.
func (h *MatchHandler) ResumeMatch(c *gin.Context) {
	m, err := h.matchService.Resume(c.Request.Context(), c.Param("id"), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// StartExtraTime announces extra time after a drawn regulation.
func (h *MatchHandler) StartExtraTime(c *gin.Context) {
	m, err := h.matchService.StartExtraTime(c.Request.Context(), c.Param("id"), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// EndMatch blows the final whistle.
func (h *MatchHandler) EndMatch(c *gin.Context) {
	m, err := h.matchService.End(c.Request.Context(), c.Param("id"), middleware.GetClaims(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type correctScoreRequest struct {
	ScoreThuis *int `json:"scoreThuis" binding:"required"`
	ScoreUit   *int `json:"scoreUit" binding:"required"`
}

// CorrectScore overwrites the score to fix a logging mistake.
func (h *MatchHandler) CorrectScore(c *gin.Context) {
	var req correctScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.matchService.CorrectScore(c.Param("id"), middleware.GetClaims(c), *req.ScoreThuis, *req.ScoreUit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// LogEvent records a goal, card, or substitution on a live match.
func (h *MatchHandler) LogEvent(c *gin.Context) {
	var req service.LogActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := h.eventService.LogAction(c.Request.Context(), c.Param("id"), middleware.GetClaims(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

// GetTimeline returns the match's event log grouped for display.
func (h *MatchHandler) GetTimeline(c *gin.Context) {
	groups, err := h.eventService.Timeline(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}
