package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
)

type EvenementHandler struct {
	evenementService *service.EvenementService
}

func NewEvenementHandler(evenementService *service.EvenementService) *EvenementHandler {
	return &EvenementHandler{evenementService: evenementService}
}

// bindEvenement reads the multipart form fields of a create/update call.
func bindEvenement(c *gin.Context) *models.Evenement {
	return &models.Evenement{
		Titel:        c.PostForm("titel"),
		Datum:        c.PostForm("datum"),
		Tijd:         c.PostForm("tijd"),
		Locatie:      c.PostForm("locatie"),
		Beschrijving: c.PostForm("beschrijving"),
		Link:         c.PostForm("link"),
	}
}

// ListEvenementen returns all club activities.
func (h *EvenementHandler) ListEvenementen(c *gin.Context) {
	events, err := h.evenementService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvenement returns one activity.
func (h *EvenementHandler) GetEvenement(c *gin.Context) {
	e, err := h.evenementService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CreateEvenement adds an activity, with an optional poster upload (admin).
func (h *EvenementHandler) CreateEvenement(c *gin.Context) {
	e := bindEvenement(c)

	poster, err := c.FormFile("afbeelding")
	if err != nil {
		poster = nil
	}

	created, err := h.evenementService.Create(e, poster)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEvenement rewrites an activity (admin).
func (h *EvenementHandler) UpdateEvenement(c *gin.Context) {
	e := bindEvenement(c)

	poster, err := c.FormFile("afbeelding")
	if err != nil {
		poster = nil
	}

	updated, err := h.evenementService.Update(c.Param("id"), e, poster)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEvenement removes an activity and its poster (admin).
func (h *EvenementHandler) DeleteEvenement(c *gin.Context) {
	if err := h.evenementService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evenement deleted"})
}

// GetAnnouncement returns the homepage banner text.
func (h *EvenementHandler) GetAnnouncement(c *gin.Context) {
	text, err := h.evenementService.Announcement()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}

type announcementRequest struct {
	Text string `json:"text"`
}

// SetAnnouncement replaces the banner text (admin). Empty resets to the
// default.
func (h *EvenementHandler) SetAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.evenementService.SetAnnouncement(req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
