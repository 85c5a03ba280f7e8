package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/api/middleware"
	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
)

type ShiftHandler struct {
	shiftService *service.ShiftService
}

func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// ListShifts returns the whole work list.
func (h *ShiftHandler) ListShifts(c *gin.Context) {
	shifts, err := h.shiftService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// SaveShift creates or rewrites a shift slot (admin).
func (h *ShiftHandler) SaveShift(c *gin.Context) {
	var shift models.Shift
	if err := c.ShouldBindJSON(&shift); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := h.shiftService.Save(&shift)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// DeleteShift removes a slot and its signups (admin).
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	if err := h.shiftService.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shift deleted"})
}

type signUpRequest struct {
	Naam        string `json:"naam"`
	Responsible bool   `json:"responsible"`
}

// SignUp adds the member to a shift. Admins may pass a naam to pencil in
// someone without an account; such entries carry no uid.
func (h *ShiftHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := middleware.GetClaims(c)
	uid := claims.UserID
	naam := claims.Naam

	if req.Naam != "" && req.Naam != claims.Naam {
		if claims.Rol != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can add other people"})
			return
		}
		uid = ""
		naam = req.Naam
	}

	shift, err := h.shiftService.SignUp(c.Param("id"), uid, naam, req.Responsible)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}

type removeRequest struct {
	Naam string `json:"naam"`
}

// Remove takes a person off a shift: members themselves, admins anyone.
func (h *ShiftHandler) Remove(c *gin.Context) {
	var req removeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := middleware.GetClaims(c)
	uid := claims.UserID
	naam := ""

	if req.Naam != "" {
		if claims.Rol != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can remove other people"})
			return
		}
		uid = ""
		naam = req.Naam
	}

	shift, err := h.shiftService.Remove(c.Param("id"), uid, naam)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, shift)
}
