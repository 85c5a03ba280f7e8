package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

// respondError maps service errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrUnknownProduct),
		errors.Is(err, service.ErrInvalidPaymentMethod),
		errors.Is(err, service.ErrRefundWithoutPurchase),
		errors.Is(err, service.ErrNotYetStartable),
		errors.Is(err, service.ErrExtraTimeNotOpen):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrMatchNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEvenementNotFound),
		errors.Is(err, service.ErrShiftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrMatchAlreadyLive),
		errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrShiftFull),
		errors.Is(err, service.ErrAlreadySignedUp):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		logger.Error("Internal error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
