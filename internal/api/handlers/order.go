package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/TiebeBeniers/vvsrotselaar/internal/api/middleware"
	"github.com/TiebeBeniers/vvsrotselaar/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GetPriceList returns the kiosk assortment.
func (h *OrderHandler) GetPriceList(c *gin.Context) {
	c.JSON(http.StatusOK, service.PriceList)
}

type createOrderRequest struct {
	Items         []service.OrderLine `json:"items" binding:"required"`
	Betaalmethode string              `json:"betaalmethode" binding:"required"`
}

// CreateOrder registers a kiosk sale. Prices and totals come from the
// server-side price list, never from the client.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claims := middleware.GetClaims(c)
	order, err := h.orderService.Register(c.Request.Context(), claims.UserID, claims.Naam, req.Items, req.Betaalmethode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// ListOrders returns recent sales (admin).
func (h *OrderHandler) ListOrders(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))

	orders, err := h.orderService.Recent(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// NextOrder pops the oldest unfulfilled order for the bar display (admin).
func (h *OrderHandler) NextOrder(c *gin.Context) {
	order, err := h.orderService.NextInQueue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if order == nil {
		c.JSON(http.StatusOK, gin.H{"order": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// AckOrder marks a popped order as fulfilled (admin).
func (h *OrderHandler) AckOrder(c *gin.Context) {
	if err := h.orderService.AckOrder(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order fulfilled"})
}
