package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/internal/repository"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/distributed"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/logger"
)

// CupRefundProduct is the deposit return line on the kiosk. At most one
// refund per cup drink in the same order.
const CupRefundProduct = "Cup Refund"

// PriceList is the fixed kiosk assortment. Clients send product names
// and quantities only; every price and total is computed here.
var PriceList = map[string]float64{
	"Primus":          4.00,
	"Mystic":          4.00,
	"Stella 0.0":      3.30,
	"Cava of Wijn":    5.00,
	"Plat water":      3.30,
	"Bruisend water":  3.30,
	"Cola":            3.30,
	"Cola Zero":       3.30,
	"Fanta":           3.30,
	"Fuzetea":         3.30,
	"Chips":           3.30,
	CupRefundProduct:  -0.70,
}

// cupDrinks are the products served in a deposit cup.
var cupDrinks = map[string]bool{
	"Primus":       true,
	"Mystic":       true,
	"Cava of Wijn": true,
}

// OrderService registers kiosk sales and feeds the bar display queue.
type OrderService struct {
	orderRepo *repository.OrderRepository
	queue     *distributed.RedisQueue
	clock     clock.Clock
}

func NewOrderService(orderRepo *repository.OrderRepository, queue *distributed.RedisQueue, clk clock.Clock) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		queue:     queue,
		clock:     clk,
	}
}

// OrderLine is one product/quantity pair from the kiosk.
type OrderLine struct {
	Product string `json:"product" binding:"required"`
	Aantal  int    `json:"aantal" binding:"required"`
}

// BuildOrder validates the lines against the price list and computes
// all amounts. Pure; persistence happens in Register.
func BuildOrder(lines []OrderLine) ([]models.OrderItem, float64, error) {
	if len(lines) == 0 {
		return nil, 0, fmt.Errorf("%w: order is empty", ErrInvalidInput)
	}

	items := make([]models.OrderItem, 0, len(lines))
	cupCount := 0
	refundCount := 0
	total := 0.0

	for _, line := range lines {
		prijs, ok := PriceList[line.Product]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownProduct, line.Product)
		}
		if line.Aantal <= 0 {
			return nil, 0, fmt.Errorf("%w: aantal must be positive", ErrInvalidInput)
		}

		if cupDrinks[line.Product] {
			cupCount += line.Aantal
		}
		if line.Product == CupRefundProduct {
			refundCount += line.Aantal
		}

		subtotaal := math.Round(prijs*float64(line.Aantal)*100) / 100
		items = append(items, models.OrderItem{
			Product:   line.Product,
			Aantal:    line.Aantal,
			Prijs:     prijs,
			Subtotaal: subtotaal,
		})
		total += subtotaal
	}

	if refundCount > cupCount {
		return nil, 0, ErrRefundWithoutPurchase
	}

	return items, math.Round(total*100) / 100, nil
}

// Register stores an order and pushes it onto the fulfilment queue for
// the bar display. Payment itself is handled outside, at the terminal or
// cash box; only the chosen method is recorded.
func (s *OrderService) Register(ctx context.Context, userID, naam string, lines []OrderLine, betaalmethode string) (*models.Order, error) {
	switch betaalmethode {
	case models.BetaalmethodeKaart, models.BetaalmethodePayconiq, models.BetaalmethodeCash:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, betaalmethode)
	}

	items, total, err := BuildOrder(lines)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		UserID:        userID,
		Naam:          naam,
		Items:         items,
		Totaal:        total,
		Betaalmethode: betaalmethode,
		CreatedAt:     s.clock.Now(),
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to store order: %w", err)
	}

	if s.queue != nil {
		payload, err := json.Marshal(order)
		if err == nil {
			err = s.queue.Push(ctx, &distributed.QueueItem{
				ID:       order.ID,
				Payload:  payload,
				Priority: float64(order.CreatedAt.UnixMilli()),
			})
		}
		if err != nil {
			// The order is stored; the bar can still see it in the list.
			logger.Warn("Failed to enqueue order", "orderId", order.ID, "error", err)
		}
	}

	logger.Info("Order registered",
		"orderId", order.ID,
		"totaal", order.Totaal,
		"betaalmethode", order.Betaalmethode)

	return order, nil
}

// Recent returns the latest registered orders, newest first.
func (s *OrderService) Recent(limit int) ([]*models.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	orders, err := s.orderRepo.FindRecent(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// NextInQueue pops the oldest unfulfilled order for the bar display, or
// nil when the queue is empty. Fulfilled orders must be acked.
func (s *OrderService) NextInQueue(ctx context.Context) (*models.Order, error) {
	item, err := s.queue.Pop(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pop order queue: %w", err)
	}
	if item == nil {
		return nil, nil
	}

	var order models.Order
	if err := json.Unmarshal(item.Payload, &order); err != nil {
		return nil, fmt.Errorf("failed to decode queued order: %w", err)
	}
	return &order, nil
}

// AckOrder marks a popped order as fulfilled.
func (s *OrderService) AckOrder(ctx context.Context, orderID string) error {
	return s.queue.Ack(ctx, orderID)
}
