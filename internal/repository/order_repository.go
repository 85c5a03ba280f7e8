package repository

import (
	"encoding/json"
	"fmt"

	"github.com/TiebeBeniers/vvsrotselaar/internal/models"
	"github.com/TiebeBeniers/vvsrotselaar/pkg/database"
)

type OrderRepository struct {
	db *database.DB
}

func NewOrderRepository(db *database.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create registers a kiosk order.
func (r *OrderRepository) Create(o *models.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, naam, items, totaal, betaalmethode)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if _, err := r.db.Exec(query, o.ID, o.UserID, o.Naam, items, o.Totaal, o.Betaalmethode); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindRecent lists the latest orders, newest first.
func (r *OrderRepository) FindRecent(limit int) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, naam, items, totaal, betaalmethode, created_at
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		o := &models.Order{}
		var items []byte
		if err := rows.Scan(&o.ID, &o.UserID, &o.Naam, &items, &o.Totaal, &o.Betaalmethode, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.Items); err != nil {
				return nil, fmt.Errorf("corrupt items on order %s: %w", o.ID, err)
			}
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
