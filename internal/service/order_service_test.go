package service

import (
	"errors"
	"math"
	"testing"
)

func TestBuildOrderTotals(t *testing.T) {
	items, total, err := BuildOrder([]OrderLine{
		{Product: "Primus", Aantal: 2},
		{Product: "Cola", Aantal: 1},
		{Product: "Cup Refund", Aantal: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2*4.00 + 3.30 - 2*0.70
	if math.Abs(total-9.90) > 1e-9 {
		t.Errorf("expected total 9.90, got %.2f", total)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if math.Abs(items[0].Subtotaal-8.00) > 1e-9 {
		t.Errorf("expected Primus subtotal 8.00, got %.2f", items[0].Subtotaal)
	}
}

func TestBuildOrderCupRefundCap(t *testing.T) {
	tests := []struct {
		name    string
		lines   []OrderLine
		wantErr error
	}{
		{
			name: "one refund per cup drink",
			lines: []OrderLine{
				{Product: "Primus", Aantal: 1},
				{Product: "Mystic", Aantal: 1},
				{Product: "Cup Refund", Aantal: 2},
			},
		},
		{
			name: "refund without cup drink",
			lines: []OrderLine{
				{Product: "Cola", Aantal: 3},
				{Product: "Cup Refund", Aantal: 1},
			},
			wantErr: ErrRefundWithoutPurchase,
		},
		{
			name: "more refunds than cup drinks",
			lines: []OrderLine{
				{Product: "Cava of Wijn", Aantal: 1},
				{Product: "Cup Refund", Aantal: 2},
			},
			wantErr: ErrRefundWithoutPurchase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildOrder(tt.lines)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBuildOrderRejectsUnknownProduct(t *testing.T) {
	_, _, err := BuildOrder([]OrderLine{{Product: "Duvel", Aantal: 1}})
	if !errors.Is(err, ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
}

func TestBuildOrderRejectsNonPositiveQuantity(t *testing.T) {
	_, _, err := BuildOrder([]OrderLine{{Product: "Primus", Aantal: 0}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildOrderRejectsEmptyOrder(t *testing.T) {
	_, _, err := BuildOrder(nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
