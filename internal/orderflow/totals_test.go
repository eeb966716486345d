package orderflow

import (
	"testing"

	"vendorhub/internal/models"
)

func TestLineTotalAppliesPercentageDiscount(t *testing.T) {
	got := LineTotal(100, 2, 10)
	if got != 180.00 {
		t.Fatalf("LineTotal(100, 2, 10) = %v, want 180.00", got)
	}
}

func TestLineTotalWithoutDiscount(t *testing.T) {
	if got := LineTotal(49.99, 3, 0); got != 149.97 {
		t.Fatalf("LineTotal(49.99, 3, 0) = %v, want 149.97", got)
	}
}

func TestLineTotalRoundsToTwoDecimals(t *testing.T) {
	// 33.33 * 1 * 0.85 = 28.3305
	if got := LineTotal(33.33, 1, 15); got != 28.33 {
		t.Fatalf("LineTotal(33.33, 1, 15) = %v, want 28.33", got)
	}
}

func TestOrderTotalSumsAllLines(t *testing.T) {
	items := []models.OrderItem{
		{Price: 100, Quantity: 2, Discount: 10},
		{Price: 50, Quantity: 1, Discount: 0},
	}
	if got := OrderTotal(items); got != 230.00 {
		t.Fatalf("OrderTotal = %v, want 230.00", got)
	}
}

func TestOrderTotalEmptyList(t *testing.T) {
	if got := OrderTotal(nil); got != 0 {
		t.Fatalf("OrderTotal(nil) = %v, want 0", got)
	}
}
