package orderflow

import (
	"math"

	"vendorhub/internal/models"
)

// LineTotal applies the percentage discount to one order line and rounds to
// two decimals: price * quantity * (1 - discount/100).
func LineTotal(price float64, quantity int, discount float64) float64 {
	total := price * float64(quantity) * (1 - discount/100)
	return math.Round(total*100) / 100
}

// OrderTotal recomputes the amount for an editable product list. Chat orders
// call this after every row edit instead of trusting a client-sent figure.
func OrderTotal(items []models.OrderItem) float64 {
	var total float64
	for _, item := range items {
		total += LineTotal(item.Price, item.Quantity, item.Discount)
	}
	return math.Round(total*100) / 100
}
