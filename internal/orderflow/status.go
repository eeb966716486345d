package orderflow

// Order workflow states. The dropdowns in the console offer every state at all
// times, so writes are checked for membership only, never for a transition
// path (Delivered back to In Review is accepted).
const (
	StatusInReview   = "In Review"
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Payment states for both regular and chat orders.
const (
	PaymentPaid   = "Paid"
	PaymentUnpaid = "Unpaid"
)

// Settlement states for vendor payouts, driver earnings and floating cash.
const (
	SettlementPending = "Pending"
	SettlementPaid    = "Paid"
)

var orderStatuses = []string{
	StatusInReview,
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// OrderStatuses returns the full workflow enum in display order.
func OrderStatuses() []string {
	out := make([]string, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

func ValidOrderStatus(s string) bool {
	for _, v := range orderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	return s == PaymentPaid || s == PaymentUnpaid
}

func ValidSettlementStatus(s string) bool {
	return s == SettlementPending || s == SettlementPaid
}
