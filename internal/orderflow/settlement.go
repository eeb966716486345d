package orderflow

import "fmt"

// Settlement type discriminators accepted by the admin payment-status update.
const (
	SettlementVendorPayment = "vendorPayment"
	SettlementDriverEarning = "driverEarning"
	SettlementFloatingCash  = "floatingCash"
)

// SettlementField maps a settlement type to the single order field it is
// allowed to touch. One update call never writes more than one of these.
func SettlementField(settlementType string) (string, error) {
	switch settlementType {
	case SettlementVendorPayment:
		return "vendorPaymentStatus", nil
	case SettlementDriverEarning:
		return "driverEarningStatus", nil
	case SettlementFloatingCash:
		return "floatingCashStatus", nil
	default:
		return "", fmt.Errorf("unknown settlement type: %s", settlementType)
	}
}

// FloatingCashPayout reports whether a settlement write pays out floating
// cash, the one transition that also adjusts the driver's held amount.
func FloatingCashPayout(settlementType, status string) bool {
	return settlementType == SettlementFloatingCash && status == SettlementPaid
}
