package orderflow

import "testing"

func TestValidOrderStatusAcceptsEveryWorkflowValue(t *testing.T) {
	for _, status := range OrderStatuses() {
		if !ValidOrderStatus(status) {
			t.Fatalf("expected %q to be a valid order status", status)
		}
	}
}

func TestValidOrderStatusRejectsUnknownValues(t *testing.T) {
	for _, status := range []string{"", "delivered", "In review", "Done"} {
		if ValidOrderStatus(status) {
			t.Fatalf("expected %q to be rejected", status)
		}
	}
}

func TestValidPaymentStatus(t *testing.T) {
	if !ValidPaymentStatus("Paid") || !ValidPaymentStatus("Unpaid") {
		t.Fatal("expected Paid and Unpaid to be accepted")
	}
	if ValidPaymentStatus("paid") {
		t.Fatal("payment status values are case sensitive")
	}
}

func TestSettlementFieldMapsEachTypeToOneField(t *testing.T) {
	tests := []struct {
		settlementType string
		field          string
	}{
		{SettlementVendorPayment, "vendorPaymentStatus"},
		{SettlementDriverEarning, "driverEarningStatus"},
		{SettlementFloatingCash, "floatingCashStatus"},
	}

	for _, tt := range tests {
		field, err := SettlementField(tt.settlementType)
		if err != nil {
			t.Fatalf("SettlementField(%q) returned error: %v", tt.settlementType, err)
		}
		if field != tt.field {
			t.Fatalf("SettlementField(%q) = %q, want %q", tt.settlementType, field, tt.field)
		}
	}
}

func TestSettlementFieldRejectsUnknownType(t *testing.T) {
	if _, err := SettlementField("driverPayment"); err == nil {
		t.Fatal("expected error for unknown settlement type")
	}
}

func TestFloatingCashPayoutOnlyOnFloatingCashPaid(t *testing.T) {
	if !FloatingCashPayout(SettlementFloatingCash, SettlementPaid) {
		t.Fatal("expected floatingCash -> Paid to count as a payout")
	}

	tests := []struct {
		settlementType string
		status         string
	}{
		{SettlementFloatingCash, SettlementPending},
		{SettlementVendorPayment, SettlementPaid},
		{SettlementDriverEarning, SettlementPaid},
	}
	for _, tt := range tests {
		if FloatingCashPayout(tt.settlementType, tt.status) {
			t.Fatalf("FloatingCashPayout(%q, %q) = true, want false", tt.settlementType, tt.status)
		}
	}
}
