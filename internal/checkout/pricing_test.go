package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/coursekart/coursekart-api/internal/cart"
)

func TestQuote_PercentDiscountAndFlatShipping(t *testing.T) {
	t.Parallel()

	items := []cart.Item{{ProductID: 1, Quantity: 1, Price: "500000"}}
	rule := &PromoRule{Code: "WELCOME10", Percent: 10}

	got := Quote(items, ShippingStandard, rule)
	// 500000 - 50000 + 30000 = 480000
	if got.Subtotal != "500000" || got.Discount != "50000" || got.ShippingFee != "30000" || got.Total != "480000" {
		t.Fatalf("quote=%+v", got)
	}
}

func TestTotal_NeverNegative(t *testing.T) {
	t.Parallel()

	sub := decimal.NewFromInt(20000)
	fee := decimal.Zero
	disc := decimal.NewFromInt(100000)
	if got := Total(sub, fee, disc); !got.IsZero() {
		t.Fatalf("total=%s, want 0", got)
	}
}

func TestShippingFee_FreeOverThreshold(t *testing.T) {
	t.Parallel()

	if got := ShippingFee(ShippingStandard, decimal.NewFromInt(1000000)); !got.IsZero() {
		t.Fatalf("standard over threshold: %s, want 0", got)
	}
	if got := ShippingFee(ShippingStandard, decimal.NewFromInt(999999)); !got.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("standard under threshold: %s, want 30000", got)
	}
	// express is never free
	if got := ShippingFee(ShippingExpress, decimal.NewFromInt(2000000)); !got.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("express: %s, want 50000", got)
	}
}

func TestDiscount_MinSubtotalGate(t *testing.T) {
	t.Parallel()

	rule := &PromoRule{Code: "COURSE50K", Amount: decimal.NewFromInt(50000), MinSubtotal: decimal.NewFromInt(300000)}
	if got := Discount(rule, decimal.NewFromInt(200000)); !got.IsZero() {
		t.Fatalf("below gate: %s, want 0", got)
	}
	if got := Discount(rule, decimal.NewFromInt(300000)); !got.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("at gate: %s, want 50000", got)
	}
}

func TestDiscount_NilRule(t *testing.T) {
	t.Parallel()

	if got := Discount(nil, decimal.NewFromInt(500000)); !got.IsZero() {
		t.Fatalf("nil rule: %s, want 0", got)
	}
}

func TestSubtotal_SkipsUnpricedLines(t *testing.T) {
	t.Parallel()

	items := []cart.Item{
		{ProductID: 1, Quantity: 2, Price: "100000"},
		{ProductID: 2, Quantity: 3}, // no price
	}
	if got := Subtotal(items); !got.Equal(decimal.NewFromInt(200000)) {
		t.Fatalf("subtotal=%s, want 200000", got)
	}
}

func TestRules_FindIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	if rules.Find("welcome10") == nil {
		t.Fatal("lower-case code not found")
	}
	if rules.Find("") != nil || rules.Find("NOPE") != nil {
		t.Fatal("unknown codes must resolve to nil")
	}
}
