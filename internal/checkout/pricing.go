package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/coursekart/coursekart-api/internal/cart"
)

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

var (
	standardFee   = decimal.NewFromInt(30000)
	expressFee    = decimal.NewFromInt(50000)
	freeThreshold = decimal.NewFromInt(1000000)
)

// PromoRule is either a percentage or a fixed amount off the subtotal,
// gated on a minimum subtotal.
type PromoRule struct {
	Code        string
	Percent     int
	Amount      decimal.Decimal
	MinSubtotal decimal.Decimal
}

// Pricing is the computed breakdown shown as-you-type and persisted onto the
// order at submission.
type Pricing struct {
	Subtotal    string `json:"subtotal"`
	ShippingFee string `json:"shipping_fee"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`
}

func Subtotal(items []cart.Item) decimal.Decimal {
	sub := decimal.Zero
	for _, it := range items {
		p, err := decimal.NewFromString(it.Price)
		if err != nil {
			continue
		}
		sub = sub.Add(p.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sub
}

// ShippingFee: express is always flat; standard is flat below the free
// threshold and free at or above it. Unknown types price as standard.
func ShippingFee(shippingType string, subtotal decimal.Decimal) decimal.Decimal {
	if shippingType == ShippingExpress {
		return expressFee
	}
	if subtotal.GreaterThanOrEqual(freeThreshold) {
		return decimal.Zero
	}
	return standardFee
}

func Discount(rule *PromoRule, subtotal decimal.Decimal) decimal.Decimal {
	if rule == nil || subtotal.LessThan(rule.MinSubtotal) {
		return decimal.Zero
	}
	if rule.Percent > 0 {
		return subtotal.Mul(decimal.NewFromInt(int64(rule.Percent))).Div(decimal.NewFromInt(100))
	}
	return rule.Amount
}

// Total is subtotal + shipping − discount, clamped at zero.
func Total(subtotal, fee, discount decimal.Decimal) decimal.Decimal {
	t := subtotal.Add(fee).Sub(discount)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}

// Quote runs the whole pricing pipeline for display.
func Quote(items []cart.Item, shippingType string, rule *PromoRule) Pricing {
	sub := Subtotal(items)
	fee := ShippingFee(shippingType, sub)
	disc := Discount(rule, sub)
	return Pricing{
		Subtotal:    sub.String(),
		ShippingFee: fee.String(),
		Discount:    disc.String(),
		Total:       Total(sub, fee, disc).String(),
	}
}
