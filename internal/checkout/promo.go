package checkout

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Rules maps an upper-cased promo code to its rule.
type Rules map[string]PromoRule

// Find is nil-safe for unknown or empty codes.
func (r Rules) Find(code string) *PromoRule {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	rule, ok := r[code]
	if !ok {
		return nil
	}
	return &rule
}

// DefaultRules is the built-in promo table; deployments override it from
// config wiring in main.
func DefaultRules() Rules {
	return Rules{
		"WELCOME10": {Code: "WELCOME10", Percent: 10},
		"COURSE50K": {Code: "COURSE50K", Amount: decimal.NewFromInt(50000), MinSubtotal: decimal.NewFromInt(300000)},
	}
}
