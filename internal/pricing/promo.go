package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Promo is a discount code with its rate (0.15 = 15%).
type Promo struct {
	Code string
	Rate decimal.Decimal
}

// DefaultPromos lists the codes currently in circulation.
var DefaultPromos = []Promo{
	{Code: "MARIA", Rate: decimal.RequireFromString("0.15")},
	{Code: "FIRST", Rate: decimal.RequireFromString("0.15")},
	{Code: "MECHTA", Rate: decimal.RequireFromString("0.10")},
}

// NormalizeCode trims and upper-cases a customer-typed code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount returns floor(subtotal × rate), capped at subtotal.
func (p Promo) Discount(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() || !p.Rate.IsPositive() {
		return decimal.Zero
	}
	d := subtotal.Mul(p.Rate).Floor()
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}

// Percent renders the rate as a whole percentage, e.g. "15".
func (p Promo) Percent() string {
	return p.Rate.Mul(decimal.NewFromInt(100)).String()
}
