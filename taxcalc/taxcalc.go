// Package taxcalc computes the tax and gross amounts that the service is expected to derive from a
// net price.
//
// All arithmetic is exact decimal arithmetic. Results are rounded to two places with half away
// from zero rounding, so 0.125 becomes 0.13 and -0.125 becomes -0.13.
package taxcalc

import (
	"github.com/evgenybelkin/service-e2e-tests/config"

	"github.com/shopspring/decimal"
)

// Places is the number of decimal places of every monetary amount.
const Places = 2

// Rate is the tax rate applied to the net price.
var Rate = config.DefaultLimits().TaxRate

// ComputeTax returns round(price * Rate, 2). Any input is accepted, including negative prices; it is up
// to the caller to decide whether the price is valid.
func ComputeTax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(Rate).Round(Places)
}

// ComputeGross returns round(price + ComputeTax(price), 2).
func ComputeGross(price decimal.Decimal) decimal.Decimal {
	return price.Add(ComputeTax(price)).Round(Places)
}
