package taxcalc

import (
	"fmt"
	"testing"

	"github.com/evgenybelkin/service-e2e-tests/config"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestKnownAmounts(t *testing.T) {
	for _, tc := range []struct {
		price, tax, gross string
	}{
		{"100", "22", "122"},
		{"250.50", "55.11", "305.61"},
		{"99.99", "22", "121.99"},
		{"1000", "220", "1220"},
		{"33.33", "7.33", "40.66"},
		{"3000", "660", "3660"},
		{"2500", "550", "3050"},
		{"0.01", "0", "0.01"},
		{"1", "0.22", "1.22"},
		{"2147483647", "472446402.34", "2619930049.34"},
		{"-2147483648", "-472446402.56", "-2619930050.56"},
	} {
		t.Run(tc.price, func(t *testing.T) {
			assert.True(t, d(tc.tax).Equal(ComputeTax(d(tc.price))), "tax: expected %s, got %s", tc.tax, ComputeTax(d(tc.price)))
			assert.True(t, d(tc.gross).Equal(ComputeGross(d(tc.price))), "gross: expected %s, got %s", tc.gross, ComputeGross(d(tc.price)))
		})
	}
}

func TestRoundingIsHalfAwayFromZero(t *testing.T) {
	// 0.25 * 0.22 = 0.055
	assert.Equal(t, "0.06", ComputeTax(d("0.25")).StringFixed(2))
	assert.Equal(t, "-0.06", ComputeTax(d("-0.25")).StringFixed(2))
	// 1.25 * 0.22 = 0.275
	assert.Equal(t, "0.28", ComputeTax(d("1.25")).StringFixed(2))
}

func TestRateIsTheConfiguredRate(t *testing.T) {
	assert.Equal(t, "0.22", Rate.String())
	assert.True(t, ComputeTax(d("100")).Equal(config.DefaultLimits().TaxRate.Mul(d("100"))))
}

func TestTaxMatchesIntegerCentArithmetic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(0, 99_999_999_999).Draw(t, "cents")
		price := decimal.New(cents, -Places)

		// cents*22/100, rounded half up, is the tax in cents
		taxCents := (cents*22 + 50) / 100
		expectedTax := decimal.New(taxCents, -Places)
		expectedGross := decimal.New(cents+taxCents, -Places)

		if tax := ComputeTax(price); !tax.Equal(expectedTax) {
			t.Fatalf("ComputeTax(%s) = %s, expected %s", price, tax, expectedTax)
		}
		if gross := ComputeGross(price); !gross.Equal(expectedGross) {
			t.Fatalf("ComputeGross(%s) = %s, expected %s", price, gross, expectedGross)
		}
	})
}

func TestTaxIsAntisymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(1, 99_999_999_999).Draw(t, "cents")
		price := decimal.New(cents, -Places)
		assert.True(t, ComputeTax(price.Neg()).Equal(ComputeTax(price).Neg()), fmt.Sprintf("price %s", price))
	})
}
