package servicedata

import (
	"testing"

	"github.com/evgenybelkin/service-e2e-tests/taxcalc"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedRealisticDataset(t *testing.T) {
	r := Realistic()
	require.Len(t, r.Services, 9)
	require.Len(t, r.Scenarios, 5)

	assert.Equal(t, "Консультация специалиста", r.Services[0].Name)
	assert.True(t, decimal.NewFromInt(3000).Equal(r.Services[0].Price))

	var negative, overflow int
	for _, s := range r.Services {
		if s.Price.Sign() <= 0 {
			negative++
		}
		if s.Price.GreaterThan(MaxInt) {
			overflow++
		}
	}
	assert.Equal(t, 1, negative)
	assert.Equal(t, 1, overflow)
}

func TestParseRealisticRejectsBadPrice(t *testing.T) {
	_, err := ParseRealistic([]byte("services:\n  - name: x\n    quantity: 1\n    price: abc\n"))
	assert.Error(t, err)
}

func TestParseRealisticRejectsMalformedYAML(t *testing.T) {
	_, err := ParseRealistic([]byte("services: [\n"))
	assert.Error(t, err)
}

func TestTaxTablesAgreeWithCalculator(t *testing.T) {
	for _, c := range append(FormTaxCases(), TaxPrecisionCases()...) {
		assert.True(t, c.Tax.Equal(taxcalc.ComputeTax(c.Price)), "tax for %s", c)
		assert.True(t, c.Gross.Equal(taxcalc.ComputeGross(c.Price)), "gross for %s", c)
	}
}

func TestPriceBoundaries(t *testing.T) {
	accepted := map[string]bool{}
	for _, c := range PriceBoundaries() {
		accepted[c.PriceText()] = c.Accepted
		if !c.Accepted && c.Price.Sign() <= 0 {
			assert.Equal(t, []string{MessagePriceMin}, c.Messages)
		}
	}
	assert.False(t, accepted["0"])
	assert.True(t, accepted["0.01"])
	assert.True(t, accepted["2147483647"])
	assert.False(t, accepted["2147483647.99"])
	assert.False(t, accepted["2147483648"])
	assert.False(t, accepted["-0.01"])
}

func TestCombinations(t *testing.T) {
	for _, c := range PositiveCombinations() {
		assert.True(t, c.Accepted, c.String())
		assert.NotEmpty(t, c.Name)
	}
	neg := NegativeCombinations()
	assert.Len(t, neg, 8)
	for _, c := range neg {
		assert.False(t, c.Accepted, c.String())
	}
	assert.Equal(t, "2147483648", neg[4].PriceText())
	assert.Empty(t, neg[4].Messages)
}

func TestNameLengths(t *testing.T) {
	cases := NameLengths(255)
	require.Len(t, cases, 3)
	assert.Len(t, cases[0].Name, 255)
	assert.True(t, cases[0].Accepted)
	assert.Len(t, cases[1].Name, 256)
	assert.False(t, cases[1].Accepted)
	assert.Equal(t, "name length 0", cases[2].String())
}

func TestRoundTripPrices(t *testing.T) {
	prices := RoundTripPrices()
	assert.Len(t, prices, 7)
	assert.True(t, MaxInt.Equal(prices[len(prices)-1]))
}

func TestNonexistentID(t *testing.T) {
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", NonexistentID)
}
