package servicedata

import (
	"fmt"
	"strings"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/taxcalc"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Messages that the web form shows for rejected values. They are compared in lower case.
const (
	MessagePriceMin     = "значение «цена без ндс» должно быть не меньше 0.01"
	MessageQuantityMin  = "значение «количество» должно быть не меньше 1"
	MessageNameRequired = "необходимо заполнить «наименование»"
)

// Substrings that identify a kind of API validation message, in either of the languages the
// service may answer in.
var (
	RequiredHints = []string{"заполнить", "required"}
	MinimumHints  = []string{"не меньше", "minimum"}
)

// NonexistentID is an identifier that the service never assigns.
var NonexistentID = uuid.Nil.String()

// The range of the service's integer columns.
var (
	MaxInt = decimal.NewFromInt(config.DefaultLimits().MaxInt)
	MinInt = decimal.NewFromInt(config.DefaultLimits().MinInt)
)

// FormInput is a set of values typed into the service form.
type FormInput struct {
	Name     string
	Quantity decimal.Decimal
	Price    decimal.Decimal
}

// QuantityText and PriceText are the values as they are typed into the form.
func (f FormInput) QuantityText() string { return f.Quantity.String() }
func (f FormInput) PriceText() string    { return f.Price.String() }

// BoundaryCase is one row of a boundary table: an input and the expected outcome.
type BoundaryCase struct {
	FormInput
	Accepted bool
	// Messages are substrings that must appear in the error text when the input is rejected.
	Messages []string
}

func (b BoundaryCase) String() string {
	return fmt.Sprintf("price=%s qty=%s name=%q", b.PriceText(), b.QuantityText(), b.Name)
}

// TaxCase is a price and the tax and gross amounts expected for it.
type TaxCase struct {
	Price decimal.Decimal
	Tax   decimal.Decimal
	Gross decimal.Decimal
}

func (t TaxCase) String() string {
	return fmt.Sprintf("price %s", t.Price)
}

// NameLengthCase is a name of a given length and whether the service must accept it.
type NameLengthCase struct {
	Name     string
	Accepted bool
}

func (n NameLengthCase) String() string {
	return fmt.Sprintf("name length %d", len([]rune(n.Name)))
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func positive(price, quantity decimal.Decimal) BoundaryCase {
	return BoundaryCase{
		FormInput: FormInput{
			Name:     fmt.Sprintf("Позитив тест price=%s qty=%s", price, quantity),
			Quantity: quantity,
			Price:    price,
		},
		Accepted: true,
	}
}

func negative(price, quantity decimal.Decimal, name string, messages ...string) BoundaryCase {
	return BoundaryCase{
		FormInput: FormInput{Name: name, Quantity: quantity, Price: price},
		Messages:  messages,
	}
}

// PositiveCombinations are price and quantity combinations that the form must accept.
func PositiveCombinations() []BoundaryCase {
	hundred := decimal.NewFromInt(100)
	ret := []BoundaryCase{positive(decimal.NewFromInt(1), decimal.NewFromInt(1))}
	for _, q := range []int64{10, 11, 99, 100, 999, 1000, 99999, 10000, 10001} {
		ret = append(ret, positive(hundred, decimal.NewFromInt(q)))
	}
	return append(ret,
		positive(hundred, MaxInt),
		positive(MaxInt, decimal.NewFromInt(1)),
		positive(MaxInt, MaxInt),
	)
}

// NegativeCombinations are inputs that the form must reject, with the messages it must show.
// A price above the integer range is rejected without a message that is known in advance.
func NegativeCombinations() []BoundaryCase {
	one := decimal.NewFromInt(1)
	hundred := decimal.NewFromInt(100)
	return []BoundaryCase{
		negative(decimal.Zero, one, "Тест", MessagePriceMin),
		negative(dec("-100"), one, "Тест", MessagePriceMin),
		negative(hundred, decimal.Zero, "Тест", MessageQuantityMin),
		negative(hundred, dec("-1"), "Тест", MessageQuantityMin),
		negative(MaxInt.Add(one), one, "Тест"),
		negative(MinInt, one, "Тест", MessagePriceMin),
		negative(hundred, one, "", MessageNameRequired),
		negative(dec("0.009"), one, "Тест", MessagePriceMin),
	}
}

// PriceBoundaries are prices around the limits of the price column, with quantity 1.
func PriceBoundaries() []BoundaryCase {
	one := decimal.NewFromInt(1)
	var ret []BoundaryCase
	for _, p := range []struct {
		price    string
		accepted bool
		message  string
	}{
		{"0.00", false, MessagePriceMin},
		{"0.01", true, ""},
		{"0.99", true, ""},
		{"1.00", true, ""},
		{"99999.99", true, ""},
		{"100000.00", true, ""},
		{"2147483647.00", true, ""},
		{"2147483647.99", false, ""},
		{"2147483648.00", false, ""},
		{"-0.01", false, MessagePriceMin},
	} {
		price := dec(p.price)
		c := BoundaryCase{
			FormInput: FormInput{Name: "Price boundary " + p.price, Quantity: one, Price: price},
			Accepted:  p.accepted,
		}
		if p.message != "" {
			c.Messages = []string{p.message}
		}
		ret = append(ret, c)
	}
	return ret
}

// NameLengths are names at and around the length limit of the name column.
func NameLengths(maxLength int) []NameLengthCase {
	return []NameLengthCase{
		{Name: strings.Repeat("a", maxLength), Accepted: true},
		{Name: strings.Repeat("a", maxLength+1), Accepted: false},
		{Name: "", Accepted: false},
	}
}

// FormTaxCases are prices typed into the form, and the tax and gross that it must compute.
func FormTaxCases() []TaxCase {
	ret := []TaxCase{
		{dec("100"), dec("22"), dec("122")},
		{dec("250.5"), dec("55.11"), dec("305.61")},
		{dec("0.01"), dec("0"), dec("0.01")},
		{dec("1000"), dec("220"), dec("1220")},
	}
	for _, p := range []decimal.Decimal{MaxInt, MinInt} {
		ret = append(ret, TaxCase{p, taxcalc.ComputeTax(p), taxcalc.ComputeGross(p)})
	}
	return ret
}

// TaxPrecisionCases are prices whose tax and gross were worked out by hand.
func TaxPrecisionCases() []TaxCase {
	return []TaxCase{
		{dec("100"), dec("22"), dec("122")},
		{dec("250.50"), dec("55.11"), dec("305.61")},
		{dec("99.99"), dec("22"), dec("121.99")},
		{dec("1000"), dec("220"), dec("1220")},
		{dec("33.33"), dec("7.33"), dec("40.66")},
		{dec("3000"), dec("660"), dec("3660")},
		{dec("2500"), dec("550"), dec("3050")},
	}
}

// DifferentPrices are ordinary prices used to check the tax calculation of the API.
func DifferentPrices() []decimal.Decimal {
	return decimals("100", "250.50", "1000", "99.99", "1", "3000", "2500", "1500", "2000")
}

// RoundTripPrices are prices that must be stored and read back unchanged.
func RoundTripPrices() []decimal.Decimal {
	return decimals("100", "250.50", "1000", "99.99", "1", "0.01", "2147483647")
}

func decimals(values ...string) []decimal.Decimal {
	ret := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		ret = append(ret, dec(v))
	}
	return ret
}
