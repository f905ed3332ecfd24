package config

import (
	"math"

	"github.com/shopspring/decimal"
)

// Field names used by the service in request bodies and validation errors.
const (
	FieldUUID     = "uuid"
	FieldName     = "name"
	FieldQuantity = "quantity"
	FieldPrice    = "price"
	FieldTax      = "tax"
	FieldGross    = "gross"

	// CollectionField and PaginationField appear in the list-shaped response envelope.
	CollectionField = "data"
	PaginationField = "pagination"
)

// RequiredFields are the fields that the service reports as missing for an empty request body.
var RequiredFields = []string{FieldName, FieldQuantity, FieldPrice, FieldTax, FieldGross}

// Limits are the validation bounds of the service's database columns and business rules.
type Limits struct {
	NameMaxLength int
	MinInt        int64
	MaxInt        int64
	QuantityMin   int64
	TaxRate       decimal.Decimal
	PriceMin      decimal.Decimal
	TaxMin        decimal.Decimal
	GrossMin      decimal.Decimal
}

func DefaultLimits() Limits {
	return Limits{
		NameMaxLength: 255,
		MinInt:        math.MinInt32,
		MaxInt:        math.MaxInt32,
		QuantityMin:   1,
		TaxRate:       decimal.RequireFromString("0.22"),
		PriceMin:      decimal.RequireFromString("0.01"),
		TaxMin:        decimal.RequireFromString("0.01"),
		GrossMin:      decimal.RequireFromString("0.01"),
	}
}
