package servicedef

import (
	"encoding/json"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/taxcalc"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ServicePayload is the request body for creating or replacing a service.
type ServicePayload struct {
	Name     string
	Quantity int64
	Price    decimal.Decimal
	Tax      decimal.Decimal
	Gross    decimal.Decimal
}

// NewServicePayload builds a payload whose tax and gross are computed from the price.
func NewServicePayload(name string, quantity int64, price decimal.Decimal) ServicePayload {
	return ServicePayload{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Tax:      taxcalc.ComputeTax(price),
		Gross:    taxcalc.ComputeGross(price),
	}
}

// MarshalJSON encodes the monetary fields as JSON numbers rather than strings.
func (p ServicePayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name     string      `json:"name"`
		Quantity int64       `json:"quantity"`
		Price    json.Number `json:"price"`
		Tax      json.Number `json:"tax"`
		Gross    json.Number `json:"gross"`
	}{
		Name:     p.Name,
		Quantity: p.Quantity,
		Price:    json.Number(p.Price.String()),
		Tax:      json.Number(p.Tax.String()),
		Gross:    json.Number(p.Gross.String()),
	})
}

// With returns the payload as a JSON object in which one property has been replaced with an
// arbitrary value. This is how request bodies with wrongly typed fields are built.
func (p ServicePayload) With(field string, value ldvalue.Value) ldvalue.Value {
	return p.build("", func(name string) (ldvalue.Value, bool) {
		if name == field {
			return value, true
		}
		return ldvalue.Null(), false
	})
}

// Without returns the payload as a JSON object with one property omitted.
func (p ServicePayload) Without(field string) ldvalue.Value {
	return p.build(field, nil)
}

func (p ServicePayload) build(omit string, override func(string) (ldvalue.Value, bool)) ldvalue.Value {
	fields := []struct {
		name  string
		value ldvalue.Value
	}{
		{config.FieldName, ldvalue.String(p.Name)},
		{config.FieldQuantity, ldvalue.Float64(float64(p.Quantity))},
		{config.FieldPrice, ldvalue.Float64(p.Price.InexactFloat64())},
		{config.FieldTax, ldvalue.Float64(p.Tax.InexactFloat64())},
		{config.FieldGross, ldvalue.Float64(p.Gross.InexactFloat64())},
	}
	b := ldvalue.ObjectBuild()
	for _, f := range fields {
		if f.name == omit {
			continue
		}
		value := f.value
		if override != nil {
			if v, ok := override(f.name); ok {
				value = v
			}
		}
		b.Set(f.name, value)
	}
	return b.Build()
}
