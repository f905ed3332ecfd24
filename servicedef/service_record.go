package servicedef

import (
	"fmt"

	"github.com/evgenybelkin/service-e2e-tests/config"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// ServiceRecord is a service as returned by the API.
//
// Monetary fields may be encoded by the service either as JSON numbers or as numeric strings.
// Fields keeps the decoded JSON object, so that tests can check for the presence of properties
// that ServiceRecord does not model.
type ServiceRecord struct {
	UUID        string
	Name        string
	Description string
	Quantity    int64
	Price       decimal.Decimal
	Tax         decimal.Decimal
	Gross       decimal.Decimal
	Fields      ldvalue.Value
}

// RecordFromValue decodes a ServiceRecord from a JSON object. Missing fields are left at their
// zero values; a field that is present but cannot be interpreted is an error.
func RecordFromValue(v ldvalue.Value) (ServiceRecord, error) {
	if v.Type() != ldvalue.ObjectType {
		return ServiceRecord{}, fmt.Errorf("expected a JSON object for a service record, got %s", v.JSONString())
	}
	r := ServiceRecord{
		UUID:        stringField(v, config.FieldUUID),
		Name:        stringField(v, config.FieldName),
		Description: stringField(v, "description"),
		Fields:      v,
	}

	if q := v.GetByKey(config.FieldQuantity); !q.IsNull() {
		n, err := decimalFromValue(q)
		if err != nil || !n.IsInteger() {
			return r, fmt.Errorf("invalid %q in service record: %s", config.FieldQuantity, q.JSONString())
		}
		r.Quantity = n.IntPart()
	}
	for _, f := range []struct {
		name string
		dest *decimal.Decimal
	}{
		{config.FieldPrice, &r.Price},
		{config.FieldTax, &r.Tax},
		{config.FieldGross, &r.Gross},
	} {
		fv := v.GetByKey(f.name)
		if fv.IsNull() {
			continue
		}
		d, err := decimalFromValue(fv)
		if err != nil {
			return r, fmt.Errorf("invalid %q in service record: %w", f.name, err)
		}
		*f.dest = d
	}
	return r, nil
}

// Has returns true if the decoded object had the named property, even if its value was null.
func (r ServiceRecord) Has(field string) bool {
	for _, k := range r.Fields.Keys() {
		if k == field {
			return true
		}
	}
	return false
}

func (r ServiceRecord) String() string {
	return fmt.Sprintf("service %s %q (quantity=%d, price=%s, tax=%s, gross=%s)",
		r.UUID, r.Name, r.Quantity, r.Price, r.Tax, r.Gross)
}

// stringField returns a string property, or the JSON representation of a non-string property,
// since the service has been seen to coerce names given as numbers.
func stringField(v ldvalue.Value, name string) string {
	fv := v.GetByKey(name)
	switch fv.Type() {
	case ldvalue.NullType:
		return ""
	case ldvalue.StringType:
		return fv.StringValue()
	default:
		return fv.JSONString()
	}
}

// decimalFromValue converts a number or numeric string. JSON numbers have already been parsed
// into a float64 by ldvalue, and the shortest text that round-trips the float is converted, which
// is exact for amounts of up to 15 significant digits.
func decimalFromValue(v ldvalue.Value) (decimal.Decimal, error) {
	switch v.Type() {
	case ldvalue.NumberType:
		return decimal.NewFromString(v.JSONString())
	case ldvalue.StringType:
		return decimal.NewFromString(v.StringValue())
	default:
		return decimal.Decimal{}, fmt.Errorf("not a number: %s", v.JSONString())
	}
}
