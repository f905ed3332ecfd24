package servicedef

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

func TestNewServicePayloadComputesTaxAndGross(t *testing.T) {
	p := NewServicePayload("service", 10, decimal.NewFromInt(100))
	assert.Equal(t, "22", p.Tax.String())
	assert.Equal(t, "122", p.Gross.String())
}

func TestServicePayloadEncodesNumbers(t *testing.T) {
	p := NewServicePayload("Tax test", 1, decimal.RequireFromString("250.50"))
	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Tax test","quantity":1,"price":250.5,"tax":55.11,"gross":305.61}`, string(data))
}

func TestServicePayloadWith(t *testing.T) {
	p := NewServicePayload("Test", 1, decimal.NewFromInt(100))
	v := p.With("quantity", ldvalue.String("ten"))
	assert.JSONEq(t, `{"name":"Test","quantity":"ten","price":100,"tax":22,"gross":122}`, v.JSONString())
}

func TestServicePayloadWithout(t *testing.T) {
	p := NewServicePayload("Test", 10, decimal.NewFromInt(100))
	v := p.Without("name")
	assert.JSONEq(t, `{"quantity":10,"price":100,"tax":22,"gross":122}`, v.JSONString())
}

func TestRecordFromValue(t *testing.T) {
	v := ldvalue.Parse([]byte(`{"uuid":"abc","name":"service","description":null,"quantity":10,` +
		`"price":100,"tax":"22.00","gross":122}`))
	r, err := RecordFromValue(v)
	require.NoError(t, err)
	assert.Equal(t, "abc", r.UUID)
	assert.Equal(t, "service", r.Name)
	assert.Equal(t, int64(10), r.Quantity)
	assert.True(t, decimal.NewFromInt(100).Equal(r.Price))
	assert.True(t, decimal.NewFromInt(22).Equal(r.Tax))
	assert.True(t, decimal.NewFromInt(122).Equal(r.Gross))
	assert.True(t, r.Has("description"))
	assert.False(t, r.Has("image"))
}

func TestRecordFromValueKeepsBoundaryAmountsExact(t *testing.T) {
	r, err := RecordFromValue(ldvalue.Parse([]byte(
		`{"uuid":"abc","price":2147483647,"tax":472446402.34,"gross":-2619930050.56}`)))
	require.NoError(t, err)
	assert.Equal(t, "2147483647", r.Price.String())
	assert.Equal(t, "472446402.34", r.Tax.String())
	assert.Equal(t, "-2619930050.56", r.Gross.String())
}

func TestRecordFromValueCoercesNumericName(t *testing.T) {
	r, err := RecordFromValue(ldvalue.Parse([]byte(`{"uuid":"abc","name":123}`)))
	require.NoError(t, err)
	assert.Equal(t, "123", r.Name)
}

func TestRecordFromValueRejectsBadFields(t *testing.T) {
	_, err := RecordFromValue(ldvalue.Parse([]byte(`{"uuid":"abc","quantity":"ten"}`)))
	assert.Error(t, err)

	_, err = RecordFromValue(ldvalue.Parse([]byte(`{"uuid":"abc","price":true}`)))
	assert.Error(t, err)

	_, err = RecordFromValue(ldvalue.Parse([]byte(`[1,2]`)))
	assert.Error(t, err)
}

func TestValidationErrorSet(t *testing.T) {
	s := ValidationErrorSet{
		"quantity": {"Значение «Количество» должно быть не меньше 1."},
		"name":     {"Необходимо заполнить «Наименование»."},
	}
	assert.Equal(t, []string{"name", "quantity"}, s.Fields())
	assert.True(t, s.Has("name"))
	assert.False(t, s.Has("price"))
	assert.True(t, s.AnyContains("name", "заполнить", "required"))
	assert.True(t, s.AnyContains("quantity", "НЕ МЕНЬШЕ"))
	assert.False(t, s.AnyContains("quantity", "minimum"))
	assert.Len(t, s.AllMessages(), 2)
}
