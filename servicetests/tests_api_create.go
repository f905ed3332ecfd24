package servicetests

import (
	"strings"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/servicedata"
	"github.com/evgenybelkin/service-e2e-tests/servicedef"
	"github.com/evgenybelkin/service-e2e-tests/taxcalc"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

func DoAPICreateTests(t *T) {
	t.Run("create success", func(t *T) {
		payload := servicedef.NewServicePayload("Test Service", 10, decimal.NewFromInt(100))
		record := t.RequireCreated(payload)

		for _, field := range []string{config.FieldName, "description", config.FieldPrice, config.FieldTax, config.FieldGross} {
			assert.True(t, record.Has(field), "record has no %q property: %s", field, record)
		}
		assert.Equal(t, payload.Name, record.Name)
		assertDecimalEqual(t, payload.Price, record.Price, config.FieldPrice)
		assertDecimalEqual(t, payload.Tax, record.Tax, config.FieldTax)
		assertDecimalEqual(t, payload.Gross, record.Gross, config.FieldGross)
		t.Debug("Created service %s", record.UUID)
	})

	t.Run("create from example", func(t *T) {
		body := ldvalue.ObjectBuild().
			Set(config.FieldName, ldvalue.String("service")).
			Set(config.FieldQuantity, ldvalue.Int(10)).
			Set(config.FieldPrice, ldvalue.Int(100)).
			Set(config.FieldTax, ldvalue.Int(22)).
			Set(config.FieldGross, ldvalue.Int(122)).
			Build()
		result := t.CreateService(body)
		record := t.RequireRecord(result.Response)

		assert.Equal(t, "service", record.Name)
		assertDecimalEqual(t, decimal.NewFromInt(100), record.Price, config.FieldPrice)
		assertDecimalEqual(t, decimal.NewFromInt(22), record.Tax, config.FieldTax)
		assertDecimalEqual(t, decimal.NewFromInt(122), record.Gross, config.FieldGross)
	})

	t.Run("realistic services", func(t *T) {
		created := 0
		for _, s := range servicedata.Realistic().Services {
			if !s.Price.IsPositive() || s.Price.GreaterThan(servicedata.MaxInt) {
				t.Debug("Skipping %q with price %s", s.Name, s.Price)
				continue
			}
			result := t.CreateService(servicedef.NewServicePayload(s.Name, s.Quantity, s.Price))
			if result.Record != nil {
				created++
				t.Debug("Created %q: tax %s, gross %s", s.Name, result.Record.Tax, result.Record.Gross)
			} else {
				t.Debug("Could not create %q: %s: %s", s.Name, result.Response, result.Response.Body)
			}
		}
		assert.Greater(t, created, 0, "none of the realistic services could be created")
	})

	t.Run("order scenarios", func(t *T) {
		for _, s := range servicedata.Realistic().Scenarios {
			scenario := s
			t.Run(scenario.Description, func(t *T) {
				record := t.RequireCreated(servicedef.NewServicePayload(scenario.Description, scenario.Quantity, scenario.Price))
				assert.Equal(t, scenario.Quantity, record.Quantity)
				assertDecimalEqual(t, taxcalc.ComputeTax(scenario.Price), record.Tax, config.FieldTax)
				assertDecimalEqual(t, taxcalc.ComputeGross(scenario.Price), record.Gross, config.FieldGross)
			})
		}
	})

	t.Run("different prices", func(t *T) {
		for _, p := range servicedata.DifferentPrices() {
			price := p
			t.Run("price "+price.String(), func(t *T) {
				record := t.RequireCreated(servicedef.NewServicePayload("Price test "+price.String(), 1, price))
				assertDecimalEqual(t, taxcalc.ComputeTax(price), record.Tax, config.FieldTax)
				assertDecimalEqual(t, taxcalc.ComputeGross(price), record.Gross, config.FieldGross)
			})
		}
	})

	t.Run("max name length", func(t *T) {
		maxLength := t.Config().Limits.NameMaxLength
		name := strings.Repeat("A", maxLength)
		record := t.RequireCreated(servicedef.NewServicePayload(name, 1, decimal.NewFromInt(100)))
		assert.LessOrEqual(t, len([]rune(record.Name)), maxLength)
	})

	t.Run("boundary integers", func(t *T) {
		for _, c := range []struct {
			name     string
			quantity int64
			price    decimal.Decimal
		}{
			{"Large price", 1, decimal.NewFromInt(1000000)},
			{"Large quantity", 1000, decimal.NewFromInt(100)},
		} {
			result := t.CreateService(servicedef.NewServicePayload(c.name, c.quantity, c.price))
			if result.Response.IsSuccess() {
				t.Debug("%s (quantity %d, price %s) was accepted", c.name, c.quantity, c.price)
			} else {
				t.Observe("%s (quantity %d, price %s) was rejected: %s", c.name, c.quantity, c.price, result.Response)
			}
		}
	})

	t.Run("min positive values", func(t *T) {
		one := decimal.NewFromInt(1)
		record := t.RequireCreated(servicedef.NewServicePayload("Min values", 1, one))
		assert.Equal(t, int64(1), record.Quantity)
		assertDecimalEqual(t, one, record.Price, config.FieldPrice)
	})

	t.Run("tax precision", func(t *T) {
		for _, c := range servicedata.TaxPrecisionCases() {
			tc := c
			t.Run(tc.String(), func(t *T) {
				record := t.RequireCreated(servicedef.NewServicePayload("Precision test "+tc.Price.String(), 1, tc.Price))
				assertWithinCent(t, tc.Tax, record.Tax, config.FieldTax)
				assertWithinCent(t, tc.Gross, record.Gross, config.FieldGross)
			})
		}
	})
}
