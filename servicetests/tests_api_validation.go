package servicetests

import (
	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/servicedata"
	"github.com/evgenybelkin/service-e2e-tests/servicedef"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

	"github.com/stretchr/testify/assert"
)

const invalidToken = "invalid_token_123"

func DoAPIValidationTests(t *T) {
	payload := servicedef.NewServicePayload("Test", 1, decimal.NewFromInt(100))

	t.Run("authentication", func(t *T) {
		t.Run("no token", func(t *T) {
			resp, err := t.Client().WithoutAuth().Create(t.ctx, payload)
			if err != nil {
				t.Fatalf("create request failed: %s", err)
			}
			t.RequireStatus(resp, 401, 403)
		})

		t.Run("invalid token", func(t *T) {
			resp, err := t.Client().WithToken(invalidToken).Create(t.ctx, payload)
			if err != nil {
				t.Fatalf("create request failed: %s", err)
			}
			t.RequireStatus(resp, 401, 403)
		})
	})

	t.Run("required fields", func(t *T) {
		t.Run("empty name", func(t *T) {
			result := t.CreateService(explicitPayload("", 10, "100", "22", "122"))
			messages := t.AssertValidationError(result.Response, config.FieldName)
			assertAnyContains(t, messages, config.FieldName, servicedata.RequiredHints)
		})

		t.Run("missing name", func(t *T) {
			result := t.CreateService(payload.Without(config.FieldName))
			t.AssertValidationError(result.Response, config.FieldName)
		})

		t.Run("empty JSON", func(t *T) {
			result := t.CreateService(ldvalue.ObjectBuild().Build())
			errs := t.AssertValidationErrors(result.Response)
			for _, field := range config.RequiredFields {
				assert.True(t, errs.Has(field), "no validation error for %q; errors were for %v", field, errs.Fields())
			}
		})
	})

	t.Run("minimum values", func(t *T) {
		lim := t.Config().Limits
		below := func(min decimal.Decimal) decimal.Decimal { return min.Sub(cent) }
		for _, c := range []struct {
			field string
			body  servicedef.ServicePayload
		}{
			{config.FieldQuantity, servicedef.NewServicePayload("Test", lim.QuantityMin-1, decimal.NewFromInt(100))},
			{config.FieldPrice, servicedef.NewServicePayload("Test", lim.QuantityMin, below(lim.PriceMin))},
			{config.FieldTax, withAmounts(payload, below(lim.TaxMin), payload.Gross)},
			{config.FieldGross, withAmounts(payload, payload.Tax, below(lim.GrossMin))},
		} {
			tc := c
			t.Run(tc.field, func(t *T) {
				result := t.CreateService(tc.body)
				messages := t.AssertValidationError(result.Response, tc.field)
				assertAnyContains(t, messages, tc.field, servicedata.MinimumHints)
			})
		}
	})
}

func withAmounts(p servicedef.ServicePayload, tax, gross decimal.Decimal) servicedef.ServicePayload {
	p.Tax, p.Gross = tax, gross
	return p
}

// explicitPayload builds a payload with the given amounts rather than computed ones.
func explicitPayload(name string, quantity int64, price, tax, gross string) servicedef.ServicePayload {
	return servicedef.ServicePayload{
		Name:     name,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
		Tax:      decimal.RequireFromString(tax),
		Gross:    decimal.RequireFromString(gross),
	}
}

func assertAnyContains(t *T, messages []string, field string, hints []string) bool {
	errs := servicedef.ValidationErrorSet{field: messages}
	return assert.True(t, errs.AnyContains(field, hints...),
		"expected a message for %q containing one of %q, got %q", field, hints, messages)
}
