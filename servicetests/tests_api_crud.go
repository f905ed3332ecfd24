package servicetests

import (
	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/servicedata"
	"github.com/evgenybelkin/service-e2e-tests/servicedef"
	"github.com/evgenybelkin/service-e2e-tests/taxcalc"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
)

func DoAPICRUDTests(t *T) {
	t.Run("get by id", func(t *T) {
		created := t.RequireCreated(servicedef.NewServicePayload("Get test", 2, decimal.NewFromInt(200)))
		got := t.RequireRecord(t.Get(created.UUID))

		assert.Equal(t, created.UUID, got.UUID)
		assert.Equal(t, created.Name, got.Name)
		assertDecimalEqual(t, created.Price, got.Price, config.FieldPrice)
		assertDecimalEqual(t, created.Tax, got.Tax, config.FieldTax)
	})

	t.Run("replace with price change", func(t *T) {
		created := t.RequireCreated(servicedef.NewServicePayload("Replace test", 3, decimal.NewFromInt(150)))
		newPrice := decimal.NewFromInt(250)
		updated := t.RequireRecord(t.Replace(created.UUID, servicedef.NewServicePayload("Updated Service", 7, newPrice)))

		assert.Equal(t, "Updated Service", updated.Name)
		assertDecimalEqual(t, newPrice, updated.Price, config.FieldPrice)
		assertDecimalEqual(t, taxcalc.ComputeTax(newPrice), updated.Tax, config.FieldTax)
		assertDecimalEqual(t, taxcalc.ComputeGross(newPrice), updated.Gross, config.FieldGross)
	})

	t.Run("delete", func(t *T) {
		created := t.RequireCreated(servicedef.NewServicePayload("Delete test", 1, decimal.NewFromInt(100)))
		t.RequireStatus(t.Delete(created.UUID), 200, 204)
		t.RequireStatus(t.Get(created.UUID), 404)
	})

	t.Run("delete twice", func(t *T) {
		result := t.CreateService(servicedef.NewServicePayload("Delete twice test", 1, decimal.NewFromInt(100)))
		if result.Record == nil {
			t.SkipWithReason("could not create a service to delete")
		}
		id := result.Record.UUID
		t.RequireStatus(t.Delete(id), 200, 204)
		t.RequireStatus(t.Delete(id), 404, 204)
	})

	t.Run("nonexistent", func(t *T) {
		id := servicedata.NonexistentID

		t.Run("get", func(t *T) {
			t.RequireStatus(t.Get(id), 404)
		})

		t.Run("replace", func(t *T) {
			t.RequireStatus(t.Replace(id, servicedef.NewServicePayload("Test", 1, decimal.NewFromInt(100))), 404)
		})

		t.Run("delete", func(t *T) {
			t.RequireStatus(t.Delete(id), 404, 204)
		})
	})

	t.Run("round trip", func(t *T) {
		for _, p := range servicedata.RoundTripPrices() {
			price := p
			t.Run("price "+price.String(), func(t *T) {
				created := t.RequireCreated(servicedef.NewServicePayload("Round trip "+price.String(), 1, price))
				got := t.RequireRecord(t.Get(created.UUID))

				assertWithinCent(t, price, got.Price, config.FieldPrice)
				assertWithinCent(t, taxcalc.ComputeTax(price), got.Tax, config.FieldTax)
				assertWithinCent(t, taxcalc.ComputeGross(price), got.Gross, config.FieldGross)
			})
		}
	})
}
