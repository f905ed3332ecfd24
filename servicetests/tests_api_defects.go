package servicetests

import (
	"strings"

	"github.com/evgenybelkin/service-e2e-tests/apiclient"
	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/servicedata"
	"github.com/evgenybelkin/service-e2e-tests/servicedef"

	"github.com/shopspring/decimal"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// DoAPIKnownDefectTests covers inputs that the service is known to handle questionably. These
// tests only require a response; what the service did with the input is recorded as an observation.
func DoAPIKnownDefectTests(t *T) {
	one := decimal.NewFromInt(1)

	t.Run("name longer than limit", func(t *T) {
		maxLength := t.Config().Limits.NameMaxLength
		name := strings.Repeat("A", maxLength+1)
		observeCreate(t, servicedef.NewServicePayload(name, 1, decimal.NewFromInt(100)), func(r servicedef.ServiceRecord) {
			stored := len([]rune(r.Name))
			switch {
			case stored == maxLength:
				t.Observe("a name of %d characters was truncated to %d without an error", maxLength+1, stored)
			case stored > maxLength:
				t.Observe("a name of %d characters was stored in full", stored)
			default:
				t.Observe("a name of %d characters was stored as %d characters", maxLength+1, stored)
			}
		})
	})

	t.Run("quantity overflow", func(t *T) {
		quantity := servicedata.MaxInt.Add(one).IntPart()
		observeCreate(t, explicitPayload("Overflow test", quantity, "100", "22", "122"), func(r servicedef.ServiceRecord) {
			t.Observe("quantity %d, above the 32-bit range, was accepted and stored as %d", quantity, r.Quantity)
		})
	})

	t.Run("price overflow", func(t *T) {
		price := servicedata.MaxInt.Add(one)
		body := explicitPayload("Overflow test", 1, price.String(), "22", "122")
		observeCreate(t, body, func(r servicedef.ServiceRecord) {
			t.Observe("price %s, above the 32-bit range, was accepted and stored as %s", price, r.Price)
		})
	})

	t.Run("integer underflow", func(t *T) {
		below := servicedata.MinInt.Sub(one)
		body := explicitPayload("Underflow test", below.IntPart(), below.String(), "0.01", "0.01")
		observeCreate(t, body, func(r servicedef.ServiceRecord) {
			t.Observe("quantity and price %s, below the 32-bit range, were accepted and stored as %d and %s",
				below, r.Quantity, r.Price)
		})
	})

	t.Run("negative price", func(t *T) {
		observeCreate(t, explicitPayload("Negative price test", 1, "-100", "-22", "-122"), func(r servicedef.ServiceRecord) {
			t.Observe("a negative price was accepted: price %s, tax %s, gross %s", r.Price, r.Tax, r.Gross)
		})
	})

	t.Run("name as number", func(t *T) {
		payload := servicedef.NewServicePayload("", 1, decimal.NewFromInt(100))
		observeCreate(t, payload.With(config.FieldName, ldvalue.Int(123)), func(r servicedef.ServiceRecord) {
			t.Observe("a number was accepted as a name and stored as %q", r.Name)
		})
	})

	t.Run("quantity as string", func(t *T) {
		payload := servicedef.NewServicePayload("Type test", 1, decimal.NewFromInt(100))
		observeCreate(t, payload.With(config.FieldQuantity, ldvalue.String("ten")), func(r servicedef.ServiceRecord) {
			t.Observe("a non-numeric quantity was accepted and stored as %d", r.Quantity)
		})
	})

	t.Run("inconsistent envelope", func(t *T) {
		result := t.CreateService(explicitPayload("service", 10, "100", "22", "122"))
		t.RequireStatus(result.Response, 200, 201)
		body := t.requireJSON(result.Response)

		envelope := apiclient.ClassifyEnvelope(body)
		switch envelope.Kind {
		case apiclient.EnvelopeSingle:
			t.Debug("Create returned the record itself")
		case apiclient.EnvelopeCollection:
			t.Observe("create returned a collection of %d item(s) instead of the created record", envelope.Items)
		default:
			t.Observe("create returned an unrecognized body with top-level keys %v (%s)", envelope.Keys, envelope.Reason)
		}
	})
}

// observeCreate posts a body that the service ought to reject. A validation error is the expected
// outcome. If the service accepts the body, onAccepted records what it stored.
func observeCreate(t *T, body interface{}, onAccepted func(servicedef.ServiceRecord)) {
	result := t.CreateService(body)
	resp := result.Response
	switch {
	case resp.StatusCode == 422:
		errs, err := apiclient.ParseValidationErrors(t.requireJSON(resp))
		if err != nil {
			t.Observe("422 response without validation errors: %s", resp.Body)
			return
		}
		t.Debug("Rejected as expected: %v", errs.AllMessages())
	case resp.IsSuccess() && result.Record != nil:
		onAccepted(*result.Record)
	case resp.IsSuccess():
		t.Observe("accepted, but the response could not be read as a record: %s", result.NormalizeErr)
	default:
		t.Observe("%s: %s", resp, resp.Body)
	}
}
