package servicetests

import (
	"strings"

	"github.com/evgenybelkin/service-e2e-tests/servicedata"

	"github.com/shopspring/decimal"

	"github.com/stretchr/testify/assert"
)

// DoUIFormTests exercise the service form. The tests share one logged-in tab, and each one starts
// with an empty list of services.
func DoUIFormTests(t *T) {
	t.UseLoggedInPage()

	t.Run("form elements present", func(t *T) {
		t.ClearServiceList()
		sel := t.Config().Selectors.ServiceForm
		for _, s := range []string{sel.Name, sel.Quantity, sel.Price, sel.Tax, sel.Gross, sel.Submit} {
			assert.NoError(t, t.Page().WaitVisible(s))
		}
	})

	t.Run("tax calculation", func(t *T) {
		for _, c := range servicedata.FormTaxCases() {
			tc := c
			t.Run(tc.String(), func(t *T) {
				t.ClearServiceList()
				p := t.Page()
				tax, gross, err := p.SetPrice(tc.Price.String())
				t.mustUI(err)
				t.Defer(func() { _ = p.Fill(t.Config().Selectors.ServiceForm.Price, "") })

				assertWithinCent(t, tc.Tax, formAmount(t, tax), "tax")
				assertWithinCent(t, tc.Gross, formAmount(t, gross), "gross")
			})
		}
	})

	t.Run("positive combinations", func(t *T) {
		for _, c := range servicedata.PositiveCombinations() {
			tc := c
			t.Run(tc.String(), func(t *T) {
				t.ClearServiceList()
				before, after := t.SubmitForm(tc.Name, tc.QuantityText(), tc.PriceText())
				assert.Greater(t, after, before, "service was not added to the list")
			})
		}
	})

	t.Run("negative combinations", func(t *T) {
		for _, c := range servicedata.NegativeCombinations() {
			assertRejectedByForm(t, c)
		}
	})

	t.Run("name length", func(t *T) {
		for _, c := range servicedata.NameLengths(t.Config().Limits.NameMaxLength) {
			tc := c
			t.Run(tc.String(), func(t *T) {
				t.ClearServiceList()
				before, after := t.SubmitForm(tc.Name, "1", "100")
				if tc.Accepted {
					assert.Greater(t, after, before, "name was not accepted")
				} else {
					assert.Equal(t, before, after, "name was accepted")
				}
			})
		}
	})

	t.Run("price boundaries", func(t *T) {
		for _, c := range servicedata.PriceBoundaries() {
			if !c.Accepted {
				assertRejectedByForm(t, c)
				continue
			}
			tc := c
			t.Run(tc.String(), func(t *T) {
				t.ClearServiceList()
				before, after := t.SubmitForm(tc.Name, tc.QuantityText(), tc.PriceText())
				assert.Greater(t, after, before, "price was not accepted")
			})
		}
	})
}

func assertRejectedByForm(t *T, c servicedata.BoundaryCase) {
	t.Run(c.String(), func(t *T) {
		t.ClearServiceList()
		before, after := t.SubmitForm(c.Name, c.QuantityText(), c.PriceText())
		assert.Equal(t, before, after, "invalid input was added to the list")
		assertFormErrors(t, c, t.FormErrorText())
	})
}

// assertFormErrors checks the form's error text for the messages of a rejected case. A case with
// no message known in advance only logs what the form showed.
func assertFormErrors(t *T, c servicedata.BoundaryCase, text string) {
	if len(c.Messages) == 0 {
		t.Debug("Form rejected %s with error text %q", c, text)
		return
	}
	for _, m := range c.Messages {
		assert.Contains(t, text, strings.ToLower(m))
	}
}

// formAmount reads an amount computed by the form. An empty field counts as zero.
func formAmount(t *T, text string) decimal.Decimal {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		t.Fatalf("form shows %q, which is not a number", text)
	}
	return d
}
