package servicetests

import (
	"testing"

	"github.com/evgenybelkin/service-e2e-tests/framework"
	"github.com/evgenybelkin/service-e2e-tests/servicedata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type debugOutputLogger struct {
	output map[string]framework.CapturedOutput
}

func (d *debugOutputLogger) TestStarted(framework.TestID)             {}
func (d *debugOutputLogger) TestError(framework.TestID, error)        {}
func (d *debugOutputLogger) TestObservation(framework.TestID, string) {}
func (d *debugOutputLogger) TestSkipped(framework.TestID, string)     {}
func (d *debugOutputLogger) TestFinished(id framework.TestID, failed bool, debugOutput framework.CapturedOutput) {
	d.output[id.String()] = debugOutput
}

func runWithT(action func(t *T)) (framework.Results, *debugOutputLogger) {
	logger := &debugOutputLogger{output: make(map[string]framework.CapturedOutput)}
	env := &Environment{}
	results := framework.Run(nil, logger, nil, func(c *framework.Context) {
		c.Run("form", func(c *framework.Context) {
			action(newT(c, env, nil))
		})
	})
	return results, logger
}

func findPriceBoundary(t *testing.T, price string) servicedata.BoundaryCase {
	for _, c := range servicedata.PriceBoundaries() {
		if c.PriceText() == price {
			return c
		}
	}
	require.Fail(t, "no price boundary case", price)
	return servicedata.BoundaryCase{}
}

func TestFormErrorsOfRejectionWithoutKnownMessageAreLogged(t *testing.T) {
	for _, price := range []string{"2147483647.99", "2147483648"} {
		t.Run(price, func(t *testing.T) {
			c := findPriceBoundary(t, price)
			require.False(t, c.Accepted)
			require.Len(t, c.Messages, 0)

			results, logger := runWithT(func(t *T) {
				assertFormErrors(t, c, "значение «цена без ндс» не должно превышать 2147483647")
			})

			assert.True(t, results.OK())
			output := logger.output["form"]
			require.Len(t, output, 1)
			assert.Contains(t, output[0].Message, price)
			assert.Contains(t, output[0].Message, "не должно превышать 2147483647")
		})
	}
}

func TestFormErrorsMustContainKnownMessages(t *testing.T) {
	c := findPriceBoundary(t, "-0.01")
	require.Equal(t, []string{servicedata.MessagePriceMin}, c.Messages)

	results, _ := runWithT(func(t *T) {
		assertFormErrors(t, c, "необходимо заполнить «наименование»")
	})
	assert.False(t, results.OK())

	results, _ = runWithT(func(t *T) {
		assertFormErrors(t, c, "значение «цена без ндс» должно быть не меньше 0.01")
	})
	assert.True(t, results.OK())
}
