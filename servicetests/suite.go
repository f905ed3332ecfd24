package servicetests

import (
	"sync"

	"github.com/evgenybelkin/service-e2e-tests/apiclient"
	"github.com/evgenybelkin/service-e2e-tests/browser"
	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"
)

const (
	// CapabilityAPI enables the tests of the JSON API.
	CapabilityAPI = "api"
	// CapabilityUI enables the tests of the web interface. They need a browser.
	CapabilityUI = "ui"
)

var AllCapabilities = []string{CapabilityAPI, CapabilityUI}

// Environment is everything that lasts for a whole test run. The browser is only started when the
// first test that needs it asks for it.
type Environment struct {
	Config         config.Config
	Client         *apiclient.ServiceClient
	BrowserOptions browser.Options

	browserOnce sync.Once
	browser     *browser.Browser
	browserErr  error
}

func (e *Environment) Browser() (*browser.Browser, error) {
	e.browserOnce.Do(func() {
		e.browser, e.browserErr = browser.Launch(e.Config, e.BrowserOptions)
	})
	return e.browser, e.browserErr
}

// Close stops the browser, if it was started.
func (e *Environment) Close() {
	if e.browser != nil {
		e.browser.Close()
	}
}

func RunTestSuite(
	env *Environment,
	filter framework.Filter,
	testLogger framework.TestLogger,
	capabilities framework.Capabilities,
) framework.Results {
	return framework.Run(filter, testLogger, capabilities, func(c *framework.Context) {
		t := newT(c, env, nil)

		t.Run("API", func(t *T) {
			t.RequireCapability(CapabilityAPI)
			t.Run("create", DoAPICreateTests)
			t.Run("validation", DoAPIValidationTests)
			t.Run("CRUD", DoAPICRUDTests)
			t.Run("known defects", DoAPIKnownDefectTests)
		})

		t.Run("UI", func(t *T) {
			t.RequireCapability(CapabilityUI)
			t.Run("authentication", DoUIAuthTests)
			t.Run("service form", DoUIFormTests)
			t.Run("CRUD", DoUICRUDTests)
		})
	})
}
