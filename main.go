package main

import (
	"fmt"
	"os"

	"github.com/evgenybelkin/service-e2e-tests/apiclient"
	"github.com/evgenybelkin/service-e2e-tests/browser"
	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"
	"github.com/evgenybelkin/service-e2e-tests/servicetests"

	"github.com/fatih/color"
)

func main() {
	var params commandParams
	if !params.Read(os.Args) {
		os.Exit(1)
	}
	os.Exit(run(params))
}

func run(params commandParams) int {
	logger := newRunLogger(os.Stderr, params.debugAll)

	cfg, err := config.Load(params.envFile)
	if err != nil {
		logger.Errorf("Configuration error: %s", err)
		return 1
	}
	if params.serviceURL != "" {
		cfg.BaseURL = config.NormalizeBaseURL(params.serviceURL)
	}
	if params.timeout > 0 {
		cfg.Timing.HTTPRequest = params.timeout
	}
	if cfg.Credentials.APIToken == "" {
		logger.Warnf("%s is not set; API requests will not be authenticated", config.EnvAPIToken)
	}

	capabilities := framework.Capabilities{servicetests.CapabilityAPI}
	if params.ui {
		capabilities = append(capabilities, servicetests.CapabilityUI)
		if cfg.Credentials.Username == "" || cfg.Credentials.Password == "" {
			logger.Warnf("%s or %s is not set; logging in will fail", config.EnvUIUsername, config.EnvUIPassword)
		}
	}

	env := &servicetests.Environment{
		Config: cfg,
		Client: apiclient.NewServiceClient(cfg.APIURL(), cfg.Credentials.APIToken, cfg.Timing.HTTPRequest, nil),
		BrowserOptions: browser.Options{
			Headless: !params.headed,
			ExecPath: params.chromePath,
			Logger:   logger,
		},
	}
	defer env.Close()

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters, capabilities, servicetests.AllCapabilities)

	logger.Infof("Running test suite against %s", cfg.BaseURL)

	testLogger := NewConsoleTestLogger(color.Output, params.debug || params.debugAll, params.debugAll)
	results := servicetests.RunTestSuite(env, params.filters.AsFilter, testLogger, capabilities)

	fmt.Println()
	PrintResults(color.Output, results)
	if results.OK() {
		return 0
	}

	var failed []framework.TestID
	for _, f := range results.Failures {
		failed = append(failed, f.TestID)
	}
	fmt.Printf("\nTo run only the failed tests:\n  %s\n", params.rerunCommand(os.Args[0], failed))
	return 1
}
