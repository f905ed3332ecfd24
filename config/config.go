// Package config contains the endpoints, credentials, selectors and domain limits that the test
// suite uses to talk to the service under test.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL = "https://app.evgenybelkin.ru/"

	EnvBaseURL    = "SERVICE_BASE_URL"
	EnvUIUsername = "UI_USERNAME"
	EnvUIPassword = "UI_PASSWORD"
	EnvAPIToken   = "API_TOKEN"

	DefaultEnvFile = ".env"
)

// Credentials are the secrets used by the suite. Missing values are empty strings, which makes
// authentication fail deterministically rather than crashing the run.
type Credentials struct {
	Username string
	Password string
	APIToken string
}

// Timing holds the settle periods observed in the web application. The browser harness uses them
// as upper bounds while polling for a condition, not as fixed sleeps.
type Timing struct {
	Recompute      time.Duration
	AfterSubmit    time.Duration
	AfterLogin     time.Duration
	AfterDelete    time.Duration
	Navigation     time.Duration
	HTTPRequest    time.Duration
	PollInterval   time.Duration
	NetworkIdle    time.Duration
	ElementVisible time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		Recompute:      500 * time.Millisecond,
		AfterSubmit:    2 * time.Second,
		AfterLogin:     3 * time.Second,
		AfterDelete:    time.Second,
		Navigation:     30 * time.Second,
		HTTPRequest:    30 * time.Second,
		PollInterval:   100 * time.Millisecond,
		NetworkIdle:    500 * time.Millisecond,
		ElementVisible: 10 * time.Second,
	}
}

type Config struct {
	BaseURL     string
	Credentials Credentials
	Selectors   Selectors
	Limits      Limits
	Timing      Timing
}

// LoginURL is the page with the login form.
func (c Config) LoginURL() string { return c.BaseURL + "site/login" }

// ServicesURL is the page with the service form and the list of services.
func (c Config) ServicesURL() string { return c.BaseURL }

// APIURL is the collection URL of the service resource. Individual resources are at APIURL()+id.
func (c Config) APIURL() string { return c.BaseURL + "api/service/" }

// Load reads the configuration from the process environment, after first loading envFile if it
// exists. Variables that are already set in the environment take precedence over the file. An
// empty envFile means DefaultEnvFile; a missing file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read %s: %w", envFile, err)
	}
	return FromEnvironment(os.Getenv), nil
}

// FromEnvironment builds a Config using the given lookup function for environment variables.
func FromEnvironment(getenv func(string) string) Config {
	return Config{
		BaseURL: NormalizeBaseURL(getenv(EnvBaseURL)),
		Credentials: Credentials{
			Username: getenv(EnvUIUsername),
			Password: getenv(EnvUIPassword),
			APIToken: getenv(EnvAPIToken),
		},
		Selectors: DefaultSelectors(),
		Limits:    DefaultLimits(),
		Timing:    DefaultTiming(),
	}
}

// NormalizeBaseURL returns DefaultBaseURL for an empty string, and otherwise makes sure the URL
// ends with exactly one slash.
func NormalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(u, "/") + "/"
}
