package servicetests

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const servicesHeading = "Услуги"

// DoUIAuthTests exercise the login form. Every test starts from a fresh, logged-out tab.
func DoUIAuthTests(t *T) {
	t.Run("successful login", func(t *T) {
		cfg := t.Config()
		p := t.NewPage()
		t.mustUI(p.Navigate(cfg.LoginURL()))
		for _, sel := range []string{cfg.Selectors.Login.Username, cfg.Selectors.Login.Password, cfg.Selectors.Login.Submit} {
			assert.NoError(t, p.WaitVisible(sel))
		}

		url, err := p.SubmitLogin(cfg.Credentials.Username, cfg.Credentials.Password)
		t.mustUI(err)
		require.Equal(t, cfg.ServicesURL(), url, "did not land on the services page after logging in")

		found, err := p.HasText("h2", servicesHeading)
		t.mustUI(err)
		assert.True(t, found, "no %q heading on the services page", servicesHeading)
	})

	t.Run("wrong username", func(t *T) {
		cfg := t.Config()
		url, err := t.NewPage().SubmitLogin("wrong_user", cfg.Credentials.Password)
		t.mustUI(err)
		assert.Equal(t, cfg.LoginURL(), url)
	})

	t.Run("wrong password", func(t *T) {
		cfg := t.Config()
		url, err := t.NewPage().SubmitLogin(cfg.Credentials.Username, "wrong_password")
		t.mustUI(err)
		assert.Equal(t, cfg.LoginURL(), url)
	})

	t.Run("empty credentials", func(t *T) {
		cfg := t.Config()
		p := t.NewPage()
		url, err := p.SubmitLogin("", "")
		t.mustUI(err)
		assert.Equal(t, cfg.LoginURL(), url)

		n, err := p.ErrorCount()
		t.mustUI(err)
		assert.Greater(t, n, 0, "no validation feedback for empty credentials")
	})
}
