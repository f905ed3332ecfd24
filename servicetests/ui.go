package servicetests

import (
	"errors"

	"github.com/evgenybelkin/service-e2e-tests/browser"
)

// NewPage opens a browser tab in a browser context of its own, so it is not logged in. The tab is
// closed when the test finishes.
func (t *T) NewPage() *browser.Page {
	b, err := t.env.Browser()
	if err != nil {
		t.Fatalf("browser is not available: %s", err)
	}
	p, err := b.NewPage(t.context.DebugLogger())
	if err != nil {
		t.Fatalf("%s", err)
	}
	t.Defer(p.Close)
	return p
}

// UseLoggedInPage opens a tab and logs in with the configured credentials. The tab is shared by
// all subtests of this test. If the login fails, this test and therefore all of its subtests fail
// with a harness error.
func (t *T) UseLoggedInPage() {
	p := t.NewPage()
	if err := p.Login(t.Config().Credentials); err != nil {
		if errors.Is(err, browser.ErrLoginFailed) {
			t.Fatalf("could not log in as %q: %s", t.Config().Credentials.Username, err)
		}
		t.Fatalf("%s", err)
	}
	t.page = p
}

// Page returns the logged-in tab set up by UseLoggedInPage in this test or a parent test.
func (t *T) Page() *browser.Page {
	if t.page == nil {
		t.Fatalf("no logged-in page; the test group must call UseLoggedInPage")
	}
	return t.page.WithLogger(t.context.DebugLogger())
}

// ClearServiceList opens the services page and deletes every service in the list.
func (t *T) ClearServiceList() {
	p := t.Page()
	t.mustUI(p.Navigate(t.Config().ServicesURL()))
	n, err := p.DeleteAllServices()
	t.mustUI(err)
	if n > 0 {
		t.Debug("Deleted %d service(s) from the list", n)
	}
}

func (t *T) CountListItems() int {
	n, err := t.Page().CountListItems()
	t.mustUI(err)
	return n
}

// SubmitForm fills in and submits the service form, and returns the number of services in the list
// before and after.
func (t *T) SubmitForm(name, quantity, price string) (before, after int) {
	before = t.CountListItems()
	t.mustUI(t.Page().FillAndSubmitForm(name, quantity, price))
	after = t.CountListItems()
	t.Debug("List had %d service(s) before submitting and %d after", before, after)
	return before, after
}

func (t *T) FormErrorText() string {
	text, err := t.Page().ErrorText()
	t.mustUI(err)
	return text
}

// mustUI ends the test with a harness error if the browser could not do what was asked.
func (t *T) mustUI(err error) {
	if err != nil {
		t.Fatalf("%s", err)
	}
}
