package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// ErrLoginFailed means that submitting the login form did not leave the login page.
var ErrLoginFailed = errors.New("login failed")

// maxDeletes bounds DeleteAllServices, in case delete controls keep reappearing.
const maxDeletes = 500

// Page is a browser tab showing the web application.
//
// Every method that changes the page waits for the page to settle before returning: no requests
// in flight, document fully loaded. These waits poll for a condition and are bounded by the
// timing configuration.
type Page struct {
	ctx     context.Context
	cancel  context.CancelFunc
	cfg     config.Config
	timing  config.Timing
	logger  framework.Logger
	network *networkTracker
	dialogs *dialogLog
}

func newPage(ctx context.Context, cancel context.CancelFunc, cfg config.Config, logger framework.Logger) *Page {
	return &Page{
		ctx:     ctx,
		cancel:  cancel,
		cfg:     cfg,
		timing:  cfg.Timing,
		logger:  logger,
		network: newNetworkTracker(),
		dialogs: &dialogLog{},
	}
}

func (p *Page) start() error {
	chromedp.ListenTarget(p.ctx, func(ev interface{}) {
		p.network.handleEvent(ev)
		if p.dialogs.handleEvent(ev) {
			go func() {
				if err := chromedp.Run(p.ctx, page.HandleJavaScriptDialog(true)); err != nil {
					p.dialogs.add("Could not accept dialog: %s", err)
				}
			}()
		}
	})
	if err := chromedp.Run(p.ctx, network.Enable()); err != nil {
		return fmt.Errorf("could not open browser tab: %w", err)
	}
	return nil
}

// WithLogger returns a Page for the same tab that logs to a different logger, so that a tab shared
// by several tests logs to whichever test is using it.
func (p *Page) WithLogger(logger framework.Logger) *Page {
	p1 := *p
	p1.logger = logger
	return &p1
}

// logDialogs writes the dialog events seen so far to the logger of this Page.
func (p *Page) logDialogs() {
	for _, m := range p.dialogs.take() {
		p.logger.Printf("%s", m)
	}
}

// Close closes the tab and its browser context.
func (p *Page) Close() {
	p.cancel()
}

func (p *Page) run(actions ...chromedp.Action) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.timing.Navigation)
	defer cancel()
	return chromedp.Run(ctx, actions...)
}

func (p *Page) evaluate(script string, result interface{}) error {
	return p.run(chromedp.Evaluate(script, result))
}

// Navigate loads a URL and waits for the page to settle.
func (p *Page) Navigate(url string) error {
	p.logger.Printf("Navigating to %s", url)
	start := time.Now()
	if err := p.run(chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("could not navigate to %s: %w", url, err)
	}
	return p.waitSettled(start)
}

// URL returns the current location of the page.
func (p *Page) URL() (string, error) {
	var url string
	err := p.run(chromedp.Location(&url))
	return url, err
}

// WaitForURLChange waits until the location is no longer the given URL, or until the timeout. It
// returns the last location seen; a timeout is not an error.
func (p *Page) WaitForURLChange(from string, timeout time.Duration) (string, error) {
	var url string
	err := pollUntil(p.ctx, p.timing.PollInterval, timeout, func() (bool, error) {
		var err error
		url, err = p.URL()
		return url != from, err
	})
	if errors.Is(err, ErrTimeout) {
		err = nil
	}
	return url, err
}

// waitSettled waits until the document has loaded and no requests have been in flight for the
// network idle period, counting from the time the action that may have caused requests started.
func (p *Page) waitSettled(actionStart time.Time) error {
	err := pollUntil(p.ctx, p.timing.PollInterval, p.timing.Navigation, func() (bool, error) {
		if !p.network.quietSince(actionStart, p.timing.NetworkIdle) {
			return false, nil
		}
		var state string
		if err := p.evaluate(readyStateScript, &state); err != nil {
			// The document may be between navigations; try again on the next poll.
			return false, nil
		}
		return state == "complete", nil
	})
	if err != nil {
		return fmt.Errorf("page did not settle: %w", err)
	}
	return nil
}

// Fill replaces the value of an input by typing into it. An empty value clears the input.
func (p *Page) Fill(selector, value string) error {
	if err := p.WaitVisible(selector); err != nil {
		return err
	}
	actions := []chromedp.Action{chromedp.Clear(selector, chromedp.ByQuery)}
	if value != "" {
		actions = append(actions, chromedp.SendKeys(selector, value, chromedp.ByQuery))
	}
	if err := p.run(actions...); err != nil {
		return fmt.Errorf("could not fill %s: %w", selector, err)
	}
	return nil
}

// Click clicks the first element matching the selector and waits for the page to settle.
func (p *Page) Click(selector string) error {
	if err := p.WaitVisible(selector); err != nil {
		return err
	}
	start := time.Now()
	if err := p.run(chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("could not click %s: %w", selector, err)
	}
	return p.waitSettled(start)
}

// ClickLast clicks the last element matching the selector and waits for the page to settle.
func (p *Page) ClickLast(selector string) error {
	nodes, err := p.nodes(selector)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("could not click %s: no such element", selector)
	}
	last := []cdp.NodeID{nodes[len(nodes)-1].NodeID}
	start := time.Now()
	if err := p.run(chromedp.Click(last, chromedp.ByNodeID)); err != nil {
		return fmt.Errorf("could not click %s: %w", selector, err)
	}
	return p.waitSettled(start)
}

// ClickAndConfirm clicks the first element matching the selector, accepts the confirmation
// dialog that it opens, and waits for the page to settle.
func (p *Page) ClickAndConfirm(selector string) error {
	start := time.Now()
	var ok bool
	if err := p.evaluate(confirmClickScript(selector), &ok); err != nil {
		return fmt.Errorf("could not click %s: %w", selector, err)
	}
	if !ok {
		return fmt.Errorf("could not click %s: no such element", selector)
	}
	err := p.waitSettled(start)
	p.logDialogs()
	return err
}

func (p *Page) nodes(selector string) ([]*cdp.Node, error) {
	var nodes []*cdp.Node
	if err := p.run(chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0))); err != nil {
		return nil, fmt.Errorf("could not query %s: %w", selector, err)
	}
	return nodes, nil
}

// Count returns the number of elements matching the selector.
func (p *Page) Count(selector string) (int, error) {
	nodes, err := p.nodes(selector)
	return len(nodes), err
}

// InputValue returns the value of an input, or an empty string if there is no such input.
func (p *Page) InputValue(selector string) (string, error) {
	nodes, err := p.nodes(selector)
	if err != nil || len(nodes) == 0 {
		return "", err
	}
	var value string
	if err := p.run(chromedp.Value([]cdp.NodeID{nodes[0].NodeID}, &value, chromedp.ByNodeID)); err != nil {
		return "", fmt.Errorf("could not read %s: %w", selector, err)
	}
	return value, nil
}

// StableInputValue waits until the value of an input has stopped changing, for inputs that the
// page computes from other inputs. If the value is still changing at the end of the recompute
// period, the last value is returned.
func (p *Page) StableInputValue(selector string) (string, error) {
	settle := 2 * p.timing.PollInterval
	value, err := waitStable(p.ctx, p.timing.PollInterval, settle, p.timing.Recompute+settle, func() (string, error) {
		return p.InputValue(selector)
	})
	if errors.Is(err, ErrTimeout) {
		p.logger.Printf("Value of %s was still changing: %q", selector, value)
		err = nil
	}
	return value, err
}

// WaitVisible waits for an element matching the selector to be rendered.
func (p *Page) WaitVisible(selector string) error {
	ctx, cancel := context.WithTimeout(p.ctx, p.timing.ElementVisible)
	defer cancel()
	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w after %s", ErrTimeout, p.timing.ElementVisible)
		}
		return fmt.Errorf("%s is not visible: %w", selector, err)
	}
	return nil
}

// Texts returns the rendered text of every element matching the selector.
func (p *Page) Texts(selector string) ([]string, error) {
	nodes, err := p.nodes(selector)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var text string
		if err := p.run(chromedp.Text([]cdp.NodeID{n.NodeID}, &text, chromedp.ByNodeID)); err != nil {
			return nil, fmt.Errorf("could not read text of %s: %w", selector, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

// HasText returns true if any element matching the selector contains the text.
func (p *Page) HasText(selector, text string) (bool, error) {
	texts, err := p.Texts(selector)
	if err != nil {
		return false, err
	}
	return containsText(texts, text), nil
}

func containsText(texts []string, text string) bool {
	for _, t := range texts {
		if strings.Contains(t, text) {
			return true
		}
	}
	return false
}

// Login fills in and submits the login form, and waits for the application to leave the login
// page. It returns ErrLoginFailed if it does not.
func (p *Page) Login(creds config.Credentials) error {
	url, err := p.SubmitLogin(creds.Username, creds.Password)
	if err != nil {
		return err
	}
	if url == p.cfg.LoginURL() {
		return fmt.Errorf("%w: still at %s", ErrLoginFailed, url)
	}
	p.logger.Printf("Logged in, now at %s", url)
	return nil
}

// SubmitLogin opens the login page, submits the given username and password, and returns the
// location that the browser ends up at. Empty values leave the fields empty.
func (p *Page) SubmitLogin(username, password string) (string, error) {
	sel := p.cfg.Selectors.Login
	if err := p.Navigate(p.cfg.LoginURL()); err != nil {
		return "", err
	}
	if username != "" {
		if err := p.Fill(sel.Username, username); err != nil {
			return "", err
		}
	}
	if password != "" {
		if err := p.Fill(sel.Password, password); err != nil {
			return "", err
		}
	}
	if err := p.Click(sel.Submit); err != nil {
		return "", err
	}
	return p.WaitForURLChange(p.cfg.LoginURL(), p.timing.AfterLogin)
}

// CountListItems returns the number of services in the list.
func (p *Page) CountListItems() (int, error) {
	return p.Count(p.cfg.Selectors.ServicesList.Items)
}

// FillForm fills in the service form without submitting it. Empty values clear the fields.
func (p *Page) FillForm(name, quantity, price string) error {
	sel := p.cfg.Selectors.ServiceForm
	for _, f := range []struct{ selector, value string }{
		{sel.Name, name},
		{sel.Quantity, quantity},
		{sel.Price, price},
	} {
		if err := p.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	return nil
}

// SetPrice types a price into the form and returns the tax and gross that the page computes.
func (p *Page) SetPrice(price string) (tax, gross string, err error) {
	sel := p.cfg.Selectors.ServiceForm
	if err = p.Fill(sel.Price, price); err != nil {
		return
	}
	if tax, err = p.StableInputValue(sel.Tax); err != nil {
		return
	}
	gross, err = p.StableInputValue(sel.Gross)
	return
}

// FillAndSubmitForm fills in the service form, lets the page compute tax and gross, and submits
// it. It makes a single attempt.
func (p *Page) FillAndSubmitForm(name, quantity, price string) error {
	sel := p.cfg.Selectors.ServiceForm
	if err := p.FillForm(name, quantity, price); err != nil {
		return err
	}
	if price != "" {
		if _, err := p.StableInputValue(sel.Gross); err != nil {
			return err
		}
	}
	if err := p.run(chromedp.Blur(sel.Price, chromedp.ByQuery)); err != nil {
		return err
	}
	p.logger.Printf("Submitting service form: name=%q quantity=%q price=%q", name, quantity, price)
	return p.Click(sel.Submit)
}

// ErrorText returns the text of all form error messages, joined with spaces and in lower case.
func (p *Page) ErrorText() (string, error) {
	texts, err := p.Texts(p.cfg.Selectors.ServiceForm.Error)
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.Join(texts, " ")), nil
}

// ErrorCount returns the number of form error message elements.
func (p *Page) ErrorCount() (int, error) {
	return p.Count(p.cfg.Selectors.ServiceForm.Error)
}

// DeleteAllServices clicks the first delete control until there are none left, accepting the
// confirmation dialogs. It returns the number of services deleted.
func (p *Page) DeleteAllServices() (int, error) {
	deleteSel := p.cfg.Selectors.ServicesList.DeleteButton
	deleted := 0
	for deleted < maxDeletes {
		before, err := p.Count(deleteSel)
		if err != nil {
			return deleted, err
		}
		if before == 0 {
			return deleted, nil
		}
		if err := p.ClickAndConfirm(deleteSel); err != nil {
			return deleted, err
		}
		err = pollUntil(p.ctx, p.timing.PollInterval, p.timing.AfterDelete, func() (bool, error) {
			after, err := p.Count(deleteSel)
			return after < before, err
		})
		if err != nil {
			return deleted, fmt.Errorf("service was not removed from the list: %w", err)
		}
		deleted++
	}
	return deleted, fmt.Errorf("gave up after deleting %d services", deleted)
}
