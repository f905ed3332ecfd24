package browser

import (
	"context"
	"fmt"

	"github.com/evgenybelkin/service-e2e-tests/config"
	"github.com/evgenybelkin/service-e2e-tests/framework"

	"github.com/chromedp/chromedp"
)

// Options control how the browser process is started.
type Options struct {
	// Headless runs the browser without a window.
	Headless bool
	// ExecPath is the browser executable. If empty, chromedp looks for Chrome in the usual places.
	ExecPath string
	// Logger receives the browser's own log output.
	Logger framework.Logger
}

// Browser is a browser process that lasts for a whole test run. Pages are opened in it with
// NewPage, each in its own browser context, so they do not share cookies.
type Browser struct {
	cfg           config.Config
	logger        framework.Logger
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// Launch starts a browser process.
func Launch(cfg config.Config, opts Options) (*Browser, error) {
	logger := opts.Logger
	if logger == nil {
		logger = framework.NullLogger()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	chromedpLogger := framework.WithPrefix(logger, "[chromedp] ")
	browserCtx, browserCancel := chromedp.NewContext(allocCtx, chromedp.WithLogf(chromedpLogger.Printf))

	// The first Run starts the browser.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("could not start browser: %w", err)
	}
	logger.Printf("Browser started (headless=%t)", opts.Headless)

	return &Browser{
		cfg:           cfg,
		logger:        logger,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// NewPage opens a tab in a new browser context. The logger receives the page's debug output;
// normally it is the debug logger of the test that uses the page.
func (b *Browser) NewPage(logger framework.Logger) (*Page, error) {
	if logger == nil {
		logger = framework.NullLogger()
	}
	ctx, cancel := chromedp.NewContext(b.browserCtx, chromedp.WithNewBrowserContext())
	p := newPage(ctx, cancel, b.cfg, logger)
	if err := p.start(); err != nil {
		cancel()
		return nil, err
	}
	return p, nil
}

// Close stops the browser process.
func (b *Browser) Close() {
	b.browserCancel()
	b.allocCancel()
	b.logger.Printf("Browser stopped")
}
