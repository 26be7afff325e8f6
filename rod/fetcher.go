// Package rod provides a browser-automation Fetcher for JavaScript-rendered
// pages using go-rod and headless Chrome.
package rod

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/mzawadzki/ordpipe"
)

// Defaults for content-presence waits and post-load settling.
const (
	// DefaultSignalTimeout bounds the wait for each content-presence signal.
	DefaultSignalTimeout = 20 * time.Second

	// DefaultSettleDelay is the fixed pause after navigation to allow
	// deferred script execution before the HTML is captured.
	DefaultSettleDelay = 5 * time.Second
)

// defaultUserAgent mimics a desktop Chrome install. The source site serves a
// degraded shell to clients it identifies as automation.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// hideWebdriverJS removes the navigator.webdriver automation marker before
// any page script runs.
const hideWebdriverJS = `() => {
	Object.defineProperty(navigator, 'webdriver', {get: () => undefined});
}`

// contentSignal is one DOM condition taken as evidence that dynamic page
// content has finished rendering.
type contentSignal struct {
	name     string
	selector string
	textRe   string // optional text regex for ElementR matching
}

// contentSignals is the prioritized list of content-presence signals. Each is
// waited for independently; the first to appear wins.
var contentSignals = []contentSignal{
	{name: "content container", selector: `div[class*="content"], div[class*="section"], div[class*="ordinance"], div[class*="code"]`},
	{name: "section paragraph", selector: "p", textRe: `Sec\.|Section`},
	{name: "heading", selector: "h1, h2, h3"},
}

// Ensure Fetcher implements ordpipe.Fetcher at compile time.
var _ ordpipe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation. One
// browser instance is shared across the whole scrape run; pages are fetched
// sequentially by design.
type Fetcher struct {
	browser       *rod.Browser
	launcher      *launcher.Launcher
	logger        *slog.Logger
	signalTimeout time.Duration
	settleDelay   time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for degraded-confidence warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// WithSignalTimeout sets the per-signal wait bound.
func WithSignalTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.signalTimeout = d }
}

// WithSettleDelay sets the fixed post-navigation delay.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) { f.settleDelay = d }
}

// NewFetcher launches a headless Chrome browser configured to mask automation
// fingerprints. Close must be called when the Fetcher is no longer needed.
//
// A launch or connect failure is fatal to the whole run: it is returned here
// and never retried inline.
func NewFetcher(headless bool, opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		logger:        slog.Default(),
		signalTimeout: DefaultSignalTimeout,
		settleDelay:   DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	lnchr := launcher.New().
		Headless(headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("window-size", "1920,1080").
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-extensions").
		Set("user-agent", defaultUserAgent).
		Leakless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return f, nil
}

// Fetch navigates to the URL, waits for content-presence signals, and returns
// the rendered HTML. A timed-out signal wait downgrades confidence but does
// not abort the page; extraction proceeds on whatever rendered.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if _, err := page.EvalOnNewDocument(hideWebdriverJS); err != nil {
		return "", err
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if sig, ok := f.waitForContent(page); ok {
		f.logger.Debug("content signal found", "url", url, "signal", sig)
	} else {
		f.logger.Warn("no content-presence signal within timeout", "url", url)
	}

	// Allow deferred scripts to populate the DOM.
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(f.settleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}
	return html, nil
}

// waitForContent waits for any of the prioritized content-presence signals,
// each with an independent timeout. Returns the name of the first signal that
// appeared, or false if none did.
func (f *Fetcher) waitForContent(page *rod.Page) (string, bool) {
	for _, sig := range contentSignals {
		bounded := page.Timeout(f.signalTimeout)

		var err error
		if sig.textRe != "" {
			_, err = bounded.ElementR(sig.selector, sig.textRe)
		} else {
			_, err = bounded.Element(sig.selector)
		}
		if err == nil {
			return sig.name, true
		}
	}
	return "", false
}

// Close releases browser resources. Safe to call after a failed run.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.launcher != nil {
		f.launcher.Kill()
	}
	return err
}
