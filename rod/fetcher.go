// Package rod provides a browser-based sitechat.Fetcher for pages whose
// content only exists after JavaScript rendering. The plain HTTP fetcher is
// the default; this one is opted into for client-rendered sites.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/fwojciec/sitechat"
)

// Ensure Fetcher implements sitechat.Fetcher at compile time.
var _ sitechat.Fetcher = (*Fetcher)(nil)

// DefaultMaxPages is how many pages a browser serves before it is recycled.
// Chrome accumulates memory under load and never returns to baseline, so the
// process is replaced periodically.
const DefaultMaxPages = 75

// Fetcher retrieves rendered HTML using headless Chrome.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets the recycling threshold. Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	f.pages++
	f.mu.Unlock()

	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.shutdown()
}

// acquire returns the current browser, recycling it first if the page count
// has reached the threshold. If launching a replacement fails, the old
// browser is kept.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, fmt.Errorf("fetcher is closed")
	}

	if f.pages >= f.maxPages {
		oldBrowser, oldLauncher := f.browser, f.launcher
		f.browser, f.launcher = nil, nil

		if err := f.launch(); err != nil {
			f.browser, f.launcher = oldBrowser, oldLauncher
		} else {
			if oldBrowser != nil {
				_ = oldBrowser.Close()
			}
			if oldLauncher != nil {
				oldLauncher.Kill()
			}
			f.pages = 0
		}
	}

	return f.browser, nil
}

// launch starts a new browser instance with stability flags.
func (f *Fetcher) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return nil
}

// shutdown closes the current browser and launcher. Must be called with mu
// held.
func (f *Fetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}
