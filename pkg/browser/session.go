package browser

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"jobradar/pkg/models"
)

// Page is the rendered result of one navigation.
type Page struct {
	URL    string
	HTML   string
	Status int
}

// NavigateOptions carries the per-site politeness settings applied before a
// navigation.
type NavigateOptions struct {
	Site     string
	DelayMin time.Duration
	DelayMax time.Duration
	Headers  map[string]string
}

const maxConsecutiveFailures = 3

// pageLoader is the browser engine boundary underneath Manager. ensure must
// be idempotent; close must tolerate a loader that never started.
type pageLoader interface {
	ensure(ctx context.Context) error
	load(ctx context.Context, url string, timeout time.Duration, opts NavigateOptions) (*Page, error)
	close()
}

// Manager owns the single headless browser session for the process. The
// session is created lazily on first use and serialized: only one navigation
// is in flight at a time, because one browser cannot safely serve concurrent
// page loads.
type Manager struct {
	loader     pageLoader
	maxRetries int

	navMu     sync.Mutex // serializes Navigate process-wide
	failures  int
	restarted bool
}

func NewManager(headless bool, bin string, maxRetries int) *Manager {
	return &Manager{
		loader:     newRodLoader(headless, bin),
		maxRetries: maxRetries,
	}
}

// EnsureReady initializes the browser session if needed. Idempotent and safe
// to call concurrently; two callers never spawn two browsers.
func (m *Manager) EnsureReady(ctx context.Context) error {
	return m.loader.ensure(ctx)
}

// Navigate loads a page and returns its rendered HTML. It applies the
// anti-detection discipline first: random user agent, stealth page (no
// navigator.webdriver), and a randomized anti-bot delay within the site's
// configured range. Transient network failures are retried a bounded number
// of times; after three consecutive failed navigations the session is torn
// down and recreated once before the failure surfaces.
func (m *Manager) Navigate(ctx context.Context, url string, timeout time.Duration, opts NavigateOptions) (*Page, error) {
	m.navMu.Lock()
	defer m.navMu.Unlock()

	if err := m.loader.ensure(ctx); err != nil {
		return nil, err
	}

	if err := antiBotDelay(ctx, opts.DelayMin, opts.DelayMax); err != nil {
		return nil, models.NewTimeoutError(opts.Site, url, err)
	}

	var lastErr error
	for attempt := 0; attempt <= m.maxRetries; attempt++ {
		page, err := m.loader.load(ctx, url, timeout, opts)
		if err == nil {
			m.failures = 0
			m.restarted = false
			return page, nil
		}
		lastErr = err
		// Only transient network failures get another attempt here;
		// timeouts already consumed their full budget.
		if models.KindOf(err) != models.ErrNetwork {
			break
		}
	}

	m.failures++
	if m.failures >= maxConsecutiveFailures && !m.restarted {
		log.Printf("Browser session unhealthy after %d failures, recreating", m.failures)
		m.recreate(ctx)
	}

	return nil, lastErr
}

func (m *Manager) recreate(ctx context.Context) {
	m.loader.close()
	m.restarted = true
	m.failures = 0
	if err := m.loader.ensure(ctx); err != nil {
		log.Printf("Browser session recreation failed: %v", err)
	}
}

// Cleanup releases the browser session. Safe to call multiple times and on
// a manager that never initialized.
func (m *Manager) Cleanup() {
	m.loader.close()
}

// rodLoader drives a real headless Chromium through rod.
type rodLoader struct {
	headless   bool
	bin        string
	userAgents []string

	mu      sync.Mutex // guards browser/launch
	browser *rod.Browser
	launch  *launcher.Launcher
}

func newRodLoader(headless bool, bin string) *rodLoader {
	return &rodLoader{
		headless: headless,
		bin:      bin,
		userAgents: []string{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
		},
	}
}

func (l *rodLoader) ensure(_ context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.browser != nil {
		return nil
	}

	la := launcher.New().Headless(l.headless)
	if l.bin != "" {
		la = la.Bin(l.bin)
	}

	controlURL, err := la.Launch()
	if err != nil {
		return models.NewNetworkError("", "", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		la.Cleanup()
		return models.NewNetworkError("", "", err)
	}

	l.browser = b
	l.launch = la
	log.Println("Browser session initialized")
	return nil
}

func (l *rodLoader) load(ctx context.Context, url string, timeout time.Duration, opts NavigateOptions) (*Page, error) {
	l.mu.Lock()
	b := l.browser
	l.mu.Unlock()

	if b == nil {
		return nil, models.NewNetworkError(opts.Site, url, errors.New("browser session not available"))
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, models.NewNetworkError(opts.Site, url, err)
	}
	defer page.Close()

	ua := l.userAgents[rand.Intn(len(l.userAgents))]
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
		return nil, models.NewNetworkError(opts.Site, url, err)
	}

	if len(opts.Headers) > 0 {
		var dict []string
		for k, v := range opts.Headers {
			dict = append(dict, k, v)
		}
		if _, err := page.SetExtraHeaders(dict); err != nil {
			return nil, models.NewNetworkError(opts.Site, url, err)
		}
	}

	page = page.Context(ctx).Timeout(timeout)

	var resp proto.NetworkResponseReceived
	wait := page.WaitEvent(&resp)

	if err := page.Navigate(url); err != nil {
		return nil, classifyNavError(opts.Site, url, err)
	}
	wait()

	if err := page.WaitLoad(); err != nil {
		return nil, classifyNavError(opts.Site, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, classifyNavError(opts.Site, url, err)
	}

	status := 0
	if resp.Response != nil {
		status = resp.Response.Status
	}

	return &Page{URL: url, HTML: html, Status: status}, nil
}

func (l *rodLoader) close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.browser != nil {
		if err := l.browser.Close(); err != nil {
			log.Printf("Error closing browser: %v", err)
		}
		l.browser = nil
	}
	if l.launch != nil {
		l.launch.Cleanup()
		l.launch = nil
	}
}

func classifyNavError(site, url string, err error) *models.CrawlError {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewTimeoutError(site, url, err)
	}
	return models.NewNetworkError(site, url, err)
}

// antiBotDelay sleeps a random duration within [min, max], respecting
// cancellation.
func antiBotDelay(ctx context.Context, min, max time.Duration) error {
	if max <= 0 {
		return nil
	}
	delay := min
	if max > min {
		delay = min + time.Duration(rand.Int63n(int64(max-min)))
	}

	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
