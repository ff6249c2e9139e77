package crawler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"jobradar/pkg/browser"
	"jobradar/pkg/cache"
	"jobradar/pkg/models"
	"jobradar/pkg/pipeline"
	"jobradar/pkg/sites"
)

// Navigator is the narrow browsing contract the orchestrator depends on.
// browser.Manager implements it; tests supply mocks.
type Navigator interface {
	EnsureReady(ctx context.Context) error
	Navigate(ctx context.Context, url string, timeout time.Duration, opts browser.NavigateOptions) (*browser.Page, error)
	Cleanup()
}

// Options tune a crawl independent of any single request.
type Options struct {
	NavigationTimeout time.Duration
	InterSiteDelay    time.Duration
	CacheTTL          time.Duration
}

// Orchestrator is the single public entry point of the crawl core. It fans a
// request across the applicable site adapters sequentially, contains per-site
// failures, and memoizes non-empty results.
type Orchestrator struct {
	nav      Navigator
	registry *sites.Registry
	store    cache.Store
	opts     Options

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func New(nav Navigator, registry *sites.Registry, store cache.Store, opts Options) *Orchestrator {
	if opts.NavigationTimeout <= 0 {
		opts.NavigationTimeout = 30 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = cache.CrawlResultTTL
	}
	return &Orchestrator{
		nav:      nav,
		registry: registry,
		store:    store,
		opts:     opts,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Crawl executes one crawl request. Per-site errors are contained in the
// result's error map; only a failure to acquire the browser session at all is
// returned as a top-level error, since then no site can be tried.
func (o *Orchestrator) Crawl(ctx context.Context, req models.CrawlRequest) (*models.CrawlResult, error) {
	if req.MaxResults < 0 {
		return nil, models.NewUnknownError("", fmt.Errorf("max_results must be >= 0, got %d", req.MaxResults))
	}

	key := cacheKey(req)

	var cached models.CrawlResult
	if err := o.store.GetJSON(ctx, key, &cached); err == nil {
		cached.Cached = true
		return &cached, nil
	} else if !errors.Is(err, cache.ErrMiss) {
		log.Printf("Cache lookup failed for %s: %v", key, err)
	}

	adapters, unknown := o.registry.AdaptersFor(req.Sites, req.Kind)

	result := &models.CrawlResult{
		Kind:      req.Kind,
		Category:  req.Category,
		Errors:    make(map[string]models.SiteError),
		Timestamp: time.Now(),
	}
	for name, err := range unknown {
		result.Errors[name] = models.SiteError{Kind: err.Kind, Message: err.Error()}
	}

	if len(adapters) == 0 {
		result.Success = result.Count() > 0 || len(result.Errors) == 0
		return result, nil
	}

	if err := o.nav.EnsureReady(ctx); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	for i, adapter := range adapters {
		if ctx.Err() != nil {
			// Deadline hit: stop here, keep what earlier sites produced.
			result.Errors[adapter.Name()] = models.SiteError{
				Kind:    models.ErrTimeout,
				Message: "request deadline reached before site was crawled",
			}
			continue
		}

		if i > 0 && o.opts.InterSiteDelay > 0 {
			select {
			case <-time.After(o.opts.InterSiteDelay):
			case <-ctx.Done():
			}
		}

		if err := o.crawlSite(ctx, adapter, req, result, seen); err != nil {
			var ce *models.CrawlError
			if !errors.As(err, &ce) {
				ce = models.NewUnknownError(adapter.Name(), err)
			}
			result.Errors[adapter.Name()] = models.SiteError{Kind: ce.Kind, Message: ce.Error()}
			log.Printf("Site %s failed: %v", adapter.Name(), err)
		}
	}

	o.cap(result, req.MaxResults)

	result.Success = result.Count() > 0 || len(result.Errors) == 0

	if result.Count() > 0 {
		// Cached entries hold records only, never error states.
		entry := *result
		entry.Errors = nil
		if err := o.store.SetJSON(ctx, key, &entry, o.opts.CacheTTL); err != nil {
			log.Printf("Failed to cache crawl result: %v", err)
		}
	}

	return result, nil
}

// crawlSite navigates one site (once per keyword, or once for the category)
// and folds its normalized records into the result. The site's rate window is
// honored before each navigation.
func (o *Orchestrator) crawlSite(ctx context.Context, adapter sites.Adapter, req models.CrawlRequest, result *models.CrawlResult, seen map[string]bool) error {
	cfg := adapter.Config()

	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = []string{""}
	}

	var siteErr error
	for _, keyword := range keywords {
		if err := o.limiter(cfg).Wait(ctx); err != nil {
			return models.NewTimeoutError(cfg.ID, "", err)
		}

		url := adapter.SearchURL(req.Category, keyword)
		page, err := o.nav.Navigate(ctx, url, o.opts.NavigationTimeout, browser.NavigateOptions{
			Site:     cfg.ID,
			DelayMin: cfg.DelayMin,
			DelayMax: cfg.DelayMax,
			Headers:  cfg.Headers,
		})
		if err != nil {
			return err
		}

		candidates, err := adapter.ExtractCandidates(page.HTML, page.URL)
		if err != nil {
			return err
		}

		for _, c := range candidates {
			if err := o.collect(c, req, result, seen); err != nil {
				// One bad candidate is recorded but must not abort the
				// rest of the site's candidates.
				siteErr = err
			}
		}
	}

	return siteErr
}

func (o *Orchestrator) collect(c models.Candidate, req models.CrawlRequest, result *models.CrawlResult, seen map[string]bool) error {
	if req.Kind == models.KindJobs {
		job, err := pipeline.NormalizeJob(c, req)
		if err != nil || job == nil {
			return err
		}
		if seen[job.ID] {
			return nil
		}
		seen[job.ID] = true
		result.Jobs = append(result.Jobs, *job)
		return nil
	}

	var pattern *regexp.Regexp
	if a, ok := o.registry.Get(c.SourceSite); ok {
		pattern = a.Config().CompanyPattern
	}
	q, err := pipeline.NormalizeQuestion(c, req, pattern)
	if err != nil || q == nil {
		return err
	}
	if seen[q.ID] {
		return nil
	}
	seen[q.ID] = true
	result.Questions = append(result.Questions, *q)
	return nil
}

func (o *Orchestrator) cap(result *models.CrawlResult, max int) {
	// max == 0 means unbounded.
	if max <= 0 {
		return
	}
	if len(result.Questions) > max {
		result.Questions = result.Questions[:max]
	}
	if len(result.Jobs) > max {
		result.Jobs = result.Jobs[:max]
	}
}

// limiter returns the shared rate limiter for a site, creating it on first
// use. Limiters are concurrency-safe, so overlapping API requests share one
// budget per site.
func (o *Orchestrator) limiter(cfg *sites.Config) *rate.Limiter {
	o.mu.Lock()
	defer o.mu.Unlock()

	l, ok := o.limiters[cfg.ID]
	if !ok {
		if cfg.RateLimit.Requests > 0 && cfg.RateLimit.Window > 0 {
			interval := cfg.RateLimit.Window / time.Duration(cfg.RateLimit.Requests)
			l = rate.NewLimiter(rate.Every(interval), 1)
		} else {
			l = rate.NewLimiter(rate.Inf, 1)
		}
		o.limiters[cfg.ID] = l
	}
	return l
}

// cacheKey derives a deterministic key from the full request: keywords and
// site selection are sorted so semantically identical requests always hit
// the same entry.
func cacheKey(req models.CrawlRequest) string {
	keywords := append([]string(nil), req.Keywords...)
	sort.Strings(keywords)

	siteSel := append([]string(nil), req.Sites...)
	sort.Strings(siteSel)

	parts := []string{
		"jobradar", "crawl",
		string(req.Kind),
		strings.ToLower(req.Category),
		strings.ToLower(strings.Join(keywords, ",")),
		strings.Join(siteSel, ","),
		fmt.Sprintf("max=%d", req.MaxResults),
	}
	return strings.Join(parts, ":")
}
