package sites

import (
	"regexp"
	"time"

	"jobradar/pkg/models"
)

// Field names used as keys into a site's selector table and reported in
// parse errors.
const (
	FieldCard       = "card"
	FieldQuestion   = "question"
	FieldTitle      = "title"
	FieldCompany    = "company"
	FieldLocation   = "location"
	FieldSalary     = "salary"
	FieldExperience = "experience"
)

// RateLimit is a per-site request budget over a sliding window.
type RateLimit struct {
	Requests int
	Window   time.Duration
}

// Config holds everything a site adapter needs: where to search, how to
// locate fields in the markup, and how politely to behave. Constructed once
// at process start and never mutated during a crawl.
type Config struct {
	ID      string
	BaseURL string
	Kind    models.Kind

	// SearchPath is a format string receiving the URL-escaped query.
	SearchPath string

	// Selectors maps a field to an ordered list of CSS selectors. The
	// adapter tries each in turn and takes the first that yields content,
	// which absorbs site markup drift without branching elsewhere.
	Selectors map[string][]string

	// ExcludeSelectors are stripped from the document before extraction
	// (navigation chrome, ads, scripts).
	ExcludeSelectors []string

	Headers map[string]string

	RateLimit RateLimit

	// DelayMin/DelayMax bound the randomized anti-bot pause applied before
	// each navigation to this site.
	DelayMin time.Duration
	DelayMax time.Duration

	// CompanyPattern extracts a company name from surrounding text on
	// question sites. Optional.
	CompanyPattern *regexp.Regexp
}
