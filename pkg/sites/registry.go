package sites

import (
	"fmt"
	"regexp"
	"time"

	"jobradar/pkg/models"
)

var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
}

var companyAskedPattern = regexp.MustCompile(`(?i)asked (?:in|at|by)\s+([A-Z][A-Za-z0-9&.\- ]{1,40})`)

// Registry holds the immutable adapter set. Lookup order is registration
// order, which is also crawl order.
type Registry struct {
	adapters []Adapter
	byName   map[string]Adapter
}

func New(adapters ...Adapter) *Registry {
	r := &Registry{byName: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.adapters = append(r.adapters, a)
		r.byName[a.Name()] = a
	}
	return r
}

// Default returns the registry with every supported site: three interview
// question sites and four job boards.
func Default() *Registry {
	return New(
		newSelectorAdapter(geeksforgeeksConfig()),
		newSelectorAdapter(interviewbitConfig()),
		newSelectorAdapter(javatpointConfig()),
		newSelectorAdapter(indeedConfig()),
		newSelectorAdapter(linkedinConfig()),
		newSelectorAdapter(naukriConfig()),
		newSelectorAdapter(internshalaConfig()),
	)
}

// AdaptersFor resolves a site selection to adapters of the requested kind,
// in registration order. Unknown identifiers are reported in the returned
// error map, never as a fatal failure. An empty selection means every known
// site of that kind.
func (r *Registry) AdaptersFor(selection []string, kind models.Kind) ([]Adapter, map[string]*models.CrawlError) {
	unknown := make(map[string]*models.CrawlError)

	if len(selection) == 0 {
		var out []Adapter
		for _, a := range r.adapters {
			if a.Kind() == kind {
				out = append(out, a)
			}
		}
		return out, unknown
	}

	wanted := make(map[string]bool, len(selection))
	for _, name := range selection {
		if a, ok := r.byName[name]; !ok || a.Kind() != kind {
			unknown[name] = models.NewUnknownError(name, fmt.Errorf("unknown site %q for kind %q", name, kind))
			continue
		}
		wanted[name] = true
	}

	var out []Adapter
	for _, a := range r.adapters {
		if wanted[a.Name()] {
			out = append(out, a)
		}
	}
	return out, unknown
}

// Get looks up an adapter by site identifier.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.byName[name]
	return a, ok
}

// Names returns every registered site identifier in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for _, a := range r.adapters {
		names = append(names, a.Name())
	}
	return names
}

func geeksforgeeksConfig() *Config {
	return &Config{
		ID:         "geeksforgeeks",
		BaseURL:    "https://www.geeksforgeeks.org",
		Kind:       models.KindQuestions,
		SearchPath: "/?s=%s",
		Selectors: map[string][]string{
			FieldQuestion: {
				"article .entry-title a",
				"article h2 a",
				".head a",
			},
		},
		ExcludeSelectors: []string{".sidebar", ".comments"},
		Headers:          defaultHeaders,
		RateLimit:        RateLimit{Requests: 10, Window: time.Minute},
		DelayMin:         500 * time.Millisecond,
		DelayMax:         2 * time.Second,
		CompanyPattern:   companyAskedPattern,
	}
}

func interviewbitConfig() *Config {
	return &Config{
		ID:         "interviewbit",
		BaseURL:    "https://www.interviewbit.com",
		Kind:       models.KindQuestions,
		SearchPath: "/search/?q=%s",
		Selectors: map[string][]string{
			FieldQuestion: {
				".question-title",
				"h3.card-title",
				"li.question a",
			},
		},
		Headers:        defaultHeaders,
		RateLimit:      RateLimit{Requests: 8, Window: time.Minute},
		DelayMin:       time.Second,
		DelayMax:       3 * time.Second,
		CompanyPattern: companyAskedPattern,
	}
}

func javatpointConfig() *Config {
	return &Config{
		ID:         "javatpoint",
		BaseURL:    "https://www.javatpoint.com",
		Kind:       models.KindQuestions,
		SearchPath: "/%s-interview-questions",
		Selectors: map[string][]string{
			FieldQuestion: {
				"#city h3",
				".onlycontent h3",
				"h3",
			},
		},
		ExcludeSelectors: []string{".leftmenu", ".nexttopicdiv"},
		Headers:          defaultHeaders,
		RateLimit:        RateLimit{Requests: 12, Window: time.Minute},
		DelayMin:         500 * time.Millisecond,
		DelayMax:         1500 * time.Millisecond,
		CompanyPattern:   companyAskedPattern,
	}
}

func indeedConfig() *Config {
	return &Config{
		ID:         "indeed",
		BaseURL:    "https://www.indeed.com",
		Kind:       models.KindJobs,
		SearchPath: "/jobs?q=%s",
		Selectors: map[string][]string{
			FieldCard:     {".job_seen_beacon", ".result", ".jobsearch-SerpJobCard"},
			FieldTitle:    {".jobTitle span", "h2.jobTitle a", ".jobtitle"},
			FieldCompany:  {"[data-testid='company-name']", ".companyName", ".company"},
			FieldLocation: {"[data-testid='text-location']", ".companyLocation", ".location"},
			FieldSalary:   {".salary-snippet-container", ".salaryText"},
		},
		Headers:   defaultHeaders,
		RateLimit: RateLimit{Requests: 6, Window: time.Minute},
		DelayMin:  2 * time.Second,
		DelayMax:  5 * time.Second,
	}
}

func linkedinConfig() *Config {
	return &Config{
		ID:         "linkedin",
		BaseURL:    "https://www.linkedin.com",
		Kind:       models.KindJobs,
		SearchPath: "/jobs/search?keywords=%s",
		Selectors: map[string][]string{
			FieldCard:     {".base-card", ".job-search-card"},
			FieldTitle:    {".base-search-card__title", "h3.base-search-card__title"},
			FieldCompany:  {".base-search-card__subtitle a", ".base-search-card__subtitle"},
			FieldLocation: {".job-search-card__location"},
		},
		Headers:   defaultHeaders,
		RateLimit: RateLimit{Requests: 5, Window: time.Minute},
		DelayMin:  2 * time.Second,
		DelayMax:  6 * time.Second,
	}
}

func naukriConfig() *Config {
	return &Config{
		ID:         "naukri",
		BaseURL:    "https://www.naukri.com",
		Kind:       models.KindJobs,
		SearchPath: "/%s-jobs",
		Selectors: map[string][]string{
			FieldCard:       {".srp-jobtuple-wrapper", "article.jobTuple"},
			FieldTitle:      {"a.title", ".title"},
			FieldCompany:    {".comp-name", "a.subTitle"},
			FieldLocation:   {".locWdth", ".location"},
			FieldSalary:     {".sal-wrap span", ".salary"},
			FieldExperience: {".expwdth", ".experience"},
		},
		Headers:   defaultHeaders,
		RateLimit: RateLimit{Requests: 8, Window: time.Minute},
		DelayMin:  time.Second,
		DelayMax:  3 * time.Second,
	}
}

func internshalaConfig() *Config {
	return &Config{
		ID:         "internshala",
		BaseURL:    "https://internshala.com",
		Kind:       models.KindJobs,
		SearchPath: "/internships/keywords-%s",
		Selectors: map[string][]string{
			FieldCard:     {".individual_internship", ".internship_meta"},
			FieldTitle:    {".job-internship-name a", ".profile h3"},
			FieldCompany:  {".company-name", ".company_name"},
			FieldLocation: {".locations a", "#location_names span"},
			FieldSalary:   {".stipend"},
		},
		Headers:   defaultHeaders,
		RateLimit: RateLimit{Requests: 10, Window: time.Minute},
		DelayMin:  time.Second,
		DelayMax:  2500 * time.Millisecond,
	}
}
