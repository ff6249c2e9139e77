package models

import "time"

// Kind selects which record variant a crawl produces.
type Kind string

const (
	KindQuestions Kind = "questions"
	KindJobs      Kind = "jobs"
)

// CrawlRequest is the typed input to the orchestrator. The API layer
// validates the shape before calling in; the orchestrator only enforces
// semantic invariants (known category, MaxResults >= 0).
type CrawlRequest struct {
	Kind       Kind     `json:"kind"`
	Category   string   `json:"category"`
	Keywords   []string `json:"keywords,omitempty"`
	Sites      []string `json:"sites,omitempty"`
	MaxResults int      `json:"max_results,omitempty"` // 0 means unbounded
}

// Candidate is a raw extracted fragment plus provenance, produced by a site
// adapter and consumed by the extraction pipeline within a single pass.
type Candidate struct {
	RawText     string
	Fields      map[string]string // per-field raw text for job cards
	SourceURL   string
	SourceSite  string
	ExtractedAt time.Time
}

// InterviewQuestion is the normalized record for question sites.
type InterviewQuestion struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Category   string    `json:"category"`
	Difficulty string    `json:"difficulty"`
	Type       string    `json:"type"`
	Company    string    `json:"company,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	SourceURL  string    `json:"source_url"`
	SourceSite string    `json:"source_site"`
	CrawledAt  time.Time `json:"crawled_at"`
}

// JobPosition is the normalized record for job boards.
type JobPosition struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Location   string    `json:"location,omitempty"`
	Salary     string    `json:"salary,omitempty"`
	Experience string    `json:"experience,omitempty"`
	Category   string    `json:"category"`
	Tags       []string  `json:"tags,omitempty"`
	SourceURL  string    `json:"source_url"`
	SourceSite string    `json:"source_site"`
	CrawledAt  time.Time `json:"crawled_at"`
}

// SiteError is the per-site error detail recorded in a CrawlResult.
type SiteError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// CrawlResult is the envelope returned by every crawl. Exactly one of
// Questions/Jobs is populated, matching Kind. Records keep discovery order
// and are deduplicated by ID (first occurrence wins).
type CrawlResult struct {
	Success   bool                 `json:"success"`
	Kind      Kind                 `json:"kind"`
	Category  string               `json:"category"`
	Questions []InterviewQuestion  `json:"questions,omitempty"`
	Jobs      []JobPosition        `json:"jobs,omitempty"`
	Errors    map[string]SiteError `json:"errors,omitempty"`
	Cached    bool                 `json:"cached"`
	Timestamp time.Time            `json:"timestamp"`
}

// Count returns the number of records in whichever variant is populated.
func (r *CrawlResult) Count() int {
	if r.Kind == KindJobs {
		return len(r.Jobs)
	}
	return len(r.Questions)
}
