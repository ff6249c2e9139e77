package sites

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobradar/pkg/models"
)

// Adapter translates one site's raw page content into crawl candidates.
// Adding a site means registering one more Adapter; nothing else changes.
type Adapter interface {
	Name() string
	Kind() models.Kind
	Config() *Config
	SearchURL(category, keyword string) string
	ExtractCandidates(html, pageURL string) ([]models.Candidate, error)
}

// selectorAdapter is the config-driven adapter used by every built-in site.
// It walks the ordered selector fallbacks per field, so markup drift on one
// selector degrades to the next instead of breaking the site.
type selectorAdapter struct {
	cfg *Config
}

func newSelectorAdapter(cfg *Config) *selectorAdapter {
	return &selectorAdapter{cfg: cfg}
}

func (a *selectorAdapter) Name() string {
	return a.cfg.ID
}

func (a *selectorAdapter) Kind() models.Kind {
	return a.cfg.Kind
}

func (a *selectorAdapter) Config() *Config {
	return a.cfg
}

func (a *selectorAdapter) SearchURL(category, keyword string) string {
	query := keyword
	if query == "" {
		query = category
		// Paths like /%s-interview-questions already carry the intent.
		if a.cfg.Kind == models.KindQuestions && !strings.Contains(a.cfg.SearchPath, "interview") {
			query = category + " interview questions"
		}
	}
	return a.cfg.BaseURL + fmt.Sprintf(a.cfg.SearchPath, url.QueryEscape(query))
}

func (a *selectorAdapter) ExtractCandidates(html, pageURL string) ([]models.Candidate, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, models.NewParseError(a.cfg.ID, "document", err)
	}

	if throttled(doc) {
		return nil, models.NewRateLimitError(a.cfg.ID, time.Minute)
	}

	prepDocument(doc, a.cfg.ExcludeSelectors)

	if a.cfg.Kind == models.KindJobs {
		return a.extractJobCards(doc, pageURL)
	}
	return a.extractQuestions(doc, pageURL), nil
}

func (a *selectorAdapter) extractQuestions(doc *goquery.Document, pageURL string) []models.Candidate {
	var candidates []models.Candidate
	now := time.Now()

	selection := findAny(doc.Selection, a.cfg.Selectors[FieldQuestion])
	if selection == nil {
		return nil
	}

	selection.Each(func(i int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			return
		}
		candidates = append(candidates, models.Candidate{
			RawText:     text,
			SourceURL:   pageURL,
			SourceSite:  a.cfg.ID,
			ExtractedAt: now,
		})
	})

	return candidates
}

func (a *selectorAdapter) extractJobCards(doc *goquery.Document, pageURL string) ([]models.Candidate, error) {
	cards := findAny(doc.Selection, a.cfg.Selectors[FieldCard])
	if cards == nil {
		return nil, nil
	}

	var candidates []models.Candidate
	now := time.Now()

	cards.Each(func(i int, card *goquery.Selection) {
		fields := make(map[string]string)
		for _, field := range []string{FieldTitle, FieldCompany, FieldLocation, FieldSalary, FieldExperience} {
			if value := firstText(card, a.cfg.Selectors[field]); value != "" {
				fields[field] = value
			}
		}

		candidates = append(candidates, models.Candidate{
			RawText:     strings.TrimSpace(card.Text()),
			Fields:      fields,
			SourceURL:   pageURL,
			SourceSite:  a.cfg.ID,
			ExtractedAt: now,
		})
	})

	return candidates, nil
}

// findAny returns the first selector in the fallback list that matches at
// least one element, or nil when the whole list strikes out.
func findAny(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if s := root.Find(sel); s.Length() > 0 {
			return s
		}
	}
	return nil
}

// firstText returns the trimmed text of the first fallback selector that
// yields non-empty content within the given element.
func firstText(root *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(root.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// prepDocument strips chrome and noise before extraction.
func prepDocument(doc *goquery.Document, extra []string) {
	doc.Find("script, style, nav, header, footer, aside, form, iframe, noscript").Remove()
	for _, sel := range extra {
		doc.Find(sel).Remove()
	}
}

var throttleMarkers = []string{
	"unusual traffic",
	"verify you are a human",
	"are you a robot",
	"access denied",
	"captcha",
}

// throttled detects site-level anti-bot interstitials served instead of
// real content.
func throttled(doc *goquery.Document) bool {
	body := strings.ToLower(doc.Find("body").Text())
	if len(body) > 2000 {
		// Real result pages are long; interstitials are short.
		return false
	}
	for _, marker := range throttleMarkers {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}
