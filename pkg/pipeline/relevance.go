package pipeline

import (
	"strings"

	"jobradar/pkg/models"
)

// defaultCategoryKeywords backs the relevance filter when a request carries
// no explicit keywords.
var defaultCategoryKeywords = map[string][]string{
	"backend":  {"api", "server", "database", "cache", "rest", "microservice", "backend"},
	"frontend": {"css", "html", "javascript", "react", "ui", "frontend", "browser"},
	"fullstack": {
		"api", "javascript", "database", "frontend", "backend", "fullstack", "full stack",
	},
	"devops":  {"docker", "kubernetes", "ci/cd", "pipeline", "terraform", "deployment", "devops"},
	"data":    {"sql", "pipeline", "spark", "etl", "analytics", "data"},
	"ml":      {"model", "training", "neural", "machine learning", "ml", "ai"},
	"mobile":  {"android", "ios", "swift", "kotlin", "mobile", "app"},
	"general": {"interview", "question", "job", "engineer", "developer"},
}

// DefaultKeywords returns the default keyword set for a category, or the
// general set for unknown categories.
func DefaultKeywords(category string) []string {
	if kws, ok := defaultCategoryKeywords[strings.ToLower(category)]; ok {
		return kws
	}
	return defaultCategoryKeywords["general"]
}

// KnownCategory reports whether the category has a configured keyword set.
func KnownCategory(category string) bool {
	_, ok := defaultCategoryKeywords[strings.ToLower(category)]
	return ok
}

// IsRelevant reports whether cleaned text matches the request: it must
// contain at least one request keyword (case-insensitive), or absent
// keywords, one of the category's defaults.
func IsRelevant(cleanText string, req models.CrawlRequest) bool {
	lower := strings.ToLower(cleanText)

	keywords := req.Keywords
	if len(keywords) == 0 {
		keywords = DefaultKeywords(req.Category)
	}

	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
