package pipeline

import (
	"regexp"
	"sort"
	"strings"
)

// UnknownCompany is the documented fallback when no company can be
// extracted from the surrounding context.
const UnknownCompany = "unknown"

// tagVocabulary is the fixed set of technology terms recognized as tags.
// Multi-word terms are matched as substrings; single words on word
// boundaries so "go" does not fire inside "mongodb". Punctuation splits
// tokens, so "redis." and "redis/memcached" still yield their terms.
var tagVocabulary = []string{
	"go", "golang", "python", "java", "javascript", "typescript", "c++",
	"rust", "ruby", "php", "kotlin", "swift", "react", "angular", "vue",
	"node", "spring", "django", "sql", "mysql", "postgresql", "mongodb",
	"redis", "elasticsearch", "kafka", "rabbitmq", "docker", "kubernetes",
	"aws", "azure", "gcp", "linux", "git", "rest", "graphql", "grpc",
	"microservices", "cache", "oauth", "jwt", "ci/cd", "terraform",
}

var wordBoundary = regexp.MustCompile(`[a-z0-9+#]+`)

// ExtractTags returns the vocabulary terms present in the text. Set
// semantics: each tag appears at most once; output is sorted for stable
// comparisons, the set itself is order-free.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)

	words := make(map[string]bool)
	for _, w := range wordBoundary.FindAllString(lower, -1) {
		words[w] = true
	}

	seen := make(map[string]bool)
	var tags []string
	for _, term := range tagVocabulary {
		if seen[term] {
			continue
		}
		matched := false
		if strings.ContainsAny(term, " /") || strings.Contains(term, "+") {
			matched = strings.Contains(lower, term)
		} else {
			matched = words[term]
		}
		if matched {
			seen[term] = true
			tags = append(tags, term)
		}
	}

	sort.Strings(tags)
	return tags
}

// ExtractCompany applies the site-supplied pattern to the candidate's
// surrounding context. Falls back to UnknownCompany when the pattern is nil
// or finds nothing.
func ExtractCompany(text string, pattern *regexp.Regexp) string {
	if pattern == nil {
		return UnknownCompany
	}
	match := pattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return UnknownCompany
	}
	company := strings.TrimSpace(match[1])
	if company == "" {
		return UnknownCompany
	}
	return company
}
