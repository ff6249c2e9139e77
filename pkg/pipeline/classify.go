package pipeline

import "strings"

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Marker vocabularies are scanned in order; classification is purely
// rule-based so identical text always classifies identically.
var hardMarkers = []string{
	"distributed", "consensus", "sharding", "consistency", "lock-free",
	"concurrency", "race condition", "scalab", "throughput", "partition",
	"optimize", "complexity analysis", "memory model", "garbage collect",
	"fault toleran", "replication",
}

var mediumMarkers = []string{
	"implement", "design", "compare", "difference between", "trade-off",
	"tradeoff", "complexity", "recursion", "inheritance", "polymorphism",
	"index", "transaction", "thread", "cache", "hash",
}

// ClassifyDifficulty scores text against the marker vocabularies plus a
// length heuristic. Deterministic for a given input.
func ClassifyDifficulty(text string) string {
	lower := strings.ToLower(text)

	score := 0
	for _, marker := range hardMarkers {
		if strings.Contains(lower, marker) {
			score += 2
		}
	}
	for _, marker := range mediumMarkers {
		if strings.Contains(lower, marker) {
			score++
		}
	}
	if len(lower) > 200 {
		score++
	}

	switch {
	case score >= 4:
		return DifficultyHard
	case score >= 2:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// typeVocabulary maps a question type to its trigger terms. Order matters:
// the first type with a match wins, so the more specific categories come
// before the broad ones.
var typeVocabulary = []struct {
	name    string
	markers []string
}{
	{"system-design", []string{"system design", "design a", "architect", "scale", "high availability", "load balanc"}},
	{"behavioral", []string{"tell me about", "describe a time", "conflict", "teamwork", "weakness", "strength", "why do you"}},
	{"database", []string{"sql", "database", "index", "transaction", "normalization", "acid", "query"}},
	{"frontend", []string{"css", "html", "dom", "react", "browser", "rendering"}},
	{"algorithm", []string{"algorithm", "array", "linked list", "tree", "graph", "sort", "search", "dynamic programming", "complexity"}},
	{"backend", []string{"api", "server", "rest", "microservice", "authentication", "middleware", "cache"}},
}

// ClassifyType pattern-matches against a fixed vocabulary and falls back to
// "general" when nothing matches.
func ClassifyType(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range typeVocabulary {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				return entry.name
			}
		}
	}
	return "general"
}
