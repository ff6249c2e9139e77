package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	scriptPattern     = regexp.MustCompile(`(?i)<script[^>]*>[\s\S]*?</script>`)
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	jsSchemePattern   = regexp.MustCompile(`(?i)javascript:`)
	eventAttrPattern  = regexp.MustCompile(`(?i)on\w+\s*=`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanText normalizes raw extracted text: strips markup remnants and
// script-injectable sequences, drops control characters, and collapses runs
// of whitespace. Empty output means the candidate carries no usable content.
func CleanText(raw string) string {
	text := scriptPattern.ReplaceAllString(raw, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = jsSchemePattern.ReplaceAllString(text, "")
	text = eventAttrPattern.ReplaceAllString(text, "")

	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, text)

	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
