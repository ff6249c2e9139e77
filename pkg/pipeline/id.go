package pipeline

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// BuildID derives a stable content hash from the cleaned text and the source
// site. The same text from the same site always yields the same id, which is
// what makes dedup idempotent across crawl runs. The site is deliberately
// part of the input: identical text on two sites produces two ids.
func BuildID(cleanText, site string) string {
	h := md5.New()
	h.Write([]byte(site))
	h.Write([]byte{'\n'})
	h.Write([]byte(strings.ToLower(cleanText)))
	return hex.EncodeToString(h.Sum(nil))
}
