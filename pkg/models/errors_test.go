package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCrawlError_Message(t *testing.T) {
	err := NewParseError("siteA", "title", errors.New("no match"))
	assert.Contains(t, err.Error(), "parse")
	assert.Contains(t, err.Error(), "siteA")
	assert.Contains(t, err.Error(), "field=title")
	assert.Contains(t, err.Error(), "no match")
}

func TestCrawlError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewNetworkError("siteA", "http://x", cause)
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrTimeout, KindOf(NewTimeoutError("s", "u", nil)))
	assert.Equal(t, ErrRateLimit, KindOf(NewRateLimitError("s", time.Minute)))
	assert.Equal(t, ErrUnknown, KindOf(errors.New("plain")))

	// Wrapped taxonomy errors still classify.
	wrapped := fmt.Errorf("outer: %w", NewParseError("s", "f", nil))
	assert.Equal(t, ErrParse, KindOf(wrapped))
}

func TestCrawlResult_Count(t *testing.T) {
	q := &CrawlResult{Kind: KindQuestions, Questions: []InterviewQuestion{{}, {}}}
	assert.Equal(t, 2, q.Count())

	j := &CrawlResult{Kind: KindJobs, Jobs: []JobPosition{{}}}
	assert.Equal(t, 1, j.Count())
}
