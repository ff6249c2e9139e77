package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind discriminates crawl failure categories. Every component signals
// failures through CrawlError so the orchestrator can decide per-site
// continuation without string matching.
type ErrorKind string

const (
	ErrTimeout   ErrorKind = "timeout"
	ErrNetwork   ErrorKind = "network"
	ErrParse     ErrorKind = "parse"
	ErrRateLimit ErrorKind = "rate_limit"
	ErrUnknown   ErrorKind = "unknown"
)

// CrawlError is the tagged error type used across the crawler. Site, URL and
// Field are optional context; Err is the wrapped cause.
type CrawlError struct {
	Kind       ErrorKind
	Site       string
	URL        string
	Field      string
	RetryAfter time.Duration
	Err        error
}

func (e *CrawlError) Error() string {
	msg := string(e.Kind)
	if e.Site != "" {
		msg += " [" + e.Site + "]"
	}
	if e.Field != "" {
		msg += " field=" + e.Field
	}
	if e.URL != "" {
		msg += " url=" + e.URL
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CrawlError) Unwrap() error {
	return e.Err
}

func NewTimeoutError(site, url string, err error) *CrawlError {
	return &CrawlError{Kind: ErrTimeout, Site: site, URL: url, Err: err}
}

func NewNetworkError(site, url string, err error) *CrawlError {
	return &CrawlError{Kind: ErrNetwork, Site: site, URL: url, Err: err}
}

func NewParseError(site, field string, err error) *CrawlError {
	return &CrawlError{Kind: ErrParse, Site: site, Field: field, Err: err}
}

func NewRateLimitError(site string, retryAfter time.Duration) *CrawlError {
	return &CrawlError{
		Kind:       ErrRateLimit,
		Site:       site,
		RetryAfter: retryAfter,
		Err:        fmt.Errorf("site throttled, retry after %s", retryAfter),
	}
}

func NewUnknownError(site string, err error) *CrawlError {
	return &CrawlError{Kind: ErrUnknown, Site: site, Err: err}
}

// KindOf extracts the failure category from any error chain, defaulting to
// ErrUnknown for errors raised outside the taxonomy.
func KindOf(err error) ErrorKind {
	var ce *CrawlError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ErrUnknown
}
