package generator

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RateLimitError indicates a generator provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0,
// defaults to 30s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 30
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}

const maxReasonLen = 300

// SanitizeReason turns a generation failure into a bounded, log-safe reason
// string. Any occurrence of the given secrets (API keys) is redacted and the
// result is truncated so raw provider payloads never reach API responses.
func SanitizeReason(err error, secrets ...string) string {
	if err == nil {
		return ""
	}
	reason := err.Error()
	for _, s := range secrets {
		if s == "" {
			continue
		}
		reason = strings.ReplaceAll(reason, s, "[redacted]")
	}
	reason = strings.Join(strings.Fields(reason), " ")
	if len(reason) > maxReasonLen {
		reason = reason[:maxReasonLen] + "..."
	}
	return reason
}
