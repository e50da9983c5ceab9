package xapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrQueueStopped is returned for tasks submitted to a stopped request queue.
var ErrQueueStopped = errors.New("request queue stopped")

// RateLimit carries the platform's quota headers. A field is -1 when the
// corresponding header was absent from the response.
type RateLimit struct {
	Limit     int64
	Remaining int64
	Reset     int64
}

// Summary formats the known quota fields as "limit=X, remaining=Y, reset=Z",
// omitting absent ones. Returns "" when none are known.
func (rl RateLimit) Summary() string {
	var parts []string
	if rl.Limit >= 0 {
		parts = append(parts, fmt.Sprintf("limit=%d", rl.Limit))
	}
	if rl.Remaining >= 0 {
		parts = append(parts, fmt.Sprintf("remaining=%d", rl.Remaining))
	}
	if rl.Reset >= 0 {
		parts = append(parts, fmt.Sprintf("reset=%d", rl.Reset))
	}
	return strings.Join(parts, ", ")
}

// RateLimitError reports an exhausted API quota (HTTP 429). It is expected
// and recoverable; callers degrade to partial results instead of aborting.
type RateLimitError struct {
	Code      int
	RateLimit RateLimit
}

func (e *RateLimitError) Error() string {
	if s := e.RateLimit.Summary(); s != "" {
		return fmt.Sprintf("rate limit exceeded (%s)", s)
	}
	return "rate limit exceeded"
}

// ErrorDetail is one structured entry from the platform's error response.
type ErrorDetail struct {
	Message    string              `json:"message"`
	Parameters map[string][]string `json:"parameters"`
}

// APIError is a classified non-rate-limit platform error. Raw transport
// errors are converted into this type at the client boundary; nothing
// outside this package inspects raw error shapes.
type APIError struct {
	StatusCode int           `json:"-"`
	Title      string        `json:"title"`
	Detail     string        `json:"detail"`
	Errors     []ErrorDetail `json:"errors"`
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Title)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// ErrorCode extracts the numeric status code from a classified platform
// error. ok is false for any other error shape, including nil.
func ErrorCode(err error) (int, bool) {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle.Code, true
	}
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.StatusCode, true
	}
	return 0, false
}

// IsRateLimit reports whether err is a quota-exhausted platform error.
func IsRateLimit(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == http.StatusTooManyRequests
}

// Field names the platform reports invalid pagination cursors under.
var cursorFields = []string{"since_id", "pagination_token", "next_token"}

// IsInvalidCursor reports whether err is the platform rejecting a pagination
// cursor. A structured parameter entry naming a cursor field takes priority;
// a message mentioning the field name is also sufficient.
func IsInvalidCursor(err error) bool {
	var ae *APIError
	if !errors.As(err, &ae) {
		return false
	}
	for _, detail := range ae.Errors {
		for _, field := range cursorFields {
			if _, ok := detail.Parameters[field]; ok {
				return true
			}
		}
	}
	for _, detail := range ae.Errors {
		for _, field := range cursorFields {
			if strings.Contains(detail.Message, field) {
				return true
			}
		}
	}
	return false
}

// RateLimitSummary formats the quota headers attached to err, or "" when err
// carries none.
func RateLimitSummary(err error) string {
	var rle *RateLimitError
	if errors.As(err, &rle) {
		return rle.RateLimit.Summary()
	}
	return ""
}
