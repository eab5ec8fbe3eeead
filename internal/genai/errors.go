package genai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrSafetyBlocked marks a generation refused by content-policy filters.
// Retrying a safety block cannot succeed, so callers return immediately.
var ErrSafetyBlocked = errors.New("blocked by safety filters")

// APIError is a non-OK response from the remote endpoint.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsSafetyBlocked reports whether err signals a content-policy block.
func IsSafetyBlocked(err error) bool {
	if errors.Is(err, ErrSafetyBlocked) {
		return true
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "safety")
}

// IsRetryable reports whether err signals rate limiting, quota exhaustion, or a
// timeout. Timeouts are treated identically to rate limiting: backed off and retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 429 {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "timeout")
}
