package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrorKind classifies provider failures for retry decisions.
type ErrorKind int

const (
	// KindUnavailable covers network failures and 5xx responses.
	KindUnavailable ErrorKind = iota
	// KindRateLimited is a 429 response.
	KindRateLimited
	// KindAuth is a rejected or missing API key. It is never retried.
	KindAuth
	// KindInvalidResponse is output that is not JSON or does not match the
	// requested schema.
	KindInvalidResponse
	// KindTruncated is structured output cut off at the token limit.
	KindTruncated
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindRateLimited:
		return "rate_limited"
	case KindAuth:
		return "auth"
	case KindInvalidResponse:
		return "invalid_response"
	case KindTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by providers for every failed generation.
type Error struct {
	Kind     ErrorKind
	Provider string

	// RetryAfter is the server-requested wait for KindRateLimited, if any.
	RetryAfter time.Duration

	// Content is the raw output for KindInvalidResponse and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case KindRateLimited:
		msg = "rate limited"
		if e.RetryAfter > 0 {
			msg += fmt.Sprintf(" (retry after %s)", e.RetryAfter)
		}
	case KindAuth:
		msg = "authentication failed"
	case KindInvalidResponse:
		msg = "invalid response"
	case KindTruncated:
		msg = "response truncated at max tokens"
	case KindUnavailable:
		msg = "provider unavailable"
	}
	if e.Provider != "" {
		msg = e.Provider + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func invalidResponse(content json.RawMessage, err error) *Error {
	return &Error{Kind: KindInvalidResponse, Content: content, Err: err}
}

// errorFromStatus classifies an API error by its HTTP status code.
func errorFromStatus(provider string, status int, header http.Header, err error) *Error {
	e := &Error{Kind: KindUnavailable, Provider: provider, Err: err}
	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(header)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
	}
	return e
}

// parseRetryAfter reads a Retry-After header given in seconds.
func parseRetryAfter(h http.Header) time.Duration {
	if h == nil {
		return 0
	}
	secs, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
