package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// maxErrBodySize is how much of an unexpected response is kept in
// its UnexpectedStatusError.
const maxErrBodySize = 4 << 10

// Every UnexpectedStatusError wraps ErrUnexpectedStatusCode. A 401 or 403
// also wraps ErrAuthFailure; a 429, which the backend sends when its own
// quota is spent despite the client-side windows, also wraps ErrRateLimited.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrAuthFailure          = errors.New("agency api rejected credentials")
	ErrRateLimited          = errors.New("agency api rate limit exceeded")
)

// UnexpectedStatusError reports a response whose status differs from
// the one the caller asked [Client.Do] for.
type UnexpectedStatusError struct {
	StatusCode int
	Body       string
	// RetryAfter is parsed from the Retry-After header of a 429 response.
	RetryAfter time.Duration
	Err        error
}

func (e *UnexpectedStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%v: %d", e.Err, e.StatusCode)
	}
	return fmt.Sprintf("%v: %d: %s", e.Err, e.StatusCode, e.Body)
}

func (e *UnexpectedStatusError) Unwrap() error {
	return e.Err
}

func newStatusError(resp *http.Response, body []byte) *UnexpectedStatusError {
	se := UnexpectedStatusError{StatusCode: resp.StatusCode, Body: string(body), Err: ErrUnexpectedStatusCode}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		se.Err = fmt.Errorf("%w: %w", ErrUnexpectedStatusCode, ErrAuthFailure)
	case http.StatusTooManyRequests:
		se.Err = fmt.Errorf("%w: %w", ErrUnexpectedStatusCode, ErrRateLimited)
		se.RetryAfter = retryAfter(resp.Header.Get("Retry-After"), time.Now())
	}

	return &se
}

// retryAfter accepts both forms of the Retry-After header:
// delay-seconds and an HTTP date.
func retryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}

	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}

	if at, err := http.ParseTime(v); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}

	return 0
}
