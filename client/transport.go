package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request UUID set by [WithRequestID].
const RequestIDHeader = "X-Request-ID"

// userAgent sets the User-Agent header.
type userAgent struct {
	value string
	next  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.next.RoundTrip(cpy)
}

// bearer sets the Authorization header.
type bearer struct {
	token string
	next  http.RoundTripper
}

func (b bearer) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("Authorization", "Bearer "+b.token)
	return b.next.RoundTrip(cpy)
}

// requestID tags requests with a UUID unless the caller already set one.
type requestID struct {
	next http.RoundTripper
}

func (rid requestID) RoundTrip(r *http.Request) (*http.Response, error) {
	if r.Header.Get(RequestIDHeader) != "" {
		return rid.next.RoundTrip(r)
	}

	cpy := r.Clone(r.Context())
	cpy.Header.Set(RequestIDHeader, uuid.NewString())
	return rid.next.RoundTrip(cpy)
}

// deadline bounds a single transmission. It sits below the throttle,
// so the clock starts only once the request has been admitted, and
// runs until the response body is closed.
type deadline struct {
	timeout time.Duration
	next    http.RoundTripper
}

func (d deadline) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)

	resp, err := d.next.RoundTrip(r.WithContext(ctx))
	if err != nil {
		cancel()
		return nil, err
	}

	resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c cancelOnClose) Close() error {
	defer c.cancel()
	return c.ReadCloser.Close()
}
