package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/agencyapi/client/throttle"
)

// Option configures a [Client] built by [Build].
type Option func(*options) error

type options struct {
	base       *http.Client
	transport  http.RoundTripper
	timeout    time.Duration
	hasTimeout bool
	userAgent  string
	token      string
	requestID  bool
	limiter    throttle.Limiter
	name       string
	tracer     trace.Tracer
	logger     *slog.Logger
}

// WithClient starts from a copy of hc; hc is left untouched. Its
// Timeout, unless overridden by [WithTimeout], is enforced per
// transmission like WithTimeout.
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		o.base = hc
		return nil
	}
}

// WithTransport replaces the base transport every request finally goes through.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.transport = rt
		return nil
	}
}

// WithTimeout bounds each transmission, from the moment the throttle
// admits the request until its response body is closed. Time spent
// waiting on the throttle does not count; bound that with the
// request's context. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return fmt.Errorf("timeout %s must not be negative", d)
		}
		o.timeout, o.hasTimeout = d, true
		return nil
	}
}

// WithUserAgent sets the User-Agent header of every request.
func WithUserAgent(ua string) Option {
	return func(o *options) error {
		o.userAgent = ua
		return nil
	}
}

// WithBearerToken sends token in the Authorization header of every request.
func WithBearerToken(token string) Option {
	return func(o *options) error {
		if token == "" {
			return errors.New("bearer token must not be empty")
		}
		o.token = token
		return nil
	}
}

// WithRequestID tags every request lacking an X-Request-ID header with a fresh UUID.
func WithRequestID() Option {
	return func(o *options) error {
		o.requestID = true
		return nil
	}
}

// WithWindowThrottle admits at most maxRequests requests per window.
// Requests beyond the limit wait for the window to end.
func WithWindowThrottle(maxRequests int, window time.Duration) Option {
	return func(o *options) error {
		w, err := throttle.Configure(maxRequests, window)
		if err != nil {
			return fmt.Errorf("window throttle: %w", err)
		}
		o.limiter = w
		return nil
	}
}

// WithThrottle paces requests with a token bucket of rps requests per
// second and the given burst.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		b, err := throttle.NewTokenBucket(rps, burst)
		if err != nil {
			return fmt.Errorf("token bucket: %w", err)
		}
		o.limiter = b
		return nil
	}
}

// WithLimiter throttles requests through an existing limiter, letting
// several clients share one throttle state.
func WithLimiter(l throttle.Limiter) Option {
	return func(o *options) error {
		if l == nil {
			return fmt.Errorf("limiter must not be nil: %w", throttle.ErrInvalidHandle)
		}
		o.limiter = l
		return nil
	}
}

// WithName labels the client's throttle logs and spans, typically with
// the backend service it talks to.
func WithName(name string) Option {
	return func(o *options) error {
		o.name = name
		return nil
	}
}

// WithTracer records spans for requests and throttle waits.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithLogger sets the logger used for throttle and response-body diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// RequestOption configures a request built by [Client.Request].
type RequestOption func(*requestOpts) error

type requestOpts struct {
	payload any
	header  http.Header
}

// WithPayload sends body JSON-encoded.
func WithPayload(body any) RequestOption {
	return func(ro *requestOpts) error {
		if body == nil {
			return errors.New("payload must not be nil")
		}
		ro.payload = body
		return nil
	}
}

// WithHeader adds a header to the request.
func WithHeader(key, value string) RequestOption {
	return func(ro *requestOpts) error {
		if ro.header == nil {
			ro.header = make(http.Header)
		}
		ro.header.Add(key, value)
		return nil
	}
}

// DoOption configures how [Client.Do] handles a successful response.
type DoOption func(*doOpts)

type doOpts struct {
	dest any
}

// WithDestination decodes the JSON response body into dest.
func WithDestination[T any](dest *T) DoOption {
	return func(do *doOpts) {
		do.dest = dest
	}
}
