package throttle

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// throttle is an http.RoundTripper that holds each outbound
// request until its Limiter admits it.
type throttle struct {
	limiter Limiter
	name    string
	tracer  trace.Tracer
	next    http.RoundTripper
	logFn   func() *slog.Logger
}

// Option configures the throttling transport.
type Option func(*throttle)

// WithName labels the limiter in logs and spans, typically
// with the backend service it protects.
func WithName(name string) Option {
	return func(t *throttle) {
		t.name = name
	}
}

// WithTracer records a span around every limiter wait.
func WithTracer(tracer trace.Tracer) Option {
	return func(t *throttle) {
		if tracer != nil {
			t.tracer = tracer
		}
	}
}

// NewRoundTripper returns an http.RoundTripper that throttles outbound
// requests through l. logFn lazily resolves the logger at request time,
// making option ordering irrelevant. A nil-returning logFn disables
// saturation logging.
func NewRoundTripper(l Limiter, logFn func() *slog.Logger, next http.RoundTripper, opts ...Option) (http.RoundTripper, error) {
	if l == nil {
		return nil, fmt.Errorf("limiter must not be nil: %w", ErrInvalidHandle)
	}

	if next == nil {
		next = http.DefaultTransport
	}

	if logFn == nil {
		logFn = func() *slog.Logger { return nil }
	}

	t := &throttle{
		limiter: l,
		name:    "default",
		tracer:  noop.NewTracerProvider().Tracer("throttle"),
		next:    next,
		logFn:   logFn,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

func (t *throttle) RoundTrip(r *http.Request) (*http.Response, error) {
	ctx := r.Context()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	ctx, span := t.tracer.Start(ctx, "throttle.wait")
	span.SetAttributes(
		attribute.String("throttle.limiter", t.name),
		attribute.String("http.path", r.URL.Path),
	)

	var waited time.Duration
	logger := t.logFn()
	if logger != nil && saturated(t.limiter) {
		logger.Info("throttle saturated", "limiter", t.name, "state", t.limiter, "path", r.URL.Path)
		defer func() {
			logger.Info("throttle wait complete", "limiter", t.name, "waited", waited.String())
		}()
	}

	start := time.Now()
	err := t.limiter.Wait(ctx)
	waited = time.Since(start)

	span.SetAttributes(attribute.Int64("throttle.waited_ms", waited.Milliseconds()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "throttle wait failed")
		span.End()

		if errors.Is(err, ErrInvalidHandle) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrWaitingFailed, err)
	}
	span.End()

	if err := r.Context().Err(); err != nil { // Check context hasn't expired again.
		return nil, fmt.Errorf("%w post-wait: %w", ErrContextEnded, err)
	}

	return t.next.RoundTrip(r)
}

func saturated(l Limiter) bool {
	s, ok := l.(saturater)
	return ok && s.Saturated()
}
