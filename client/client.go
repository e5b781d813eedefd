package client

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/agencyapi/client/throttle"
)

// Client sends JSON requests through an optional throttle. Each Client
// owns its own [http.Client], so options never leak into
// [http.DefaultClient] or into other Clients.
type Client struct {
	hc      *http.Client
	logger  *slog.Logger
	tracer  trace.Tracer
	limiter throttle.Limiter
	name    string
}

// Build applies opts and assembles the transport chain. Outermost
// first: throttle, request ID, auth, user agent, timeout, base.
func Build(opts ...Option) (*Client, error) {
	var o options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	c := Client{
		hc:      &http.Client{},
		logger:  cmp.Or(o.logger, slog.Default()),
		tracer:  o.tracer,
		limiter: o.limiter,
		name:    cmp.Or(o.name, "default"),
	}
	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer("client")
	}

	timeout := o.timeout
	if o.base != nil {
		cpy := *o.base
		if !o.hasTimeout {
			timeout = cpy.Timeout
		}
		cpy.Timeout = 0
		c.hc = &cpy
	}

	rt, err := c.chain(o, timeout)
	if err != nil {
		return nil, err
	}
	c.hc.Transport = rt

	return &c, nil
}

func (c *Client) chain(o options, timeout time.Duration) (http.RoundTripper, error) {
	var rt http.RoundTripper = http.DefaultTransport
	switch {
	case o.transport != nil:
		rt = o.transport
	case c.hc.Transport != nil:
		rt = c.hc.Transport
	}

	if timeout > 0 {
		rt = deadline{timeout: timeout, next: rt}
	}
	if o.userAgent != "" {
		rt = userAgent{value: o.userAgent, next: rt}
	}
	if o.token != "" {
		rt = bearer{token: o.token, next: rt}
	}
	if o.requestID {
		rt = requestID{next: rt}
	}

	if c.limiter == nil {
		return rt, nil
	}

	throttled, err := throttle.NewRoundTripper(c.limiter, func() *slog.Logger { return c.logger }, rt,
		throttle.WithName(c.name),
		throttle.WithTracer(c.tracer),
	)
	if err != nil {
		return nil, fmt.Errorf("configuring throttle: %w", err)
	}

	return throttled, nil
}

// Limiter returns the limiter gating the Client's requests, or nil
// when the Client is unthrottled.
func (c *Client) Limiter() throttle.Limiter {
	return c.limiter
}

// Request builds a request for u. Every request accepts JSON; one
// carrying a payload also declares it.
func (c *Client) Request(ctx context.Context, u *url.URL, method string, opts ...RequestOption) (*http.Request, error) {
	var ro requestOpts
	for _, opt := range opts {
		if err := opt(&ro); err != nil {
			return nil, err
		}
	}

	var body io.Reader = http.NoBody
	if ro.payload != nil {
		b, err := json.Marshal(ro.payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", method, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", method, err)
	}

	req.Header.Set("Accept", "application/json")
	if ro.payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range ro.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	return req, nil
}

// Do sends req and fails with an [*UnexpectedStatusError] unless the
// response status is want.
func (c *Client) Do(req *http.Request, want int, opts ...DoOption) (err error) {
	var do doOpts
	for _, opt := range opts {
		opt(&do)
	}

	ctx, span := c.tracer.Start(req.Context(), "client.do", trace.WithAttributes(
		attribute.String("client.name", c.name),
		attribute.String("http.method", req.Method),
		attribute.String("http.path", req.URL.Path),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "request failed")
		}
		span.End()
	}()

	resp, err := c.hc.Do(req.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer c.drain(resp)

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != want {
		body, rerr := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if rerr != nil {
			body = []byte("unable to read body")
		}
		return newStatusError(resp, body)
	}

	if do.dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(do.dest); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// drain empties and closes the body so the connection can be reused.
func (c *Client) drain(resp *http.Response) {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		c.logger.Debug("discarding response body", "client", c.name, "error", err)
	}
	if err := resp.Body.Close(); err != nil {
		c.logger.Error("closing response body", "client", c.name, "error", err)
	}
}
