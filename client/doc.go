// Package client provides the core implementation of the configurable HTTP
// client built on [net/http].
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options:
//
//	c, err := client.Build(
//		client.WithTimeout(10 * time.Second),
//		client.WithUserAgent("agency-dashboard/1.0"),
//		client.WithWindowThrottle(5, time.Minute),
//	)
//
// # Making Requests
//
// Build a request with [Client.Request], then send it with [Client.Do]:
//
//	req, err := c.Request(ctx, u, http.MethodPost, client.WithPayload(in))
//	err = c.Do(req, http.StatusCreated, client.WithDestination(&out))
//
// # Throttling
//
// A throttled Client holds each request until its limiter admits it.
// [WithWindowThrottle] allows a fixed number of requests per window,
// [WithThrottle] uses a token bucket, and [WithLimiter] plugs in an
// existing limiter so several clients can share one budget. See the
// [github.com/adamwoolhether/agencyapi/client/throttle] package.
//
// [WithTimeout] starts counting only once the throttle has admitted a
// request, so a delayed request is never dropped for having waited.
// Bound the total time, wait included, with the request's context.
//
// A server that still answers 429 produces an [UnexpectedStatusError]
// matching [ErrRateLimited], with the server's Retry-After hint.
package client
