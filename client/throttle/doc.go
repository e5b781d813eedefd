// Package throttle gates outbound HTTP requests so that a backend is
// never stormed by a single client.
//
// # Fixed windows
//
// [Window] admits at most N calls per rolling window of length W. Calls
// beyond the limit are delayed, not dropped, until the window resets:
//
//	w, err := throttle.Configure(5, time.Minute)
//	if err != nil { ... }
//	if err := w.Acquire(ctx); err != nil { ... }
//
// Each [Configure] call returns an independent handle, so one Window
// should be created per backend service and shared by its callers.
//
// # Token buckets
//
// [TokenBucket] wraps the [golang.org/x/time/rate] limiter for callers
// that prefer a smooth requests-per-second rate with a burst allowance.
//
// # Transport
//
// Either limiter can front an existing transport with [NewRoundTripper]:
//
//	rt, err := throttle.NewRoundTripper(
//		w,
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// Outbound requests block until the limiter admits them or the request
// context is cancelled.
package throttle
