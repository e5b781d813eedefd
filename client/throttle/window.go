package throttle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Window admits at most max calls per window. Calls made once the
// window is saturated wait for the remainder of the window and then
// start a fresh one.
//
// Every saturated caller resets the window when its own wait ends, so
// several callers blocked on the same window each start a new one on
// wake-up and are all admitted. Under heavy contention the effective
// rate can therefore exceed max per window.
type Window struct {
	mu       sync.Mutex
	start    time.Time
	count    int
	max      int
	window   time.Duration
	disposed bool
}

// Configure returns a new, independent Window admitting maxRequests
// calls per window. Both bounds must be positive.
func Configure(maxRequests int, window time.Duration) (*Window, error) {
	return ConfigureFrom(Config{MaxRequests: maxRequests, Window: window})
}

// ConfigureFrom is Configure for a Config value.
func ConfigureFrom(cfg Config) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := Window{
		start:  time.Now(),
		max:    cfg.MaxRequests,
		window: cfg.Window,
	}

	return &w, nil
}

// Acquire blocks until the caller is admitted. It returns immediately
// while the window has capacity; otherwise it waits for the window to
// end. A cancelled ctx abandons the wait without touching the counters.
func (w *Window) Acquire(ctx context.Context) error {
	if w == nil {
		return ErrInvalidHandle
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w early: %w", ErrContextEnded, err)
	}

	wait, admitted, err := w.reserve()
	if err != nil || admitted {
		return err
	}

	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w while waiting %s: %w", ErrContextEnded, wait, ctx.Err())
		case <-timer.C:
		}
	}

	return w.resetAndAdmit()
}

// Wait implements Limiter.
func (w *Window) Wait(ctx context.Context) error {
	return w.Acquire(ctx)
}

// Dispose invalidates the handle. Callers still waiting on it fail
// with ErrInvalidHandle when they wake.
func (w *Window) Dispose() {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.disposed = true
}

// Saturated reports whether a call made now would have to wait.
func (w *Window) Saturated() bool {
	if w == nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return time.Since(w.start) <= w.window && w.count >= w.max
}

// Snapshot returns a copy of the current counters.
func (w *Window) Snapshot() State {
	if w == nil {
		return State{}
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	return State{
		Start:       w.start,
		Count:       w.count,
		MaxRequests: w.max,
		Window:      w.window,
	}
}

// LogValue implements slog.LogValuer.
func (w *Window) LogValue() slog.Value {
	s := w.Snapshot()

	return slog.GroupValue(
		slog.Int("max", s.MaxRequests),
		slog.String("window", s.Window.String()),
		slog.Int("count", s.Count),
	)
}

// reserve admits the caller if the window allows it. Otherwise it
// returns how long the caller must wait before the window resets.
func (w *Window) reserve() (time.Duration, bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.disposed {
		return 0, false, ErrInvalidHandle
	}

	now := time.Now()
	elapsed := now.Sub(w.start)

	switch {
	case elapsed > w.window:
		w.start = now
		w.count = 0
	case w.count >= w.max:
		return w.window - elapsed, false, nil
	}

	w.count++

	return 0, true, nil
}

// resetAndAdmit starts a new window after a saturated wait and admits
// the caller into it.
func (w *Window) resetAndAdmit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.disposed {
		return ErrInvalidHandle
	}

	if now := time.Now(); now.After(w.start) {
		w.start = now
	}
	w.count = 1

	return nil
}
