package throttle

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"
)

// TokenBucket restricts calls with the time/rate token bucket:
// a steady rps refill and up to burst calls at once.
type TokenBucket struct {
	limiter *rate.Limiter
	rps     int
	burst   int
}

// NewTokenBucket returns a TokenBucket refilling rps tokens per second
// with a capacity of burst. Both must be positive.
func NewTokenBucket(rps, burst int) (*TokenBucket, error) {
	cfg := BucketConfig{RPS: rps, Burst: burst}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := TokenBucket{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		rps:     rps,
		burst:   burst,
	}

	return &b, nil
}

// Wait implements Limiter.
func (b *TokenBucket) Wait(ctx context.Context) error {
	if b == nil {
		return ErrInvalidHandle
	}

	return b.limiter.Wait(ctx)
}

// Saturated reports whether the bucket is out of tokens.
func (b *TokenBucket) Saturated() bool {
	if b == nil {
		return false
	}

	return b.limiter.Tokens() < 1
}

// LogValue implements slog.LogValuer.
func (b *TokenBucket) LogValue() slog.Value {
	if b == nil {
		return slog.Value{}
	}

	return slog.GroupValue(
		slog.Int("rate", b.rps),
		slog.Int("burst", b.burst),
	)
}
