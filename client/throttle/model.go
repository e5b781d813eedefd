package throttle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/adamwoolhether/agencyapi/internal/validate"
)

var (
	ErrConfiguration = errors.New("invalid throttle configuration")
	ErrInvalidHandle = errors.New("invalid or disposed throttle handle")
	ErrWaitingFailed = errors.New("limiter waiting failed")
	ErrContextEnded  = errors.New("throttle context ended")
)

// Limiter is satisfied by anything that can hold a caller until
// it may send a request.
type Limiter interface {
	Wait(ctx context.Context) error
}

// saturater is implemented by limiters that can report, without
// consuming capacity, whether the next Wait would block.
type saturater interface {
	Saturated() bool
}

// Config defines a fixed window throttle: at most MaxRequests
// admissions per Window.
type Config struct {
	MaxRequests int           `json:"maxRequests" validate:"gt=0"`
	Window      time.Duration `json:"window" validate:"gt=0"`
}

// Validate reports a non-positive bound as ErrConfiguration.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

// BucketConfig defines the token bucket's
// Requests Per Second and Burst Rate.
type BucketConfig struct {
	RPS   int `json:"rps" validate:"gt=0"`
	Burst int `json:"burst" validate:"gt=0"`
}

// Validate reports a non-positive rate or burst as ErrConfiguration.
func (c BucketConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	return nil
}

// State is a point-in-time copy of a Window's counters.
type State struct {
	Start       time.Time
	Count       int
	MaxRequests int
	Window      time.Duration
}
