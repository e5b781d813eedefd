package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/adamwoolhether/agencyapi/client/throttle"
	"github.com/adamwoolhether/agencyapi/internal/validate"
)

// Backend services, each throttled independently.
const (
	ServiceClients = "clients"
	ServicePosts   = "posts"
	ServiceCareers = "careers"
	ServiceAccount = "account"
	ServiceContent = "content"
)

// DefaultLimit applies to every service without an explicit limit.
var DefaultLimit = throttle.Config{MaxRequests: 5, Window: time.Minute}

// ErrInvalidConfig is returned by New when Config fails validation.
var ErrInvalidConfig = errors.New("invalid api config")

// Config describes how to reach the agency backend.
//
// Timeout bounds each request's transmission once its service's
// throttle has admitted it. Waiting for a saturated window is not
// counted, so throttled calls are delayed, never dropped; a context
// deadline bounds the total.
type Config struct {
	BaseURL   string        `json:"baseURL" validate:"required,http_url"`
	Token     string        `json:"token"`
	UserAgent string        `json:"userAgent"`
	Timeout   time.Duration `json:"timeout" validate:"gte=0"`
	Limits    Limits        `json:"limits"`
}

// Limits holds the per-service throttle. A zero value takes DefaultLimit.
type Limits struct {
	Clients throttle.Config `json:"clients"`
	Posts   throttle.Config `json:"posts"`
	Careers throttle.Config `json:"careers"`
	Account throttle.Config `json:"account"`
	Content throttle.Config `json:"content"`
}

func (l Limits) byService() map[string]throttle.Config {
	return map[string]throttle.Config{
		ServiceClients: l.Clients,
		ServicePosts:   l.Posts,
		ServiceCareers: l.Careers,
		ServiceAccount: l.Account,
		ServiceContent: l.Content,
	}
}

func (l Limits) withDefaults() Limits {
	def := func(c throttle.Config) throttle.Config {
		if c == (throttle.Config{}) {
			return DefaultLimit
		}
		return c
	}

	return Limits{
		Clients: def(l.Clients),
		Posts:   def(l.Posts),
		Careers: def(l.Careers),
		Account: def(l.Account),
		Content: def(l.Content),
	}
}

// Validate fills in default limits and checks every field.
func (c *Config) Validate() error {
	c.Limits = c.Limits.withDefaults()

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}
