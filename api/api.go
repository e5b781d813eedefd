package api

import (
	"fmt"
	"net/url"

	"github.com/adamwoolhether/agencyapi/client"
	"github.com/adamwoolhether/agencyapi/client/throttle"
)

// API groups the agency backend's services. Each service has its own
// client and throttle window, so a burst against one service never
// delays another.
type API struct {
	Clients *ClientService
	Posts   *PostService
	Careers *CareerService
	Account *AccountService
	Content *ContentService

	windows map[string]*throttle.Window
}

// New validates cfg and builds every service. opts are applied to each
// service's client after the defaults derived from cfg, so they can
// override the transport, logger, tracer or timeout. A service's name
// and throttle window always come last: WithName, WithLimiter and the
// throttle options cannot replace them.
func New(cfg Config, opts ...client.Option) (*API, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing base url: %w", ErrInvalidConfig, err)
	}

	a := API{
		windows: make(map[string]*throttle.Window),
	}

	clients := make(map[string]*client.Client)
	for service, limit := range cfg.Limits.byService() {
		w, err := throttle.ConfigureFrom(limit)
		if err != nil {
			return nil, fmt.Errorf("%s throttle: %w", service, err)
		}
		a.windows[service] = w

		serviceOpts := append(defaultOptions(cfg), opts...)
		serviceOpts = append(serviceOpts, client.WithName(service), client.WithLimiter(w))

		c, err := client.Build(serviceOpts...)
		if err != nil {
			return nil, fmt.Errorf("building %s client: %w", service, err)
		}
		clients[service] = c
	}

	a.Clients = &ClientService{ep: newEndpoint[Customer](clients[ServiceClients], base, "clients")}
	a.Posts = &PostService{ep: newEndpoint[Post](clients[ServicePosts], base, "posts")}
	a.Careers = &CareerService{ep: newEndpoint[Application](clients[ServiceCareers], base, "careers", "applications")}
	a.Account = &AccountService{ep: newEndpoint[Profile](clients[ServiceAccount], base, "account")}
	a.Content = &ContentService{
		testimonials: newEndpoint[Testimonial](clients[ServiceContent], base, "testimonials"),
		faq:          newEndpoint[FAQ](clients[ServiceContent], base, "faq"),
	}

	return &a, nil
}

func defaultOptions(cfg Config) []client.Option {
	opts := []client.Option{client.WithRequestID()}

	if cfg.Timeout > 0 {
		opts = append(opts, client.WithTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, client.WithUserAgent(cfg.UserAgent))
	}
	if cfg.Token != "" {
		opts = append(opts, client.WithBearerToken(cfg.Token))
	}

	return opts
}

// Throttle reports the current window of service.
func (a *API) Throttle(service string) (throttle.State, bool) {
	w, ok := a.windows[service]
	if !ok {
		return throttle.State{}, false
	}

	return w.Snapshot(), true
}

// Close disposes every service's throttle. Calls made after Close,
// or still waiting on a saturated window, fail with
// throttle.ErrInvalidHandle.
func (a *API) Close() {
	for _, w := range a.windows {
		w.Dispose()
	}
}
