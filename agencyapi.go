// Package agencyapi is a throttled client for the agency backend.
//
// Use [New] for the typed services in package api, or [NewClient] for a
// bare [client.Client] with the same options.
package agencyapi

import (
	"github.com/adamwoolhether/agencyapi/api"
	"github.com/adamwoolhether/agencyapi/client"
)

// New validates cfg and returns the agency API with one throttled
// client per backend service.
func New(cfg api.Config, opts ...client.Option) (*api.API, error) {
	return api.New(cfg, opts...)
}

// NewClient instantiates a new *Client with the provided options.
// If not specified, a fresh http.Client over http.DefaultTransport is used.
func NewClient(opts ...client.Option) (*client.Client, error) {
	return client.Build(opts...)
}
