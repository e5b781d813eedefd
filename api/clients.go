package api

import (
	"context"
	"net/http"
)

// ClientService manages the agency's clients from the admin console.
type ClientService struct {
	ep endpoint[Customer]
}

// List returns a page of clients.
func (s *ClientService) List(ctx context.Context, p Page) (List[Customer], error) {
	return s.ep.list(ctx, p)
}

// Get returns the client with the given id.
func (s *ClientService) Get(ctx context.Context, id string) (Customer, error) {
	return s.ep.get(ctx, id)
}

// Create registers a new client.
func (s *ClientService) Create(ctx context.Context, in NewCustomer) (Customer, error) {
	return s.ep.create(ctx, in)
}

// Update replaces the client's details.
func (s *ClientService) Update(ctx context.Context, id string, in NewCustomer) (Customer, error) {
	return s.ep.send(ctx, http.MethodPut, in, id)
}

// Delete removes the client.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.ep.remove(ctx, id)
}
