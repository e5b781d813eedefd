package api

import (
	"context"
	"net/http"
)

// CareerService handles career applications: public submission and
// review from the admin console.
type CareerService struct {
	ep endpoint[Application]
}

// Submit sends the public application form.
func (s *CareerService) Submit(ctx context.Context, in NewApplication) (Application, error) {
	return s.ep.create(ctx, in)
}

// List returns a page of applications.
func (s *CareerService) List(ctx context.Context, p Page) (List[Application], error) {
	return s.ep.list(ctx, p)
}

// Get returns the application with the given id.
func (s *CareerService) Get(ctx context.Context, id string) (Application, error) {
	return s.ep.get(ctx, id)
}

// UpdateStatus moves the application to status.
func (s *CareerService) UpdateStatus(ctx context.Context, id string, status ApplicationStatus) (Application, error) {
	return s.ep.send(ctx, http.MethodPatch, statusUpdate{Status: status}, id, "status")
}

// Delete removes the application.
func (s *CareerService) Delete(ctx context.Context, id string) error {
	return s.ep.remove(ctx, id)
}
