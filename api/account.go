package api

import (
	"context"
	"net/http"
)

// AccountService backs the client-facing account page.
type AccountService struct {
	ep endpoint[Profile]
}

// Me returns the signed-in client's profile.
func (s *AccountService) Me(ctx context.Context) (Profile, error) {
	return s.ep.get(ctx, "me")
}

// UpdateProfile changes the non-empty fields of the signed-in client's profile.
func (s *AccountService) UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error) {
	return s.ep.send(ctx, http.MethodPatch, in, "me")
}
