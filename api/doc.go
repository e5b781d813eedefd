// Package api wraps the agency backend's REST API: clients, blog posts,
// career applications, the client account page and public site content.
//
// Every service gets its own throttled [client.Client], so each backend
// resource has an independent request budget:
//
//	a, err := api.New(api.Config{
//		BaseURL: "https://api.example.com/v1",
//		Token:   token,
//		Limits: api.Limits{
//			Careers: throttle.Config{MaxRequests: 2, Window: time.Minute},
//		},
//	})
//	posts, err := a.Posts.List(ctx, api.Page{Number: 1, Size: 20})
//
// Payloads are validated before they are sent; a failure is reported as
// [FieldErrors] and no request is made.
package api
