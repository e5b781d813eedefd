package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adamwoolhether/agencyapi/client"
	"github.com/adamwoolhether/agencyapi/internal/validate"
)

// ErrMissingID is returned when an operation needs a resource ID and got none.
var ErrMissingID = errors.New("missing resource id")

// endpoint issues JSON requests for one resource collection
// through its service's throttled client.
type endpoint[T any] struct {
	c    *client.Client
	base *url.URL
}

func newEndpoint[T any](c *client.Client, base *url.URL, elem ...string) endpoint[T] {
	return endpoint[T]{c: c, base: base.JoinPath(elem...)}
}

func (e endpoint[T]) url(query url.Values, elem ...string) (*url.URL, error) {
	for _, el := range elem {
		if el == "" {
			return nil, ErrMissingID
		}
	}

	u := e.base.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	return u, nil
}

func (e endpoint[T]) list(ctx context.Context, p Page) (List[T], error) {
	q := url.Values{}
	if p.Number > 0 {
		q.Set("page", strconv.Itoa(p.Number))
	}
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}

	u, err := e.url(q)
	if err != nil {
		return List[T]{}, err
	}

	return call[List[T]](ctx, e.c, http.MethodGet, u, http.StatusOK, nil)
}

func (e endpoint[T]) all(ctx context.Context) ([]T, error) {
	u, err := e.url(nil)
	if err != nil {
		return nil, err
	}

	return call[[]T](ctx, e.c, http.MethodGet, u, http.StatusOK, nil)
}

func (e endpoint[T]) get(ctx context.Context, elem ...string) (T, error) {
	u, err := e.url(nil, elem...)
	if err != nil {
		var zero T
		return zero, err
	}

	return call[T](ctx, e.c, http.MethodGet, u, http.StatusOK, nil)
}

func (e endpoint[T]) create(ctx context.Context, in any) (T, error) {
	u, err := e.url(nil)
	if err != nil {
		var zero T
		return zero, err
	}

	return call[T](ctx, e.c, http.MethodPost, u, http.StatusCreated, in)
}

// send issues method against the resource path elem, expecting 200 with a T.
func (e endpoint[T]) send(ctx context.Context, method string, in any, elem ...string) (T, error) {
	u, err := e.url(nil, elem...)
	if err != nil {
		var zero T
		return zero, err
	}

	return call[T](ctx, e.c, method, u, http.StatusOK, in)
}

func (e endpoint[T]) remove(ctx context.Context, id string) error {
	u, err := e.url(nil, id)
	if err != nil {
		return err
	}

	req, err := e.c.Request(ctx, u, http.MethodDelete)
	if err != nil {
		return err
	}

	if err := e.c.Do(req, http.StatusNoContent); err != nil {
		return fmt.Errorf("%s %s: %w", http.MethodDelete, u.Path, err)
	}

	return nil
}

// call validates and sends the optional payload in, decoding the response into R.
func call[R any](ctx context.Context, c *client.Client, method string, u *url.URL, expCode int, in any) (R, error) {
	var out R

	var reqOpts []client.RequestOption
	if in != nil {
		if err := validate.Struct(in); err != nil {
			return out, fmt.Errorf("%s %s: %w", method, u.Path, err)
		}
		reqOpts = append(reqOpts, client.WithPayload(in))
	}

	req, err := c.Request(ctx, u, method, reqOpts...)
	if err != nil {
		return out, err
	}

	if err := c.Do(req, expCode, client.WithDestination(&out)); err != nil {
		return out, fmt.Errorf("%s %s: %w", method, u.Path, err)
	}

	return out, nil
}
