package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/adamwoolhether/agencyapi/api"
	"github.com/adamwoolhether/agencyapi/client"
	"github.com/adamwoolhether/agencyapi/client/throttle"
)

const (
	testBaseURL = "https://api.agency.test/v1"
	testToken   = "admin-token"
)

// handlerTransport serves requests in-process, keeping every call
// inside the test's goroutines.
type handlerTransport struct {
	h http.Handler
}

func (ht handlerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	ht.h.ServeHTTP(rec, r)

	resp := rec.Result()
	resp.Request = r
	return resp, nil
}

// backend is an in-memory fake of the agency REST API.
type backend struct {
	mu       sync.Mutex
	seq      int
	clients  map[string]api.Customer
	posts    map[string]api.Post
	apps     map[string]api.Application
	profile  api.Profile
	requests []*http.Request
	// status, when set, is returned for every request.
	status int
}

func newBackend() *backend {
	return &backend{
		clients: make(map[string]api.Customer),
		posts:   make(map[string]api.Post),
		apps:    make(map[string]api.Application),
		profile: api.Profile{ID: "me", Name: "Acme", Email: "ops@acme.test", Plan: "growth"},
	}
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /clients", b.listClients)
	mux.HandleFunc("POST /clients", b.createClient)
	mux.HandleFunc("GET /clients/{id}", b.getClient)
	mux.HandleFunc("PUT /clients/{id}", b.updateClient)
	mux.HandleFunc("DELETE /clients/{id}", b.deleteClient)

	mux.HandleFunc("GET /posts", b.listPosts)
	mux.HandleFunc("POST /posts", b.createPost)
	mux.HandleFunc("PUT /posts/{id}", b.updatePost)
	mux.HandleFunc("DELETE /posts/{id}", b.deletePost)
	mux.HandleFunc("GET /posts/{id}", b.getPost)
	mux.HandleFunc("GET /posts/slug/{slug}", b.getPostBySlug)
	mux.HandleFunc("POST /posts/{id}/publish", b.publishPost)

	mux.HandleFunc("GET /careers/applications", b.listApplications)
	mux.HandleFunc("POST /careers/applications", b.submitApplication)
	mux.HandleFunc("GET /careers/applications/{id}", b.getApplication)
	mux.HandleFunc("DELETE /careers/applications/{id}", b.deleteApplication)
	mux.HandleFunc("PATCH /careers/applications/{id}/status", b.updateStatus)

	mux.HandleFunc("GET /account/me", b.getProfile)
	mux.HandleFunc("PATCH /account/me", b.updateProfile)

	mux.HandleFunc("GET /testimonials", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []api.Testimonial{{ID: "t1", Author: "Jo", Quote: "Great work", Rating: 5}})
	})
	mux.HandleFunc("GET /faq", func(w http.ResponseWriter, r *http.Request) {
		respond(w, http.StatusOK, []api.FAQ{
			{ID: "f3", Question: "Pricing?", Order: 3},
			{ID: "f1", Question: "Who are you?", Order: 1},
			{ID: "f2", Question: "Timeline?", Order: 2},
		})
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r)
		status := b.status
		b.mu.Unlock()

		if status != 0 {
			w.Header().Set("Retry-After", "7")
			http.Error(w, http.StatusText(status), status)
			return
		}

		http.StripPrefix("/v1", mux).ServeHTTP(w, r)
	})
}

func (b *backend) nextID(prefix string) string {
	b.seq++
	return prefix + strconv.Itoa(b.seq)
}

func (b *backend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.requests)
}

func (b *backend) lastRequest() *http.Request {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.requests) == 0 {
		return nil
	}
	return b.requests[len(b.requests)-1]
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (b *backend) listClients(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	b.mu.Lock()
	defer b.mu.Unlock()

	list := api.List[api.Customer]{Total: len(b.clients), Page: page, Size: size}
	for i := 1; i <= b.seq; i++ {
		if c, ok := b.clients[fmt.Sprintf("c%d", i)]; ok {
			list.Items = append(list.Items, c)
		}
	}

	respond(w, http.StatusOK, list)
}

func (b *backend) createClient(w http.ResponseWriter, r *http.Request) {
	var in api.NewCustomer
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c := api.Customer{
		ID:        b.nextID("c"),
		Name:      in.Name,
		Email:     in.Email,
		Company:   in.Company,
		Phone:     in.Phone,
		Services:  in.Services,
		CreatedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	b.clients[c.ID] = c

	respond(w, http.StatusCreated, c)
}

func (b *backend) getClient(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.clients[r.PathValue("id")]
	if !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}

	respond(w, http.StatusOK, c)
}

func (b *backend) updateClient(w http.ResponseWriter, r *http.Request) {
	var in api.NewCustomer
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	c, ok := b.clients[r.PathValue("id")]
	if !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	c.Name, c.Email, c.Company, c.Phone, c.Services = in.Name, in.Email, in.Company, in.Phone, in.Services
	b.clients[c.ID] = c

	respond(w, http.StatusOK, c)
}

func (b *backend) deleteClient(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.clients[r.PathValue("id")]; !ok {
		http.Error(w, "client not found", http.StatusNotFound)
		return
	}
	delete(b.clients, r.PathValue("id"))

	w.WriteHeader(http.StatusNoContent)
}

func (b *backend) createPost(w http.ResponseWriter, r *http.Request) {
	var in api.NewPost
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p := api.Post{
		ID:     b.nextID("p"),
		Title:  in.Title,
		Slug:   in.Slug,
		Body:   in.Body,
		Author: in.Author,
		Tags:   in.Tags,
	}
	b.posts[p.ID] = p

	respond(w, http.StatusCreated, p)
}

func (b *backend) getPost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.posts[r.PathValue("id")]
	if !ok {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}

	respond(w, http.StatusOK, p)
}

func (b *backend) listPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := api.List[api.Post]{Total: len(b.posts), Page: 1, Size: len(b.posts)}
	for i := 1; i <= b.seq; i++ {
		if p, ok := b.posts[fmt.Sprintf("p%d", i)]; ok {
			list.Items = append(list.Items, p)
		}
	}

	respond(w, http.StatusOK, list)
}

func (b *backend) updatePost(w http.ResponseWriter, r *http.Request) {
	var in api.NewPost
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.posts[r.PathValue("id")]
	if !ok {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	p.Title, p.Slug, p.Excerpt, p.Body, p.Author, p.Tags = in.Title, in.Slug, in.Excerpt, in.Body, in.Author, in.Tags
	b.posts[p.ID] = p

	respond(w, http.StatusOK, p)
}

func (b *backend) deletePost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.posts[r.PathValue("id")]; !ok {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	delete(b.posts, r.PathValue("id"))

	w.WriteHeader(http.StatusNoContent)
}

func (b *backend) getPostBySlug(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, p := range b.posts {
		if p.Slug == r.PathValue("slug") && p.Published {
			respond(w, http.StatusOK, p)
			return
		}
	}

	http.Error(w, "post not found", http.StatusNotFound)
}

func (b *backend) publishPost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.posts[r.PathValue("id")]
	if !ok {
		http.Error(w, "post not found", http.StatusNotFound)
		return
	}
	at := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	p.Published, p.PublishedAt = true, &at
	b.posts[p.ID] = p

	respond(w, http.StatusOK, p)
}

func (b *backend) submitApplication(w http.ResponseWriter, r *http.Request) {
	var in api.NewApplication
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	app := api.Application{
		ID:        b.nextID("a"),
		Name:      in.Name,
		Email:     in.Email,
		Position:  in.Position,
		ResumeURL: in.ResumeURL,
		Status:    api.StatusPending,
	}
	b.apps[app.ID] = app

	respond(w, http.StatusCreated, app)
}

func (b *backend) listApplications(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := api.List[api.Application]{Total: len(b.apps), Page: 1, Size: len(b.apps)}
	for i := 1; i <= b.seq; i++ {
		if app, ok := b.apps[fmt.Sprintf("a%d", i)]; ok {
			list.Items = append(list.Items, app)
		}
	}

	respond(w, http.StatusOK, list)
}

func (b *backend) getApplication(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	app, ok := b.apps[r.PathValue("id")]
	if !ok {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	respond(w, http.StatusOK, app)
}

func (b *backend) deleteApplication(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.apps[r.PathValue("id")]; !ok {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}
	delete(b.apps, r.PathValue("id"))

	w.WriteHeader(http.StatusNoContent)
}

func (b *backend) updateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status api.ApplicationStatus `json:"status"`
	}
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	app, ok := b.apps[r.PathValue("id")]
	if !ok {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}
	app.Status = in.Status
	b.apps[app.ID] = app

	respond(w, http.StatusOK, app)
}

func (b *backend) getProfile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	respond(w, http.StatusOK, b.profile)
}

func (b *backend) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in api.ProfileUpdate
	if !decode(w, r, &in) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if in.Name != "" {
		b.profile.Name = in.Name
	}
	if in.Company != "" {
		b.profile.Company = in.Company
	}
	if in.Phone != "" {
		b.profile.Phone = in.Phone
	}

	respond(w, http.StatusOK, b.profile)
}

// generous leaves room for every call a test makes.
var generous = api.Limits{
	Clients: throttle.Config{MaxRequests: 100, Window: time.Minute},
	Posts:   throttle.Config{MaxRequests: 100, Window: time.Minute},
	Careers: throttle.Config{MaxRequests: 100, Window: time.Minute},
	Account: throttle.Config{MaxRequests: 100, Window: time.Minute},
	Content: throttle.Config{MaxRequests: 100, Window: time.Minute},
}

// newTestAPI builds an API served in-process by b.
func newTestAPI(t *testing.T, b *backend, limits api.Limits) *api.API {
	t.Helper()

	a, err := api.New(api.Config{
		BaseURL:   testBaseURL,
		Token:     testToken,
		UserAgent: "agency-dashboard-test/1.0",
		Limits:    limits,
	}, client.WithTransport(handlerTransport{h: b.handler()}))
	if err != nil {
		t.Fatalf("building api: %v", err)
	}
	t.Cleanup(a.Close)

	return a
}
