package api

import (
	"time"

	"github.com/adamwoolhether/agencyapi/internal/validate"
)

// FieldErrors is returned when a payload fails validation before it is sent.
type FieldErrors = validate.FieldErrors

// Page selects a page of a listing. Zero fields use the server defaults.
type Page struct {
	Number int
	Size   int
}

// List is a page of results.
type List[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}

// Customer is one of the agency's clients.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Services  []string  `json:"services,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewCustomer creates or replaces a Customer.
type NewCustomer struct {
	Name     string   `json:"name" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Company  string   `json:"company,omitempty" validate:"omitempty,max=120"`
	Phone    string   `json:"phone,omitempty" validate:"omitempty,e164"`
	Services []string `json:"services,omitempty" validate:"dive,required"`
}

// Post is a blog post.
type Post struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body"`
	Author      string     `json:"author"`
	Tags        []string   `json:"tags,omitempty"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewPost creates or replaces a Post. New posts start as drafts.
type NewPost struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Slug    string   `json:"slug" validate:"required,lowercase,max=200"`
	Excerpt string   `json:"excerpt,omitempty" validate:"omitempty,max=300"`
	Body    string   `json:"body" validate:"required"`
	Author  string   `json:"author" validate:"required"`
	Tags    []string `json:"tags,omitempty" validate:"dive,required"`
}

// ApplicationStatus tracks a career application through review.
type ApplicationStatus string

const (
	StatusPending   ApplicationStatus = "pending"
	StatusReviewing ApplicationStatus = "reviewing"
	StatusInterview ApplicationStatus = "interview"
	StatusRejected  ApplicationStatus = "rejected"
	StatusHired     ApplicationStatus = "hired"
)

// Application is a career application.
type Application struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Email       string            `json:"email"`
	Phone       string            `json:"phone,omitempty"`
	Position    string            `json:"position"`
	ResumeURL   string            `json:"resumeURL"`
	CoverLetter string            `json:"coverLetter,omitempty"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// NewApplication is the public career application form.
type NewApplication struct {
	Name        string `json:"name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone,omitempty" validate:"omitempty,e164"`
	Position    string `json:"position" validate:"required"`
	ResumeURL   string `json:"resumeURL" validate:"required,http_url"`
	CoverLetter string `json:"coverLetter,omitempty" validate:"omitempty,max=5000"`
}

type statusUpdate struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending reviewing interview rejected hired"`
}

// Profile is the signed-in client's account.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Plan    string `json:"plan,omitempty"`
}

// ProfileUpdate changes the non-empty fields of a Profile.
type ProfileUpdate struct {
	Name    string `json:"name,omitempty" validate:"omitempty,max=120"`
	Company string `json:"company,omitempty" validate:"omitempty,max=120"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,e164"`
}

// Testimonial is a client quote shown on the marketing site.
type Testimonial struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Company string `json:"company,omitempty"`
	Quote   string `json:"quote"`
	Rating  int    `json:"rating"`
}

// FAQ is a frequently asked question.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Order    int    `json:"order"`
}
