package api

import (
	"cmp"
	"context"
	"slices"
)

// ContentService reads the marketing site's public content.
type ContentService struct {
	testimonials endpoint[Testimonial]
	faq          endpoint[FAQ]
}

// Testimonials returns every published testimonial.
func (s *ContentService) Testimonials(ctx context.Context) ([]Testimonial, error) {
	return s.testimonials.all(ctx)
}

// FAQ returns the FAQ entries in display order.
func (s *ContentService) FAQ(ctx context.Context) ([]FAQ, error) {
	entries, err := s.faq.all(ctx)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b FAQ) int {
		return cmp.Compare(a.Order, b.Order)
	})

	return entries, nil
}
