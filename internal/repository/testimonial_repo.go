package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"lueurstudio/internal/db"
	"lueurstudio/internal/store"
)

const (
	testimonialCollection = "testimonials"
	codeCollection        = "verification_codes"
)

type TestimonialRepository struct {
	Store *store.Store
}

func NewTestimonialRepository(s *store.Store) *TestimonialRepository {
	return &TestimonialRepository{Store: s}
}

func (r *TestimonialRepository) Create(t *db.Testimonial) error {
	rec, err := toRecord(t)
	if err != nil {
		return fmt.Errorf("create testimonial: %w", err)
	}
	_, err = r.Store.Append(testimonialCollection, rec)
	return err
}

func (r *TestimonialRepository) Update(id string, fields store.Record) (*db.Testimonial, error) {
	rec, err := r.Store.UpdateByID(testimonialCollection, id, fields)
	if err != nil {
		return nil, err
	}
	var t db.Testimonial
	if err := fromRecord(rec, &t); err != nil {
		return nil, fmt.Errorf("testimonial %s: %w", id, err)
	}
	return &t, nil
}

func (r *TestimonialRepository) Delete(id string) error {
	return r.Store.RemoveByID(testimonialCollection, id)
}

// List returns all well-formed testimonials, newest first.
func (r *TestimonialRepository) List() ([]db.Testimonial, error) {
	records, err := r.Store.ListAll(testimonialCollection)
	if err != nil {
		return nil, err
	}
	out := make([]db.Testimonial, 0, len(records))
	for _, rec := range records {
		var t db.Testimonial
		if err := fromRecord(rec, &t); err != nil {
			continue
		}
		if t.ID == "" {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out, nil
}

// Approved returns only testimonials cleared for public display.
func (r *TestimonialRepository) Approved() ([]db.Testimonial, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, t := range all {
		if t.Approved {
			out = append(out, t)
		}
	}
	return out, nil
}

// Codes returns the verification codes keyed by lowercased email.
func (r *TestimonialRepository) Codes() (map[string]string, error) {
	records, err := r.Store.ListAll(codeCollection)
	if err != nil {
		return nil, err
	}
	codes := make(map[string]string, len(records))
	for _, rec := range records {
		var c db.VerificationCode
		if err := fromRecord(rec, &c); err != nil {
			continue
		}
		if c.Email == "" || c.Code == "" {
			continue
		}
		codes[strings.ToLower(c.Email)] = strings.ToUpper(c.Code)
	}
	return codes, nil
}

// SetCode stores (or replaces) the verification code for an email. Emails are
// stored lowercased and codes uppercased so lookups are case-insensitive.
func (r *TestimonialRepository) SetCode(email, code string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	code = strings.ToUpper(strings.TrimSpace(code))

	rec := store.Record{"id": email, "email": email, "code": code}
	_, err := r.Store.UpdateByID(codeCollection, email, rec)
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.Store.Append(codeCollection, rec)
	}
	return err
}

func (r *TestimonialRepository) RemoveCode(email string) error {
	return r.Store.RemoveByID(codeCollection, strings.ToLower(strings.TrimSpace(email)))
}
