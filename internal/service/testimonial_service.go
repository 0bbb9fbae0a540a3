package service

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"lueurstudio/internal/db"
	"lueurstudio/internal/entities"
	apperrors "lueurstudio/internal/errors"
	"lueurstudio/internal/repository"
	"lueurstudio/internal/store"
	"lueurstudio/internal/utils"
)

type TestimonialService struct {
	Repo *repository.TestimonialRepository

	validate *validator.Validate
}

func NewTestimonialService(repo *repository.TestimonialRepository) *TestimonialService {
	return &TestimonialService{Repo: repo, validate: validator.New()}
}

// Add stores a testimonial submission. Clients must present a verification
// code matching their email (compared case-insensitively); admins bypass the
// code and may pre-approve.
func (s *TestimonialService) Add(req entities.TestimonialRequest, verificationCode string, isAdmin, preApproved bool) (*db.Testimonial, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrBadRequest("Nom et avis requis")
	}

	if !isAdmin {
		if verificationCode == "" || req.Email == "" {
			return nil, apperrors.ErrBadRequest("Code de vérification et email requis")
		}
		ok, err := s.VerifyCode(req.Email, verificationCode)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperrors.ErrUnauthorized("Code de vérification invalide")
		}
	}

	rating := req.Rating
	if rating == 0 {
		rating = 5
	}

	t := &db.Testimonial{
		ID:        newTestimonialID(),
		Name:      req.Name,
		Role:      req.Role,
		Quote:     req.Quote,
		Project:   req.Project,
		Rating:    rating,
		Date:      req.Date,
		Image:     req.Image,
		Email:     req.Email,
		Approved:  isAdmin && preApproved,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Repo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// SetApproved flips a testimonial's public visibility.
func (s *TestimonialService) SetApproved(id string, approved bool) (*db.Testimonial, error) {
	return s.Repo.Update(id, store.Record{"approved": approved})
}

func (s *TestimonialService) Delete(id string) error {
	return s.Repo.Delete(id)
}

// ListPublic returns approved testimonials only.
func (s *TestimonialService) ListPublic() ([]db.Testimonial, error) {
	return s.Repo.Approved()
}

func (s *TestimonialService) ListAll() ([]db.Testimonial, error) {
	return s.Repo.List()
}

// VerifyCode checks a verification code against the one stored for the email.
// Codes are stored uppercased, emails lowercased, so matching is
// case-insensitive on both sides.
func (s *TestimonialService) VerifyCode(email, code string) (bool, error) {
	codes, err := s.Repo.Codes()
	if err != nil {
		return false, err
	}
	stored, ok := codes[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return false, nil
	}
	return stored == strings.ToUpper(strings.TrimSpace(code)), nil
}

func (s *TestimonialService) Codes() (map[string]string, error) {
	return s.Repo.Codes()
}

// UpdateCode adds or removes a verification code for an email.
func (s *TestimonialService) UpdateCode(req entities.CodeUpdateRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperrors.ErrBadRequest("Email requis")
	}
	switch req.Action {
	case "add":
		if req.Code == "" {
			return apperrors.ErrBadRequest("Code requis")
		}
		return s.Repo.SetCode(req.Email, req.Code)
	case "remove":
		return s.Repo.RemoveCode(req.Email)
	}
	return apperrors.ErrBadRequest("Action inconnue")
}

func newTestimonialID() string {
	return utils.NewRecordID("testimonial")
}
