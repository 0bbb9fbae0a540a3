package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"lueurstudio/internal/entities"
	apperrors "lueurstudio/internal/errors"
	"lueurstudio/internal/repository"
)

// AvailabilityService exposes the override lists and their admin mutations.
type AvailabilityService struct {
	Overrides *repository.OverrideRepository

	validate *validator.Validate
}

func NewAvailabilityService(overrides *repository.OverrideRepository) *AvailabilityService {
	return &AvailabilityService{Overrides: overrides, validate: validator.New()}
}

func (s *AvailabilityService) Lists() (*entities.OverrideLists, error) {
	blocked, unlocked, err := s.Overrides.Lists()
	if err != nil {
		return nil, fmt.Errorf("loading availability overrides: %w", err)
	}
	return &entities.OverrideLists{BlockedDates: blocked, UnlockedDates: unlocked}, nil
}

// Apply mutates the lists for one or many dates. Blocking removes the date
// from the unlocked list and unlocking removes it from the blocked list, so a
// date never stays in both.
func (s *AvailabilityService) Apply(req entities.OverrideUpdateRequest) (*entities.OverrideLists, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrBadRequest("L'action doit être block, unblock, unlock ou lock")
	}

	dates := req.Dates
	if req.Date != "" {
		dates = append(dates, req.Date)
	}
	if len(dates) == 0 {
		return nil, apperrors.ErrBadRequest("Action et date/dates requis")
	}

	blocked, unlocked, err := s.Overrides.Apply(req.Action, dates)
	if err != nil {
		return nil, err
	}
	return &entities.OverrideLists{BlockedDates: blocked, UnlockedDates: unlocked}, nil
}
