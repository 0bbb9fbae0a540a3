package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"lueurstudio/internal/availability"
	"lueurstudio/internal/db"
	"lueurstudio/internal/entities"
	apperrors "lueurstudio/internal/errors"
	"lueurstudio/internal/repository"
	"lueurstudio/internal/store"
	"lueurstudio/internal/utils"
)

// GalleryExpiredError is returned when a gallery access code is valid but the
// gallery's two-month window has passed.
type GalleryExpiredError struct {
	ExpiresAt string
}

func (e *GalleryExpiredError) Error() string {
	return "Cette galerie a expiré"
}

type BookingService struct {
	Repo      *repository.BookingRepository
	Overrides *repository.OverrideRepository
	Sender    *SenderService
	Notifier  Notifier
	Log       *zap.SugaredLogger

	validate *validator.Validate
}

func NewBookingService(repo *repository.BookingRepository, overrides *repository.OverrideRepository,
	sender *SenderService, notifier Notifier, log *zap.SugaredLogger) *BookingService {
	return &BookingService{
		Repo:      repo,
		Overrides: overrides,
		Sender:    sender,
		Notifier:  notifier,
		Log:       log,
		validate:  validator.New(),
	}
}

// CheckDate runs the date-level rule engine against the current override
// lists. The to-be-scheduled sentinel is always accepted.
func (s *BookingService) CheckDate(date string) (*entities.AvailabilityResponse, error) {
	if date == db.DateToBeScheduled {
		return &entities.AvailabilityResponse{Available: true}, nil
	}

	blocked, unlocked, err := s.Overrides.Lists()
	if err != nil {
		return nil, fmt.Errorf("loading availability overrides: %w", err)
	}

	res, err := availability.CheckDate(date, blocked, unlocked)
	if err != nil {
		return nil, apperrors.ErrBadRequest("Date invalide")
	}
	return &entities.AvailabilityResponse{Available: res.Available, Reason: res.Reason}, nil
}

// AvailableDates lists every bookable date in [start, end], inclusive, for
// the calendar widget. The range is capped at one year.
func (s *BookingService) AvailableDates(start, end string) ([]string, error) {
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return nil, apperrors.ErrBadRequest("Date de début invalide")
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return nil, apperrors.ErrBadRequest("Date de fin invalide")
	}
	if to.Before(from) {
		return nil, apperrors.ErrBadRequest("La date de fin doit suivre la date de début")
	}
	if to.Sub(from) > 366*24*time.Hour {
		return nil, apperrors.ErrBadRequest("La période demandée est limitée à un an")
	}

	blocked, unlocked, err := s.Overrides.Lists()
	if err != nil {
		return nil, fmt.Errorf("loading availability overrides: %w", err)
	}

	dates := availability.AvailableDatesInRange(from, to, blocked, unlocked)
	if dates == nil {
		dates = []string{}
	}
	return dates, nil
}

// CheckSlot decides whether a candidate slot is free on a date, reading the
// active bookings for that date. Pure apart from the read: no mutation.
func (s *BookingService) CheckSlot(req entities.SlotCheckRequest) (*entities.AvailabilityResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrBadRequest("Date et heure requises")
	}

	active, err := s.Repo.ActiveByDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("loading bookings for %s: %w", req.Date, err)
	}

	slots := make([]availability.Slot, 0, len(active))
	for _, b := range active {
		slots = append(slots, availability.Slot{StartTime: b.StartTime, DurationHours: b.DurationHours})
	}

	res, err := availability.CheckSlot(req.StartTime, req.DurationHours, slots)
	if err != nil {
		return nil, apperrors.ErrBadRequest("Heure invalide")
	}
	return &entities.AvailabilityResponse{Available: res.Available, Reason: res.Reason}, nil
}

// BookedTimes lists the occupied windows on a date so the public form can
// grey them out.
func (s *BookingService) BookedTimes(date string) ([]entities.BookedSlot, error) {
	active, err := s.Repo.ActiveByDate(date)
	if err != nil {
		return nil, err
	}
	slots := make([]entities.BookedSlot, 0, len(active))
	for _, b := range active {
		d := b.DurationHours
		if d <= 0 {
			d = db.DefaultDurationHours
		}
		slots = append(slots, entities.BookedSlot{StartTime: b.StartTime, DurationHours: d})
	}
	return slots, nil
}

// Create validates and stores a new booking. Date availability and slot
// conflicts are re-verified server-side even when already checked client-side.
func (s *BookingService) Create(req entities.CreateBookingRequest) (*db.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrBadRequest("Tous les champs obligatoires doivent être remplis")
	}

	if req.Date != db.DateToBeScheduled {
		dateRes, err := s.CheckDate(req.Date)
		if err != nil {
			return nil, err
		}
		if !dateRes.Available {
			return nil, apperrors.ErrConflict(dateRes.Reason)
		}

		if req.StartTime != "" {
			slotRes, err := s.CheckSlot(entities.SlotCheckRequest{
				Date:          req.Date,
				StartTime:     req.StartTime,
				DurationHours: req.DurationHours,
			})
			if err != nil {
				return nil, err
			}
			if !slotRes.Available {
				return nil, apperrors.ErrConflict(slotRes.Reason)
			}
		}
	}

	booking := &db.Booking{
		ID:              utils.NewRecordID("reservation"),
		LastName:        req.LastName,
		FirstName:       req.FirstName,
		Email:           strings.TrimSpace(req.Email),
		ServiceType:     req.ServiceType,
		Date:            req.Date,
		StartTime:       req.StartTime,
		DurationHours:   req.DurationHours,
		Location:        req.Location,
		SpecialRequests: req.SpecialRequests,
		ReferencePhotos: req.ReferencePhotos,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
		Status:          db.StatusPending,
	}

	if err := s.Repo.Create(booking); err != nil {
		return nil, fmt.Errorf("storing booking: %w", err)
	}
	return booking, nil
}

func (s *BookingService) Get(id string) (*db.Booking, error) {
	return s.Repo.ByID(id)
}

// List returns all well-formed bookings, newest first, for the admin view.
func (s *BookingService) List() ([]db.Booking, error) {
	return s.Repo.List()
}

// Update merges arbitrary admin edits into a booking. The admin may set any
// status at any time; the confirmation email fires only on a genuine
// transition into confirmed, and its failure never rolls the edit back.
func (s *BookingService) Update(id string, fields store.Record) (*db.Booking, error) {
	old, err := s.Repo.ByID(id)
	if err != nil {
		return nil, err
	}

	// id and createdAt are immutable
	delete(fields, "id")
	delete(fields, "createdAt")

	updated, err := s.Repo.Update(id, fields)
	if err != nil {
		return nil, err
	}

	wasConfirmed := old.Status == db.StatusConfirmed
	isNowConfirmed := updated.Status == db.StatusConfirmed
	if !wasConfirmed && isNowConfirmed && updated.Email != "" {
		subject, plain, html := s.Sender.ConfirmationEmail(updated)
		if err := s.Notifier.Send(strings.TrimSpace(updated.Email), updated.FirstName, subject, plain, html); err != nil {
			s.Log.Warnw("confirmation email failed", "booking", id, "error", err)
		}
	}

	return updated, nil
}

func (s *BookingService) Delete(id string) error {
	return s.Repo.Delete(id)
}

// DispatchGallery issues (once) the gallery access code and expiration for a
// booking, persists them, then emails the client the code and URL. The
// expiration date is idempotent: a second dispatch never moves it. An invalid
// contact email fails fast before anything is written or sent.
func (s *BookingService) DispatchGallery(id, galleryURL string) (*entities.GalleryDispatchResponse, error) {
	booking, err := s.Repo.ByID(id)
	if err != nil {
		return nil, err
	}

	email := strings.TrimSpace(booking.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, apperrors.ErrBadRequest(fmt.Sprintf("Format d'email invalide: %s", email))
	}

	code := booking.GalleryCode
	if code == "" {
		code = utils.NewAccessCode(8)
	}
	expiresAt := booking.GalleryExpiresAt
	if expiresAt == "" {
		expiresAt = time.Now().UTC().AddDate(0, 2, 0).Format(time.RFC3339)
	}

	updated, err := s.Repo.Update(id, store.Record{
		"galleryCode":      code,
		"galleryCreated":   true,
		"galleryExpiresAt": expiresAt,
		"emailSent":        true,
	})
	if err != nil {
		return nil, err
	}

	resp := &entities.GalleryDispatchResponse{AccessCode: code, EmailSent: true, Recipient: email}

	subject, plain, html := s.Sender.GalleryEmail(updated, galleryURL, code, expiresAt)
	if err := s.Notifier.Send(email, updated.FirstName, subject, plain, html); err != nil {
		s.Log.Warnw("gallery email failed", "booking", id, "error", err)
		resp.EmailSent = false
		resp.Warning = "L'email n'a pas pu être envoyé"
	}

	return resp, nil
}

// VerifyGallery resolves an access code (case-insensitively) to the client's
// gallery, enforcing the expiration window.
func (s *BookingService) VerifyGallery(code string) (*entities.Gallery, error) {
	booking, err := s.Repo.ByGalleryCode(code)
	if err != nil {
		return nil, err
	}
	if !booking.GalleryCreated {
		return nil, store.ErrNotFound
	}

	if booking.GalleryExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, booking.GalleryExpiresAt)
		if err == nil && time.Now().After(expiresAt) {
			return nil, &GalleryExpiredError{ExpiresAt: booking.GalleryExpiresAt}
		}
	}

	photos := booking.GalleryPhotos
	if photos == nil {
		photos = []string{}
	}
	return &entities.Gallery{Booking: booking, Photos: photos, ExpiresAt: booking.GalleryExpiresAt}, nil
}

// UpdateGalleryPhotos replaces the curated photo list. Pure persistence, no
// side effects.
func (s *BookingService) UpdateGalleryPhotos(id string, photos []string) (*db.Booking, error) {
	return s.Repo.Update(id, store.Record{"galleryPhotos": photos})
}

// IsNotFound reports whether err means the record does not exist, as opposed
// to bad input.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
