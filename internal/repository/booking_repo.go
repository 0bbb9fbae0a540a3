package repository

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"lueurstudio/internal/db"
	"lueurstudio/internal/store"
)

const bookingCollection = "reservations"

type BookingRepository struct {
	Store *store.Store
}

func NewBookingRepository(s *store.Store) *BookingRepository {
	return &BookingRepository{Store: s}
}

func (r *BookingRepository) Create(b *db.Booking) error {
	rec, err := toRecord(b)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	_, err = r.Store.Append(bookingCollection, rec)
	return err
}

func (r *BookingRepository) ByID(id string) (*db.Booking, error) {
	rec, err := r.Store.FindByID(bookingCollection, id)
	if err != nil {
		return nil, err
	}
	var b db.Booking
	if err := fromRecord(rec, &b); err != nil {
		return nil, fmt.Errorf("booking %s: %w", id, err)
	}
	return &b, nil
}

// Update shallowly merges fields into the stored booking and returns the
// updated record. Unknown ids surface as store.ErrNotFound.
func (r *BookingRepository) Update(id string, fields store.Record) (*db.Booking, error) {
	rec, err := r.Store.UpdateByID(bookingCollection, id, fields)
	if err != nil {
		return nil, err
	}
	var b db.Booking
	if err := fromRecord(rec, &b); err != nil {
		return nil, fmt.Errorf("booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *BookingRepository) Delete(id string) error {
	return r.Store.RemoveByID(bookingCollection, id)
}

// List returns all well-formed bookings, newest first by creation time.
func (r *BookingRepository) List() ([]db.Booking, error) {
	records, err := r.Store.ListAll(bookingCollection)
	if err != nil {
		return nil, err
	}

	bookings := make([]db.Booking, 0, len(records))
	for _, rec := range records {
		var b db.Booking
		if err := fromRecord(rec, &b); err != nil {
			continue
		}
		if b.ID == "" {
			continue
		}
		bookings = append(bookings, b)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt > bookings[j].CreatedAt
	})
	return bookings, nil
}

// ActiveByDate returns the pending/confirmed bookings that occupy a time slot
// on the given date. Completed and cancelled bookings free their slot.
func (r *BookingRepository) ActiveByDate(date string) ([]db.Booking, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	var active []db.Booking
	for _, b := range all {
		if b.Date == date && b.StartTime != "" && b.IsActive() {
			active = append(active, b)
		}
	}
	return active, nil
}

// ByGalleryCode finds the booking holding the given gallery access code,
// compared case-insensitively. Returns store.ErrNotFound when no gallery
// matches.
func (r *BookingRepository) ByGalleryCode(code string) (*db.Booking, error) {
	all, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].GalleryCode != "" && strings.EqualFold(all[i].GalleryCode, code) {
			return &all[i], nil
		}
	}
	return nil, store.ErrNotFound
}

func toRecord(v interface{}) (store.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec store.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func fromRecord(rec store.Record, v interface{}) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
