package repository

import (
	"errors"
	"testing"

	"lueurstudio/internal/db"
	"lueurstudio/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBookingListNewestFirst(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))

	bookings := []db.Booking{
		{ID: "r-1", Email: "a@b.c", CreatedAt: "2026-01-10T10:00:00Z", Status: db.StatusPending},
		{ID: "r-2", Email: "a@b.c", CreatedAt: "2026-01-12T10:00:00Z", Status: db.StatusPending},
		{ID: "r-3", Email: "a@b.c", CreatedAt: "2026-01-11T10:00:00Z", Status: db.StatusPending},
	}
	for i := range bookings {
		if err := repo.Create(&bookings[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"r-2", "r-3", "r-1"}
	if len(got) != len(want) {
		t.Fatalf("got %d bookings, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].ID != w {
			t.Errorf("bookings[%d].ID = %s, want %s", i, got[i].ID, w)
		}
	}
}

func TestActiveByDateSkipsFinishedBookings(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))

	bookings := []db.Booking{
		{ID: "r-1", Date: "2026-01-17", StartTime: "10:00", Status: db.StatusPending},
		{ID: "r-2", Date: "2026-01-17", StartTime: "14:00", Status: db.StatusConfirmed},
		{ID: "r-3", Date: "2026-01-17", StartTime: "17:00", Status: db.StatusCancelled},
		{ID: "r-4", Date: "2026-01-17", StartTime: "17:00", Status: db.StatusCompleted},
		{ID: "r-5", Date: "2026-01-18", StartTime: "10:00", Status: db.StatusPending},
		{ID: "r-6", Date: "2026-01-17", Status: db.StatusPending}, // no start time
	}
	for i := range bookings {
		if err := repo.Create(&bookings[i]); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	active, err := repo.ActiveByDate("2026-01-17")
	if err != nil {
		t.Fatalf("ActiveByDate: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("got %d active bookings, want 2", len(active))
	}
	for _, b := range active {
		if b.ID != "r-1" && b.ID != "r-2" {
			t.Errorf("unexpected active booking %s", b.ID)
		}
	}
}

func TestByGalleryCodeIsCaseInsensitive(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))

	if err := repo.Create(&db.Booking{ID: "r-1", GalleryCode: "ABCD1234", Status: db.StatusConfirmed}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ByGalleryCode("abcd1234")
	if err != nil {
		t.Fatalf("ByGalleryCode: %v", err)
	}
	if got.ID != "r-1" {
		t.Errorf("ID = %s, want r-1", got.ID)
	}

	if _, err := repo.ByGalleryCode("ZZZZZZZZ"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown code err = %v, want ErrNotFound", err)
	}
}

func TestBookingUpdateKeepsOtherFields(t *testing.T) {
	repo := NewBookingRepository(newTestStore(t))

	if err := repo.Create(&db.Booking{ID: "r-1", Email: "a@b.c", Status: db.StatusPending}); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Update("r-1", store.Record{"status": db.StatusConfirmed})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Status != db.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
	if got.Email != "a@b.c" {
		t.Errorf("email = %s, want a@b.c", got.Email)
	}
}
