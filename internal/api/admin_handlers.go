package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lueurstudio/internal/entities"
	"lueurstudio/internal/service"
	"lueurstudio/internal/store"
)

// AdminBookingHandler serves the back-office booking endpoints. All routes are
// behind the admin JWT middleware.
type AdminBookingHandler struct {
	Service      *service.BookingService
	Availability *service.AvailabilityService

	// GalleryBaseURL is used when a dispatch request carries no explicit URL.
	GalleryBaseURL string
}

func NewAdminBookingHandler(svc *service.BookingService, avail *service.AvailabilityService, galleryBaseURL string) *AdminBookingHandler {
	return &AdminBookingHandler{Service: svc, Availability: avail, GalleryBaseURL: galleryBaseURL}
}

func (h *AdminBookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Service.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reservations": bookings})
}

func (h *AdminBookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.Service.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// UpdateBooking merges arbitrary fields into a booking. The record id and
// creation date cannot be changed this way.
func (h *AdminBookingHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	var fields store.Record
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	booking, err := h.Service.Update(mux.Vars(r)["id"], fields)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"reservation": booking,
	})
}

func (h *AdminBookingHandler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DispatchGallery creates (or re-sends) the private gallery for a booking and
// emails the client their access code.
func (h *AdminBookingHandler) DispatchGallery(w http.ResponseWriter, r *http.Request) {
	var req entities.GalleryDispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	galleryURL := req.GalleryURL
	if galleryURL == "" {
		galleryURL = h.GalleryBaseURL
	}
	res, err := h.Service.DispatchGallery(mux.Vars(r)["id"], galleryURL)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateGalleryPhotos replaces the curated photo list of a booking.
func (h *AdminBookingHandler) UpdateGalleryPhotos(w http.ResponseWriter, r *http.Request) {
	var req entities.GalleryPhotosRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	booking, err := h.Service.UpdateGalleryPhotos(mux.Vars(r)["id"], req.Photos)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"reservation": booking,
	})
}

// ListOverrides returns the blocked and unlocked date lists.
func (h *AdminBookingHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	lists, err := h.Availability.Lists()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// UpdateOverrides applies a block/unblock/unlock/lock action to one or several
// dates and returns the resulting lists.
func (h *AdminBookingHandler) UpdateOverrides(w http.ResponseWriter, r *http.Request) {
	var req entities.OverrideUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	lists, err := h.Availability.Apply(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"blockedDates":  lists.BlockedDates,
		"unlockedDates": lists.UnlockedDates,
	})
}
