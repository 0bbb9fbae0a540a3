package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lueurstudio/internal/entities"
	"lueurstudio/internal/service"
)

// UserBookingHandler serves the public booking form endpoints. UploadDir
// receives the reference photos submitted with the form.
type UserBookingHandler struct {
	Service   *service.BookingService
	UploadDir string
}

func NewUserBookingHandler(svc *service.BookingService, uploadDir string) *UserBookingHandler {
	return &UserBookingHandler{Service: svc, UploadDir: uploadDir}
}

// CheckDate answers GET /api/availability/check?date=YYYY-MM-DD.
func (h *UserBookingHandler) CheckDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Le paramètre date est requis"})
		return
	}
	res, err := h.Service.CheckDate(date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// AvailableDates answers GET /api/availability/range?start=&end= with the
// bookable dates in the window.
func (h *UserBookingHandler) AvailableDates(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Les paramètres start et end sont requis"})
		return
	}
	dates, err := h.Service.AvailableDates(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"availableDates": dates})
}

// CheckSlot answers POST /api/reservations/check-time with a date, start time and duration.
func (h *UserBookingHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	var req entities.SlotCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	res, err := h.Service.CheckSlot(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// BookedTimes answers GET /api/reservations/booked-times?date=YYYY-MM-DD with the occupied
// windows so the form can grey out conflicting hours.
func (h *UserBookingHandler) BookedTimes(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Le paramètre date est requis"})
		return
	}
	slots, err := h.Service.BookedTimes(date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"bookedSlots": slots})
}

// CreateBooking answers POST /api/reservations. The booking form submits
// multipart/form-data carrying its fields plus any reference photos; plain
// JSON without photos is accepted too.
func (h *UserBookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateBookingRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		parsed, ok := h.bookingFromForm(w, r)
		if !ok {
			return
		}
		req = parsed
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	booking, err := h.Service.Create(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"reservation": booking,
	})
}

// bookingFromForm builds the create request from a multipart submission,
// storing any reference photos. Writes the error response itself when the
// form cannot be used.
func (h *UserBookingHandler) bookingFromForm(w http.ResponseWriter, r *http.Request) (entities.CreateBookingRequest, bool) {
	var req entities.CreateBookingRequest

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "Les photos dépassent 10 Mo"})
		return req, false
	}

	duration := 0
	if v := r.FormValue("duration"); v != "" {
		fmt.Sscanf(v, "%d", &duration)
	}
	req = entities.CreateBookingRequest{
		LastName:        r.FormValue("lastName"),
		FirstName:       r.FormValue("firstName"),
		Email:           r.FormValue("email"),
		ServiceType:     r.FormValue("prestationType"),
		Date:            r.FormValue("date"),
		StartTime:       r.FormValue("startTime"),
		DurationHours:   duration,
		Location:        r.FormValue("location"),
		SpecialRequests: r.FormValue("specialRetouches"),
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["inspirationPhotos"] {
			if header.Size == 0 {
				continue
			}
			file, err := header.Open()
			if err != nil {
				writeError(w, err)
				return req, false
			}
			name, err := storePhoto(h.UploadDir, file, header.Filename)
			file.Close()
			if err != nil {
				if errors.Is(err, errUnsupportedUpload) {
					writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Seuls les formats JPEG, PNG et WebP sont acceptés"})
					return req, false
				}
				writeError(w, err)
				return req, false
			}
			req.ReferencePhotos = append(req.ReferencePhotos, "/api/images/"+name)
		}
	}
	return req, true
}

// VerifyGallery answers GET /api/gallery/verify?code=XXXXXXXX.
func (h *UserBookingHandler) VerifyGallery(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Le code d'accès est requis"})
		return
	}
	gallery, err := h.Service.VerifyGallery(code)
	if err != nil {
		var expired *service.GalleryExpiredError
		if errors.As(err, &expired) {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"error":     "Cette galerie a expiré",
				"expired":   true,
				"expiresAt": expired.ExpiresAt,
			})
			return
		}
		if service.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Code d'accès invalide"})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gallery)
}
