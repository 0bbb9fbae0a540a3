package api

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"lueurstudio/internal/repository"
	"lueurstudio/internal/service"
	"lueurstudio/internal/store"
)

type nopNotifier struct{}

func (nopNotifier) Send(toEmail, toName, subject, plainBody, htmlBody string) error { return nil }

func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()
	srv, _ := newTestRouterWithDir(t)
	return srv
}

func newTestRouterWithDir(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	bookingSvc := service.NewBookingService(
		repository.NewBookingRepository(s),
		repository.NewOverrideRepository(s),
		service.NewSenderService("LueurStudio"),
		nopNotifier{},
		zap.NewNop().Sugar(),
	)
	dir := t.TempDir()
	h := NewUserBookingHandler(bookingSvc, dir)

	r := mux.NewRouter()
	r.HandleFunc("/api/availability/check", h.CheckDate).Methods("GET")
	r.HandleFunc("/api/availability/range", h.AvailableDates).Methods("GET")
	r.HandleFunc("/api/reservations/check-time", h.CheckSlot).Methods("POST")
	r.HandleFunc("/api/reservations/booked-times", h.BookedTimes).Methods("GET")
	r.HandleFunc("/api/reservations", h.CreateBooking).Methods("POST")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, dir
}

func TestCheckDateEndpoint(t *testing.T) {
	srv := newTestRouter(t)

	res, err := http.Get(srv.URL + "/api/availability/check?date=2026-01-17")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var body struct {
		Available bool   `json:"available"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if !body.Available {
		t.Errorf("Saturday should be available, reason %q", body.Reason)
	}
}

func TestCheckDateEndpointRequiresDate(t *testing.T) {
	srv := newTestRouter(t)

	res, err := http.Get(srv.URL + "/api/availability/check")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res.StatusCode)
	}
}

func TestCreateAndListBookedTimes(t *testing.T) {
	srv := newTestRouter(t)

	payload := map[string]interface{}{
		"lastName":       "Martin",
		"firstName":      "Chloé",
		"email":          "chloe@example.com",
		"prestationType": "portrait",
		"date":           "2026-01-17",
		"startTime":      "10:00",
		"duration":       3,
		"location":       "studio",
	}
	raw, _ := json.Marshal(payload)

	res, err := http.Post(srv.URL+"/api/reservations", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}

	// The new booking shows up in the public busy list.
	res2, err := http.Get(srv.URL + "/api/reservations/booked-times?date=2026-01-17")
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Body.Close()
	var body struct {
		BookedSlots []struct {
			StartTime string `json:"startTime"`
			Duration  int    `json:"duration"`
		} `json:"bookedSlots"`
	}
	if err := json.NewDecoder(res2.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if len(body.BookedSlots) != 1 {
		t.Fatalf("got %d booked slots, want 1", len(body.BookedSlots))
	}
	if body.BookedSlots[0].StartTime != "10:00" || body.BookedSlots[0].Duration != 3 {
		t.Errorf("slot = %+v", body.BookedSlots[0])
	}

	// A conflicting second booking is refused with the conflict reason.
	payload["startTime"] = "12:00"
	raw, _ = json.Marshal(payload)
	res3, err := http.Post(srv.URL+"/api/reservations", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	defer res3.Body.Close()
	if res3.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", res3.StatusCode)
	}
}

func TestAvailableDatesEndpoint(t *testing.T) {
	srv := newTestRouter(t)

	// 2026-01-12 (Monday) through 2026-01-18 (Sunday): only the weekend.
	res, err := http.Get(srv.URL + "/api/availability/range?start=2026-01-12&end=2026-01-18")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	var body struct {
		AvailableDates []string `json:"availableDates"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-01-17", "2026-01-18"}
	if len(body.AvailableDates) != len(want) {
		t.Fatalf("dates = %v, want %v", body.AvailableDates, want)
	}
	for i, w := range want {
		if body.AvailableDates[i] != w {
			t.Errorf("dates[%d] = %s, want %s", i, body.AvailableDates[i], w)
		}
	}

	// Malformed bounds are a validation error, not a server error.
	res2, err := http.Get(srv.URL + "/api/availability/range?start=garbage&end=2026-01-18")
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Body.Close()
	if res2.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", res2.StatusCode)
	}
}

func TestCreateBookingMultipartStoresReferencePhotos(t *testing.T) {
	srv, dir := newTestRouterWithDir(t)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		t.Fatal(err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"lastName":       "Martin",
		"firstName":      "Chloé",
		"email":          "chloe@example.com",
		"prestationType": "portrait",
		"date":           "2026-01-17",
		"startTime":      "10:00",
		"duration":       "3",
		"location":       "studio",
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	fw, err := mw.CreateFormFile("inspirationPhotos", "inspiration.png")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write(pngBuf.Bytes()); err != nil {
		t.Fatal(err)
	}
	mw.Close()

	res, err := http.Post(srv.URL+"/api/reservations", mw.FormDataContentType(), &body)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", res.StatusCode)
	}

	var created struct {
		Reservation struct {
			ReferencePhotos []string `json:"inspirationPhotos"`
		} `json:"reservation"`
	}
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	if len(created.Reservation.ReferencePhotos) != 1 {
		t.Fatalf("got %d reference photos, want 1", len(created.Reservation.ReferencePhotos))
	}
	if !strings.HasPrefix(created.Reservation.ReferencePhotos[0], "/api/images/") {
		t.Errorf("photo path = %s, want an /api/images/ path", created.Reservation.ReferencePhotos[0])
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d stored files, want 1", len(entries))
	}
}

func TestCheckTimeEndpoint(t *testing.T) {
	srv := newTestRouter(t)

	raw, _ := json.Marshal(map[string]interface{}{
		"date":      "2026-01-17",
		"startTime": "18:00",
		"duration":  3,
	})
	res, err := http.Post(srv.URL+"/api/reservations/check-time", "application/json", bytes.NewReader(raw))
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	var body struct {
		Available bool   `json:"available"`
		Reason    string `json:"reason"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Available {
		t.Error("18:00 + 3h runs past closing and should be refused")
	}
	if body.Reason == "" {
		t.Error("expected a refusal reason")
	}
}
