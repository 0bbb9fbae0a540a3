package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"lueurstudio/internal/entities"
	"lueurstudio/internal/service"
)

// TestimonialHandler serves both the public testimonial endpoints and the
// admin moderation endpoints.
type TestimonialHandler struct {
	Service *service.TestimonialService
}

func NewTestimonialHandler(svc *service.TestimonialService) *TestimonialHandler {
	return &TestimonialHandler{Service: svc}
}

// ListPublic returns approved testimonials only.
func (h *TestimonialHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.Service.ListPublic()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"testimonials": testimonials})
}

// Add handles a client submission. The payload must carry a verification code
// matching the email it was issued for.
func (h *TestimonialHandler) Add(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		entities.TestimonialRequest
		VerificationCode string `json:"verificationCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	testimonial, err := h.Service.Add(payload.TestimonialRequest, payload.VerificationCode, false, false)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"testimonial": testimonial,
	})
}

// VerifyCode checks a verification code without submitting anything, so the
// form can unlock itself.
func (h *TestimonialHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req entities.CodeVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	ok, err := h.Service.VerifyCode(req.Email, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"valid": ok})
}

// ListAll returns every testimonial, approved or not (admin).
func (h *TestimonialHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.Service.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"testimonials": testimonials})
}

// AddAdmin creates a pre-approved testimonial without a verification code.
func (h *TestimonialHandler) AddAdmin(w http.ResponseWriter, r *http.Request) {
	var req entities.TestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	testimonial, err := h.Service.Add(req, "", true, true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"testimonial": testimonial,
	})
}

// SetApproved flips the approved flag of a testimonial (admin).
func (h *TestimonialHandler) SetApproved(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Approved bool `json:"approved"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	testimonial, err := h.Service.SetApproved(mux.Vars(r)["id"], req.Approved)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"testimonial": testimonial,
	})
}

// Delete removes a testimonial (admin).
func (h *TestimonialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Codes lists the verification codes by client email (admin).
func (h *TestimonialHandler) Codes(w http.ResponseWriter, r *http.Request) {
	codes, err := h.Service.Codes()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"codes": codes})
}

// UpdateCode adds or removes a verification code (admin).
func (h *TestimonialHandler) UpdateCode(w http.ResponseWriter, r *http.Request) {
	var req entities.CodeUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}
	if err := h.Service.UpdateCode(req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
