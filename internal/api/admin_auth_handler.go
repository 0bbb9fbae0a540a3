package api

import (
	"encoding/json"
	"net/http"
	"time"

	"lueurstudio/internal/auth"
	"lueurstudio/internal/service"
)

type AdminAuthHandler struct {
	service service.AdminAuthService
	secure  bool
}

// NewAdminAuthHandler builds the login handler. secure controls the cookie's
// Secure flag and should be true everywhere except local development.
func NewAdminAuthHandler(svc service.AdminAuthService, secure bool) *AdminAuthHandler {
	return &AdminAuthHandler{service: svc, secure: secure}
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Login exchanges the admin password for a session token. The token is
// returned in the body and also set as an HTTP-only cookie.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Requête invalide"})
		return
	}

	token, err := h.service.Login(req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Mot de passe incorrect"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, LoginResponse{Success: true, Token: token})
}

// Logout clears the admin session cookie.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
