package entities

import "lueurstudio/internal/db"

// GalleryDispatchRequest triggers the "your photos are ready" email. An empty
// URL falls back to the configured gallery page.
type GalleryDispatchRequest struct {
	GalleryURL string `json:"galleryUrl"`
}

// GalleryDispatchResponse returns the access code the client will type in.
type GalleryDispatchResponse struct {
	AccessCode string `json:"accessCode"`
	EmailSent  bool   `json:"emailSent"`
	Recipient  string `json:"recipient"`
	Warning    string `json:"warning,omitempty"`
}

// Gallery is what a client sees after entering a valid access code.
type Gallery struct {
	Booking   *db.Booking `json:"reservation"`
	Photos    []string    `json:"photos"`
	ExpiresAt string      `json:"expiresAt,omitempty"`
}

// GalleryPhotosRequest replaces the curated photo list of a booking.
type GalleryPhotosRequest struct {
	Photos []string `json:"photos"`
}
