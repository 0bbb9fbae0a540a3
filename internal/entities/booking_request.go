package entities

// CreateBookingRequest is the public submission payload. Reference photos are
// paths previously returned by the upload endpoint.
type CreateBookingRequest struct {
	LastName        string   `json:"lastName" validate:"required"`
	FirstName       string   `json:"firstName" validate:"required"`
	Email           string   `json:"email" validate:"required,email"`
	ServiceType     string   `json:"prestationType" validate:"required"`
	Date            string   `json:"date" validate:"required"`
	StartTime       string   `json:"startTime,omitempty"`
	DurationHours   int      `json:"duration,omitempty"`
	Location        string   `json:"location" validate:"required"`
	SpecialRequests string   `json:"specialRetouches,omitempty"`
	ReferencePhotos []string `json:"inspirationPhotos,omitempty"`
}

// SlotCheckRequest asks whether a time slot can still be granted on a date.
type SlotCheckRequest struct {
	Date          string `json:"date" validate:"required"`
	StartTime     string `json:"startTime" validate:"required"`
	DurationHours int    `json:"duration,omitempty"`
}

// BookedSlot is one occupied window on a date, as shown to the public form.
type BookedSlot struct {
	StartTime     string `json:"startTime"`
	DurationHours int    `json:"duration"`
}
