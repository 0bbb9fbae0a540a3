package entities

// ConfirmationEmailData feeds the booking-confirmed email template.
type ConfirmationEmailData struct {
	FirstName   string
	DateDisplay string
	TimeDisplay string
	Location    string
	ServiceType string
	StudioName  string
}

// GalleryEmailData feeds the gallery-ready email template.
type GalleryEmailData struct {
	FirstName      string
	GalleryURL     string
	AccessCode     string
	ExpiresDisplay string
	StudioName     string
}

// ReminderEmailData feeds the day-before reminder email template.
type ReminderEmailData struct {
	FirstName   string
	DateDisplay string
	TimeDisplay string
	Location    string
	StudioName  string
}
