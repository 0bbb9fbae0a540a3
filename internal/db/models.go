package db

// Booking statuses. Only pending and confirmed bookings hold their slot.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// DateToBeScheduled is the sentinel date for bookings arranged by appointment.
// It bypasses the availability rules and never participates in conflict checks.
const DateToBeScheduled = "À définir sur RDV"

// DefaultDurationHours applies wherever a booking has no explicit duration.
const DefaultDurationHours = 3

// Booking is a client reservation. JSON field names match the shapes the
// records were historically stored under.
type Booking struct {
	ID               string   `json:"id"`
	LastName         string   `json:"lastName"`
	FirstName        string   `json:"firstName"`
	Email            string   `json:"email"`
	ServiceType      string   `json:"prestationType"`
	Date             string   `json:"date"`
	StartTime        string   `json:"startTime,omitempty"`
	DurationHours    int      `json:"duration,omitempty"`
	Location         string   `json:"location"`
	SpecialRequests  string   `json:"specialRetouches,omitempty"`
	ReferencePhotos  []string `json:"inspirationPhotos,omitempty"`
	GalleryPhotos    []string `json:"galleryPhotos,omitempty"`
	CreatedAt        string   `json:"createdAt"`
	Status           string   `json:"status"`
	GalleryCode      string   `json:"galleryCode,omitempty"`
	GalleryCreated   bool     `json:"galleryCreated,omitempty"`
	GalleryExpiresAt string   `json:"galleryExpiresAt,omitempty"`
	EmailSent        bool     `json:"emailSent,omitempty"`
}

// IsActive reports whether the booking holds its slot.
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

type Testimonial struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Quote     string `json:"quote"`
	Project   string `json:"project,omitempty"`
	Rating    int    `json:"rating"`
	Date      string `json:"date,omitempty"`
	Image     string `json:"image,omitempty"`
	Email     string `json:"email,omitempty"`
	Approved  bool   `json:"approved"`
	CreatedAt string `json:"createdAt"`
}

type Project struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Details     []string `json:"details,omitempty"`
	Photos      []string `json:"photos,omitempty"`
	Category    string   `json:"category"`
}

// VerificationCode ties a client email to the code that lets them leave a
// testimonial. Emails are stored lowercased, codes uppercased.
type VerificationCode struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
