package service

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"lueurstudio/internal/db"
	"lueurstudio/internal/entities"
)

// SenderService assembles the studio's outgoing emails (subject, plain text
// and HTML bodies). Delivery itself goes through a Notifier.
type SenderService struct {
	StudioName string
}

func NewSenderService(studioName string) *SenderService {
	return &SenderService{StudioName: studioName}
}

var frenchWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

var frenchMonths = [...]string{"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre"}

// FormatFrenchDate renders "samedi 17 janvier 2026" from a YYYY-MM-DD date.
// The sentinel date and anything unparsable come back unchanged.
func FormatFrenchDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s %d %s %d", frenchWeekdays[t.Weekday()], t.Day(), frenchMonths[t.Month()-1], t.Year())
}

// FormatTimeWindow renders "10:00 - 13:00 (3h)" from a start time and a
// duration in hours. Empty when the booking has no start time.
func FormatTimeWindow(startTime string, durationHours int) string {
	if startTime == "" {
		return ""
	}
	if durationHours <= 0 {
		durationHours = db.DefaultDurationHours
	}
	var hour int
	if _, err := fmt.Sscanf(startTime, "%d:", &hour); err != nil {
		return ""
	}
	return fmt.Sprintf("%s - %02d:00 (%dh)", startTime, hour+durationHours, durationHours)
}

// ConfirmationEmail builds the booking-confirmed email.
func (s *SenderService) ConfirmationEmail(b *db.Booking) (subject, plain, html string) {
	data := entities.ConfirmationEmailData{
		FirstName:   b.FirstName,
		DateDisplay: confirmationDateDisplay(b.Date),
		TimeDisplay: FormatTimeWindow(b.StartTime, b.DurationHours),
		Location:    orUnspecified(b.Location),
		ServiceType: orUnspecified(b.ServiceType),
		StudioName:  s.StudioName,
	}

	subject = fmt.Sprintf("Confirmation de votre réservation - %s", s.StudioName)
	plain = fmt.Sprintf(
		"Bonjour %s,\n\nNous avons le plaisir de vous confirmer votre réservation de shooting photo.\n\n"+
			"Date : %s\n"+
			"Heure : %s\n"+
			"Lieu : %s\n"+
			"Type de prestation : %s\n\n"+
			"Veuillez arriver à l'heure pour ne pas retarder le shooting.\n\n"+
			"Cordialement,\nL'équipe %s",
		data.FirstName, data.DateDisplay, orUnspecified(data.TimeDisplay), data.Location, data.ServiceType, s.StudioName,
	)
	html = render(confirmationTmpl, data)
	return subject, plain, html
}

// GalleryEmail builds the "your photos are ready" email carrying the access
// code and gallery link.
func (s *SenderService) GalleryEmail(b *db.Booking, galleryURL, accessCode, expiresAt string) (subject, plain, html string) {
	expiresDisplay := expiresAt
	if t, err := time.Parse(time.RFC3339, expiresAt); err == nil {
		expiresDisplay = fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
	}

	data := entities.GalleryEmailData{
		FirstName:      b.FirstName,
		GalleryURL:     galleryURL,
		AccessCode:     accessCode,
		ExpiresDisplay: expiresDisplay,
		StudioName:     s.StudioName,
	}

	subject = fmt.Sprintf("Vos photos sont prêtes - %s", s.StudioName)
	plain = fmt.Sprintf(
		"Bonjour %s,\n\nVos photos sont maintenant disponibles en ligne.\n\n"+
			"Galerie : %s\n"+
			"Code d'accès : %s\n\n"+
			"Votre galerie sera accessible pendant 2 mois (jusqu'au %s).\n\n"+
			"Cordialement,\nL'équipe %s",
		data.FirstName, galleryURL, accessCode, expiresDisplay, s.StudioName,
	)
	html = render(galleryTmpl, data)
	return subject, plain, html
}

// ReminderEmail builds the day-before reminder for a confirmed booking.
func (s *SenderService) ReminderEmail(b *db.Booking) (subject, plain, html string) {
	data := entities.ReminderEmailData{
		FirstName:   b.FirstName,
		DateDisplay: FormatFrenchDate(b.Date),
		TimeDisplay: FormatTimeWindow(b.StartTime, b.DurationHours),
		Location:    orUnspecified(b.Location),
		StudioName:  s.StudioName,
	}

	subject = fmt.Sprintf("Rappel : votre shooting a lieu demain - %s", s.StudioName)
	plain = fmt.Sprintf(
		"Bonjour %s,\n\nPetit rappel : votre shooting photo a lieu demain.\n\n"+
			"Date : %s\n"+
			"Heure : %s\n"+
			"Lieu : %s\n\n"+
			"À demain !\nL'équipe %s",
		data.FirstName, data.DateDisplay, orUnspecified(data.TimeDisplay), data.Location, s.StudioName,
	)
	html = render(reminderTmpl, data)
	return subject, plain, html
}

func confirmationDateDisplay(date string) string {
	if date == "" || date == db.DateToBeScheduled {
		return db.DateToBeScheduled
	}
	return FormatFrenchDate(date)
}

func orUnspecified(v string) string {
	if v == "" {
		return "Non spécifié"
	}
	return v
}

func render(t *template.Template, data interface{}) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return buf.String()
}

const emailStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
h1 { color: #6366f1; }
.box { background-color: #f0f9ff; border-left: 4px solid #6366f1; padding: 20px; margin: 20px 0; border-radius: 5px; }
.row { margin: 10px 0; padding: 10px; background-color: white; border-radius: 5px; }
.label { font-weight: bold; color: #6366f1; }
.code { background-color: #f5f5f5; padding: 15px; border-radius: 5px; font-family: monospace; font-size: 18px; text-align: center; margin: 20px 0; }
.button { display: inline-block; background-color: #6366f1; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><style>` + emailStyle + `</style></head>
  <body>
    <div class="container">
      <h1>Votre réservation est confirmée !</h1>
      <p>Bonjour {{.FirstName}},</p>
      <p>Nous avons le plaisir de vous confirmer votre réservation de shooting photo.</p>
      <div class="box">
        <h2 style="margin-top: 0; color: #6366f1;">Détails de votre réservation</h2>
        <div class="row"><span class="label">Date :</span> {{.DateDisplay}}</div>
        {{if .TimeDisplay}}<div class="row"><span class="label">Heure :</span> {{.TimeDisplay}}</div>{{end}}
        <div class="row"><span class="label">Lieu :</span> {{.Location}}</div>
        <div class="row"><span class="label">Type de prestation :</span> {{.ServiceType}}</div>
      </div>
      <p><strong>Important :</strong></p>
      <ul>
        <li>Veuillez arriver à l'heure pour ne pas retarder le shooting</li>
        <li>Si vous avez besoin de modifier votre réservation, contactez-nous</li>
      </ul>
      <p>Nous avons hâte de réaliser votre shooting !</p>
      <p>Cordialement,<br>L'équipe {{.StudioName}}</p>
    </div>
  </body>
</html>`))

var galleryTmpl = template.Must(template.New("gallery").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><style>` + emailStyle + `</style></head>
  <body>
    <div class="container">
      <h1>Vos photos sont prêtes !</h1>
      <p>Bonjour {{.FirstName}},</p>
      <p>Nous avons le plaisir de vous informer que vos photos sont maintenant disponibles en ligne.</p>
      <div style="text-align: center; margin: 30px 0;">
        <a href="{{.GalleryURL}}" class="button">Accéder à ma galerie</a>
      </div>
      <p><strong>Code d'accès :</strong></p>
      <div class="code">{{.AccessCode}}</div>
      <p style="font-size: 12px; color: #666;">Vous devrez entrer ce code pour accéder à votre galerie.</p>
      <div class="box" style="background-color: #fff3cd; border-left-color: #ffc107;">
        <p><strong>Important :</strong> votre galerie sera accessible pendant 2 mois à partir d'aujourd'hui.</p>
        <p style="font-size: 12px; color: #666;">Date d'expiration : {{.ExpiresDisplay}}</p>
      </div>
      <p>Vous pourrez également laisser un avis sur votre expérience directement depuis la galerie.</p>
      <p>Cordialement,<br>L'équipe {{.StudioName}}</p>
    </div>
  </body>
</html>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
  <head><meta charset="utf-8"><style>` + emailStyle + `</style></head>
  <body>
    <div class="container">
      <h1>Votre shooting a lieu demain</h1>
      <p>Bonjour {{.FirstName}},</p>
      <div class="box">
        <div class="row"><span class="label">Date :</span> {{.DateDisplay}}</div>
        {{if .TimeDisplay}}<div class="row"><span class="label">Heure :</span> {{.TimeDisplay}}</div>{{end}}
        <div class="row"><span class="label">Lieu :</span> {{.Location}}</div>
      </div>
      <p>À demain !<br>L'équipe {{.StudioName}}</p>
    </div>
  </body>
</html>`))
