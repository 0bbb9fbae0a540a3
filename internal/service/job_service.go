package service

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"lueurstudio/internal/db"
	"lueurstudio/internal/repository"
)

// JobService runs the scheduled sweeps. The only job is read-only: it reminds
// clients of confirmed shoots happening tomorrow. Records are never mutated
// outside the admin flow.
type JobService struct {
	Repo     *repository.BookingRepository
	Sender   *SenderService
	Notifier Notifier
	Log      *zap.SugaredLogger
}

func NewJobService(repo *repository.BookingRepository, sender *SenderService, notifier Notifier, log *zap.SugaredLogger) *JobService {
	return &JobService{Repo: repo, Sender: sender, Notifier: notifier, Log: log}
}

// SendUpcomingReminders emails every confirmed booking whose concrete date is
// tomorrow. Send failures are logged and do not stop the sweep.
func (s *JobService) SendUpcomingReminders() error {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	bookings, err := s.Repo.List()
	if err != nil {
		return fmt.Errorf("reminder sweep: %w", err)
	}

	var sent int
	for i := range bookings {
		b := &bookings[i]
		if b.Status != db.StatusConfirmed || b.Date != tomorrow || b.Email == "" {
			continue
		}
		subject, plain, html := s.Sender.ReminderEmail(b)
		if err := s.Notifier.Send(strings.TrimSpace(b.Email), b.FirstName, subject, plain, html); err != nil {
			s.Log.Warnw("reminder email failed", "booking", b.ID, "error", err)
			continue
		}
		sent++
	}

	s.Log.Infow("reminder sweep done", "date", tomorrow, "sent", sent)
	return nil
}
