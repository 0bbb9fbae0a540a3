// Package availability holds the pure calendar rules: which dates can be
// booked at all, and whether a candidate time slot collides with the active
// bookings already holding that date.
package availability

import (
	"fmt"
	"time"
)

// Operating window. A session may start at 10:00 at the earliest; the last
// valid start is 20:00 minus the session duration, so every session ends by
// 20:00 at the latest.
const (
	OpenHour  = 10
	CloseHour = 20
)

const dateLayout = "2006-01-02"

// DateResult is the outcome of the date-level rule engine.
type DateResult struct {
	Available bool
	Reason    string
}

// CheckDate applies the booking-calendar policy to a single date:
//
//  1. an explicitly blocked date is never available;
//  2. weekends are available by default;
//  3. weekdays are available only when explicitly unlocked;
//  4. anything else is a weekday without an unlock, hence unavailable.
//
// The order matters: a block always wins, even over an unlock, and weekends
// can only be turned off via the blocked list.
func CheckDate(date string, blocked, unlocked []string) (DateResult, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return DateResult{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	if containsDate(blocked, date) {
		return DateResult{Available: false, Reason: "Cette date est bloquée"}, nil
	}

	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return DateResult{Available: true}, nil
	}

	if containsDate(unlocked, date) {
		return DateResult{Available: true}, nil
	}

	return DateResult{Available: false, Reason: "Les réservations sont disponibles uniquement les week-ends"}, nil
}

// AvailableDatesInRange lists every bookable date in [start, end], inclusive.
func AvailableDatesInRange(start, end time.Time, blocked, unlocked []string) []string {
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ds := d.Format(dateLayout)
		res, err := CheckDate(ds, blocked, unlocked)
		if err == nil && res.Available {
			dates = append(dates, ds)
		}
	}
	return dates
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}
