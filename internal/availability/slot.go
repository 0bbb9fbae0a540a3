package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// Slot is an occupied window on a date: a start time and a duration in hours.
type Slot struct {
	StartTime     string
	DurationHours int
}

// SlotResult is the outcome of a slot conflict check.
type SlotResult struct {
	Available bool
	Reason    string
}

// CheckSlot decides whether a candidate slot may be granted given the active
// slots already booked on the same date. Validations run in order: operating
// window at the start boundary, last-valid-start rule, then half-open interval
// overlap against every active slot. The function is pure: same inputs, same
// answer, no mutation.
func CheckSlot(startTime string, durationHours int, active []Slot) (SlotResult, error) {
	if durationHours <= 0 {
		durationHours = 3
	}

	startMin, err := ParseMinutes(startTime)
	if err != nil {
		return SlotResult{}, err
	}
	hour := startMin / 60

	if hour < OpenHour || hour > CloseHour {
		return SlotResult{
			Available: false,
			Reason:    "Les réservations sont disponibles uniquement entre 10h et 20h",
		}, nil
	}

	if hour > CloseHour-durationHours {
		return SlotResult{
			Available: false,
			Reason:    fmt.Sprintf("Ce créneau dépasse 20h. Dernier créneau disponible: %d:00", CloseHour-durationHours),
		}, nil
	}

	endMin := startMin + durationHours*60

	for _, s := range active {
		if s.StartTime == "" {
			continue
		}
		otherStart, err := ParseMinutes(s.StartTime)
		if err != nil {
			continue
		}
		otherDur := s.DurationHours
		if otherDur <= 0 {
			otherDur = 3
		}
		otherEnd := otherStart + otherDur*60

		if Overlaps(startMin, endMin, otherStart, otherEnd) {
			return SlotResult{
				Available: false,
				Reason: fmt.Sprintf("Ce créneau chevauche une réservation existante de %s à %02d:%02d",
					s.StartTime, otherEnd/60, otherEnd%60),
			}, nil
		}
	}

	return SlotResult{Available: true}, nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// ParseMinutes converts an "HH:MM" time to minutes from midnight. A missing
// minute part counts as zero.
func ParseMinutes(t string) (int, error) {
	parts := strings.SplitN(t, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q", t)
	}
	minute := 0
	if len(parts) == 2 && parts[1] != "" {
		minute, err = strconv.Atoi(parts[1])
		if err != nil || minute < 0 || minute > 59 {
			return 0, fmt.Errorf("invalid time %q", t)
		}
	}
	return hour*60 + minute, nil
}
