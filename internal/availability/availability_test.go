package availability

import (
	"testing"
	"time"
)

func TestCheckDateWeekendDefault(t *testing.T) {
	cases := []struct {
		date string
		want bool
	}{
		{"2026-01-17", true},  // Saturday
		{"2026-01-18", true},  // Sunday
		{"2026-01-19", false}, // Monday
		{"2026-01-23", false}, // Friday
	}
	for _, c := range cases {
		got, err := CheckDate(c.date, nil, nil)
		if err != nil {
			t.Fatalf("CheckDate(%q): %v", c.date, err)
		}
		if got.Available != c.want {
			t.Errorf("CheckDate(%q).Available = %v, want %v", c.date, got.Available, c.want)
		}
	}
}

func TestCheckDateBlockWinsOverEverything(t *testing.T) {
	blocked := []string{"2026-01-17", "2026-01-19"}
	unlocked := []string{"2026-01-19"}

	// Blocked Saturday.
	got, err := CheckDate("2026-01-17", blocked, unlocked)
	if err != nil {
		t.Fatal(err)
	}
	if got.Available {
		t.Error("blocked Saturday should not be available")
	}
	if got.Reason != "Cette date est bloquée" {
		t.Errorf("reason = %q", got.Reason)
	}

	// Blocked Monday that is also unlocked. The block wins.
	got, err = CheckDate("2026-01-19", blocked, unlocked)
	if err != nil {
		t.Fatal(err)
	}
	if got.Available {
		t.Error("blocked date should stay unavailable even when unlocked")
	}
}

func TestCheckDateUnlockedWeekday(t *testing.T) {
	got, err := CheckDate("2026-01-19", nil, []string{"2026-01-19"})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Available {
		t.Errorf("unlocked Monday should be available, reason %q", got.Reason)
	}
}

func TestCheckDateWeekdayReason(t *testing.T) {
	got, err := CheckDate("2026-01-20", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Available {
		t.Fatal("plain Tuesday should not be available")
	}
	if got.Reason != "Les réservations sont disponibles uniquement les week-ends" {
		t.Errorf("reason = %q", got.Reason)
	}
}

func TestCheckDateInvalid(t *testing.T) {
	if _, err := CheckDate("not-a-date", nil, nil); err == nil {
		t.Error("expected an error for a malformed date")
	}
}

func TestAvailableDatesInRange(t *testing.T) {
	start := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC) // Monday
	end := time.Date(2026, 1, 18, 0, 0, 0, 0, time.UTC)   // Sunday

	got := AvailableDatesInRange(start, end, []string{"2026-01-18"}, []string{"2026-01-14"})
	want := []string{"2026-01-14", "2026-01-17"}

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dates[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
