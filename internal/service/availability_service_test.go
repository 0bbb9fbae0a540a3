package service

import (
	"errors"
	"testing"

	"lueurstudio/internal/entities"
	apperrors "lueurstudio/internal/errors"
	"lueurstudio/internal/repository"
	"lueurstudio/internal/store"
)

func newTestAvailabilityService(t *testing.T) *AvailabilityService {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return NewAvailabilityService(repository.NewOverrideRepository(s))
}

func TestApplyBlockAndUnlock(t *testing.T) {
	svc := newTestAvailabilityService(t)

	lists, err := svc.Apply(entities.OverrideUpdateRequest{Action: "block", Date: "2026-01-17"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(lists.BlockedDates) != 1 || lists.BlockedDates[0] != "2026-01-17" {
		t.Errorf("blocked = %v", lists.BlockedDates)
	}

	lists, err = svc.Apply(entities.OverrideUpdateRequest{Action: "unlock", Dates: []string{"2026-01-19", "2026-01-20"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(lists.UnlockedDates) != 2 {
		t.Errorf("unlocked = %v", lists.UnlockedDates)
	}
}

// Unknown actions and empty requests are caller mistakes and must surface as
// 400s with a reason, never as internal errors.
func TestApplyRejectsBadRequests(t *testing.T) {
	svc := newTestAvailabilityService(t)

	cases := []struct {
		name string
		req  entities.OverrideUpdateRequest
	}{
		{"unknown action", entities.OverrideUpdateRequest{Action: "explode", Date: "2026-01-17"}},
		{"missing action", entities.OverrideUpdateRequest{Date: "2026-01-17"}},
		{"no dates", entities.OverrideUpdateRequest{Action: "block"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.Apply(c.req)
			var httpErr *apperrors.HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("err = %v, want an HTTPError", err)
			}
			if httpErr.Code != 400 {
				t.Errorf("code = %d, want 400", httpErr.Code)
			}
			if httpErr.Message == "" {
				t.Error("expected a human-readable reason")
			}
		})
	}
}
