package entities

// AvailabilityResponse answers both the date-level and the slot-level checks.
type AvailabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// OverrideLists carries the two explicit exception lists to the weekend rule.
type OverrideLists struct {
	BlockedDates  []string `json:"blockedDates"`
	UnlockedDates []string `json:"unlockedDates"`
}

// OverrideUpdateRequest mutates the override lists. Action is one of
// block, unblock, unlock or lock; either Date or Dates must be set.
type OverrideUpdateRequest struct {
	Action string   `json:"action" validate:"required,oneof=block unblock unlock lock"`
	Date   string   `json:"date,omitempty"`
	Dates  []string `json:"dates,omitempty"`
}
