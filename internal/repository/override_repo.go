package repository

import (
	"errors"
	"fmt"
	"sort"

	"lueurstudio/internal/store"
)

const (
	overrideCollection = "availability"
	blockedID          = "blockedDates"
	unlockedID         = "unlockedDates"
)

// OverrideRepository owns the two explicit exception lists to the weekend
// rule. Each list lives as a singleton record in the availability collection.
type OverrideRepository struct {
	Store *store.Store
}

func NewOverrideRepository(s *store.Store) *OverrideRepository {
	return &OverrideRepository{Store: s}
}

// Lists returns the blocked and unlocked date lists, creating empty ones on
// first use.
func (r *OverrideRepository) Lists() (blocked, unlocked []string, err error) {
	blocked, err = r.list(blockedID)
	if err != nil {
		return nil, nil, err
	}
	unlocked, err = r.list(unlockedID)
	if err != nil {
		return nil, nil, err
	}
	return blocked, unlocked, nil
}

// Apply mutates the lists for every given date. Blocking a date removes it
// from the unlocked list and vice versa, so a date never ends up in both.
// Both lists are kept sorted.
func (r *OverrideRepository) Apply(action string, dates []string) (blocked, unlocked []string, err error) {
	blocked, unlocked, err = r.Lists()
	if err != nil {
		return nil, nil, err
	}

	for _, d := range dates {
		switch action {
		case "block":
			blocked = appendUnique(blocked, d)
			unlocked = removeDate(unlocked, d)
		case "unblock":
			blocked = removeDate(blocked, d)
		case "unlock":
			unlocked = appendUnique(unlocked, d)
			blocked = removeDate(blocked, d)
		case "lock":
			unlocked = removeDate(unlocked, d)
		default:
			return nil, nil, fmt.Errorf("unknown availability action %q", action)
		}
	}

	sort.Strings(blocked)
	sort.Strings(unlocked)

	if err := r.save(blockedID, blocked); err != nil {
		return nil, nil, err
	}
	if err := r.save(unlockedID, unlocked); err != nil {
		return nil, nil, err
	}
	return blocked, unlocked, nil
}

func (r *OverrideRepository) list(id string) ([]string, error) {
	rec, err := r.Store.FindByID(overrideCollection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}

	raw, _ := rec["dates"].([]interface{})
	dates := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			dates = append(dates, s)
		}
	}
	return dates, nil
}

func (r *OverrideRepository) save(id string, dates []string) error {
	_, err := r.Store.UpdateByID(overrideCollection, id, store.Record{"dates": dates})
	if errors.Is(err, store.ErrNotFound) {
		_, err = r.Store.Append(overrideCollection, store.Record{"id": id, "dates": dates})
	}
	return err
}

func appendUnique(dates []string, d string) []string {
	for _, v := range dates {
		if v == d {
			return dates
		}
	}
	return append(dates, d)
}

func removeDate(dates []string, d string) []string {
	out := dates[:0]
	for _, v := range dates {
		if v != d {
			out = append(out, v)
		}
	}
	return out
}
