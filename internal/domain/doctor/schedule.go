package doctor

import (
	"fmt"
	"sort"
	"time"
)

// DaySchedule is one weekday of a doctor's recurring template: a short
// weekday label plus the slot-start times offered that day, as "HH:MM"
// 24-hour strings sorted by wall-clock order.
type DaySchedule struct {
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

var dayLabels = map[string]struct{}{
	"Mon": {}, "Tue": {}, "Wed": {}, "Thu": {}, "Fri": {}, "Sat": {}, "Sun": {},
}

func IsDayLabel(s string) bool {
	_, ok := dayLabels[s]
	return ok
}

// DayLabel returns the short weekday label (Mon..Sun) for a calendar date.
func DayLabel(date time.Time) string {
	return date.Weekday().String()[:3]
}

// SlotMinutes parses an "HH:MM" slot into minutes since midnight. The
// two-digit form is required so slot strings compare equal to formatted
// appointment times.
func SlotMinutes(slot string) (int, error) {
	if len(slot) != 5 {
		return 0, ErrInvalidSlot
	}
	t, err := time.Parse("15:04", slot)
	if err != nil {
		return 0, ErrInvalidSlot
	}
	return t.Hour()*60 + t.Minute(), nil
}

// NormalizeAvailability validates and canonicalizes a weekly template:
// slots are deduplicated and sorted chronologically, days with no slots are
// dropped. Duplicate day entries are preserved as given. Returns ErrInvalidDay
// or ErrInvalidSlot on malformed input.
func NormalizeAvailability(in []DaySchedule) ([]DaySchedule, error) {
	out := make([]DaySchedule, 0, len(in))
	for _, ds := range in {
		if !IsDayLabel(ds.Day) {
			return nil, fmt.Errorf("day %q: %w", ds.Day, ErrInvalidDay)
		}

		seen := make(map[int]string, len(ds.Slots))
		mins := make([]int, 0, len(ds.Slots))
		for _, s := range ds.Slots {
			m, err := SlotMinutes(s)
			if err != nil {
				return nil, fmt.Errorf("slot %q: %w", s, err)
			}
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = s
			mins = append(mins, m)
		}
		if len(mins) == 0 {
			continue
		}

		sort.Ints(mins)
		slots := make([]string, len(mins))
		for i, m := range mins {
			slots[i] = seen[m]
		}
		out = append(out, DaySchedule{Day: ds.Day, Slots: slots})
	}
	return out, nil
}

// OpenSlots resolves the slot times still offerable by a doctor on a calendar
// date, given the doctor's booked appointment times. Pure: no side effects,
// identical inputs yield identical output. A date outside the template yields
// an empty result, not an error.
func OpenSlots(d *Doctor, date time.Time, booked []time.Time) []string {
	slots := d.DaySlots(DayLabel(date))
	if len(slots) == 0 {
		return nil
	}

	y, m, day := date.Date()
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		b = b.In(date.Location())
		by, bm, bd := b.Date()
		if by == y && bm == m && bd == day {
			taken[b.Format("15:04")] = struct{}{}
		}
	}

	open := make([]string, 0, len(slots))
	for _, s := range slots {
		if _, ok := taken[s]; !ok {
			open = append(open, s)
		}
	}
	return open
}
