package schedule

import (
	"strings"

	"medibook/models"
)

// WorkingHoursIndex is a provider's weekly availability keyed by lowercase
// weekday name. Missing weekdays read as unavailable.
type WorkingHoursIndex map[string]models.WorkingHoursEntry

// BuildWorkingHoursIndex normalizes per-weekday entries into a lookup.
// Weekday names are case-normalized; when a weekday appears twice the first
// entry wins, preserving the "at most one entry per weekday" invariant.
func BuildWorkingHoursIndex(entries []models.WorkingHoursEntry) WorkingHoursIndex {
	idx := make(WorkingHoursIndex, len(entries))
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Weekday))
		if key == "" {
			continue
		}
		if _, exists := idx[key]; exists {
			continue
		}
		idx[key] = e
	}
	return idx
}

// Lookup resolves a weekday name (any case) to its entry.
func (idx WorkingHoursIndex) Lookup(weekday string) (models.WorkingHoursEntry, bool) {
	e, ok := idx[strings.ToLower(strings.TrimSpace(weekday))]
	return e, ok
}

// ForDate resolves a date's weekday to its entry.
func (idx WorkingHoursIndex) ForDate(date LocalDate) (models.WorkingHoursEntry, bool) {
	return idx.Lookup(date.Weekday().String())
}

// openOn reports whether the weekday is flagged available on the date.
func (idx WorkingHoursIndex) openOn(date LocalDate) bool {
	e, ok := idx.ForDate(date)
	return ok && e.IsAvailable
}
