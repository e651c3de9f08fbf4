package schedule

import "time"

// Slot cadence: a new slot starts every hour, each appointment occupies 30
// minutes, leaving a half-hour buffer before the next start. A slot is only
// emitted while its start plus the service duration still fits inside the
// working-hours window.
const (
	slotStepMinutes        = 60
	serviceDurationMinutes = 30

	// DefaultHorizonDays bounds the forward scan for the next open day.
	DefaultHorizonDays = 30
)

// SlotsForDate derives the ordered bookable time labels for a date from the
// provider's weekly availability. Days that are absent from the index, not
// flagged available, or carry malformed or inverted times all yield an empty
// list; a bad schedule must never surface garbage labels. The result is
// recomputed on every call.
func SlotsForDate(date LocalDate, idx WorkingHoursIndex) []string {
	entry, ok := idx.ForDate(date)
	if !ok || !entry.IsAvailable {
		return nil
	}

	start, err := ParseTimeOfDay(entry.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseTimeOfDay(entry.EndTime)
	if err != nil {
		return nil
	}
	if start >= end {
		return nil
	}

	var slots []string
	for t := start; int(t)+serviceDurationMinutes <= int(end); t += slotStepMinutes {
		slots = append(slots, t.Label())
	}
	return slots
}

// FilterPastForToday drops slots that have already passed when the target
// date is the current date; any other date passes through untouched. Callers
// re-invoke this on every read since "now" keeps advancing, so the result is
// deliberately never cached.
func FilterPastForToday(date LocalDate, slots []string, now time.Time) []string {
	if !date.Equal(DateOf(now)) {
		return slots
	}

	nowMinutes := TimeOfDay(now.Hour()*60 + now.Minute())
	var upcoming []string
	for _, label := range slots {
		t, err := ParseTimeOfDay(label)
		if err != nil {
			continue
		}
		if t > nowMinutes {
			upcoming = append(upcoming, label)
		}
	}
	return upcoming
}

// NextAvailableDate scans forward one calendar day at a time, starting the
// day after from, and returns the first date whose weekday is flagged
// available. The scan gives up after horizonDays (DefaultHorizonDays when
// zero or negative). A day counts as available purely by flag; whether its
// times actually produce slots is checked at selection time.
func NextAvailableDate(from LocalDate, idx WorkingHoursIndex, horizonDays int) (LocalDate, bool) {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	for i := 1; i <= horizonDays; i++ {
		candidate := from.AddDays(i)
		if idx.openOn(candidate) {
			return candidate, true
		}
	}
	return LocalDate{}, false
}
