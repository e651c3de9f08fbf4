package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeOfDay is a count of minutes since local midnight, in [0, 1440).
// All wall-clock strings are parsed into this form before any arithmetic;
// labels shown to patients are formatted back out of it.
type TimeOfDay int

const minutesPerDay = 1440

// ParseTimeOfDay parses a wall-clock string into minutes since midnight.
// Accepted shapes are 12-hour with a meridiem marker ("9:00 AM", "5:30pm",
// marker case-insensitive) and 24-hour with none ("17:30", "09:00").
// Anything else is an error; callers treat a parse failure as "no slots",
// never as a garbage label.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}

	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(s, suffix) {
			meridiem = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	hhmm := strings.SplitN(s, ":", 2)
	if len(hhmm) != 2 {
		return 0, fmt.Errorf("malformed time %q", raw)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hhmm[0]))
	if err != nil {
		return 0, fmt.Errorf("malformed hour in %q", raw)
	}
	minute, err := strconv.Atoi(strings.TrimSpace(hhmm[1]))
	if err != nil {
		return 0, fmt.Errorf("malformed minute in %q", raw)
	}
	if minute < 0 || minute > 59 {
		return 0, fmt.Errorf("minute out of range in %q", raw)
	}

	switch meridiem {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("hour out of range in %q", raw)
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, fmt.Errorf("hour out of range in %q", raw)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, fmt.Errorf("hour out of range in %q", raw)
		}
	}

	return TimeOfDay(hour*60 + minute), nil
}

// Label formats the time as a 12-hour "H:MM AM/PM" string.
func (t TimeOfDay) Label() string {
	m := int(t) % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	hour := m / 60
	minute := m % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}
