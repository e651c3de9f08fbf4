package booking

import (
	"regexp"
	"strings"
	"time"

	"medibook/models"
	"medibook/services/schedule"
)

// ValidationErrors maps a field name to a human-readable message. Cleared
// field-by-field as the user edits and wholesale before each submission
// attempt.
type ValidationErrors map[string]string

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// The three accepted Nigerian phone shapes, applied after stripping
	// spaces and hyphens: "+234" plus ten digits, "234" plus ten digits,
	// or a leading zero plus ten digits.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\+234\d{10}$`),
		regexp.MustCompile(`^234\d{10}$`),
		regexp.MustCompile(`^0\d{10}$`),
	}
)

// ValidEmail reports whether s has the standard local@domain.tld shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

// ValidPhone reports whether s matches one of the accepted national formats.
func ValidPhone(s string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(s))
	for _, p := range phonePatterns {
		if p.MatchString(cleaned) {
			return true
		}
	}
	return false
}

// ValidFullName reports whether the trimmed name is at least 3 characters.
func ValidFullName(s string) bool {
	return len(strings.TrimSpace(s)) >= 3
}

// ValidDateOfBirth checks a strict "YYYY-MM-DD" date of birth: the
// components must form a real calendar date, the year must fall between
// 1900 and the current year, and the computed age must be at least 2 years
// at evaluation time.
func ValidDateOfBirth(s string, now time.Time) bool {
	dob, err := schedule.ParseLocalDate(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if dob.Year < 1900 || dob.Year > now.Year() {
		return false
	}

	age := now.Year() - dob.Year
	// Not yet had this year's birthday.
	if int(now.Month()) < int(dob.Month) ||
		(now.Month() == dob.Month && now.Day() < dob.Day) {
		age--
	}
	return age >= 2
}

// formFields is the declaration order in which identity-field errors are
// reported; tests rely on the first blocking error being deterministic.
var formFields = []string{"fullName", "email", "phone", "dateOfBirth"}

// ValidateBookingForm runs the aggregate pre-submission check. Selection
// errors (service, then date, then time) block before any identity field is
// looked at; once those pass, the subject contact's fields are validated in
// declaration order. The first offending field name is returned alongside
// the full error set ("" when the form is clean).
func ValidateBookingForm(draft models.BookingDraft, details models.PatientDetails, now time.Time) (ValidationErrors, string) {
	errs := make(ValidationErrors)

	if draft.Service.IsZero() {
		errs["service"] = "Please select a service"
		return errs, "service"
	}
	if strings.TrimSpace(draft.Date) == "" {
		errs["date"] = "Please select a date"
		return errs, "date"
	}
	if strings.TrimSpace(draft.Time) == "" {
		errs["time"] = "Please select a time"
		return errs, "time"
	}

	subject := details.Subject()
	if !ValidFullName(subject.FullName) {
		errs["fullName"] = "Full name must be at least 3 characters"
	}
	if !ValidEmail(subject.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if !ValidPhone(subject.Phone) {
		errs["phone"] = "Please enter a valid phone number"
	}
	if !ValidDateOfBirth(subject.DateOfBirth, now) {
		errs["dateOfBirth"] = "Please enter a valid date of birth"
	}

	for _, field := range formFields {
		if _, ok := errs[field]; ok {
			return errs, field
		}
	}
	return errs, ""
}
