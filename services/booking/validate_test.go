package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medibook/models"
)

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("ada@example.com"))
	assert.True(t, ValidEmail("  first.last@sub.domain.ng  "))
	assert.False(t, ValidEmail("ada@example"))
	assert.False(t, ValidEmail("ada example.com"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+2348012345678"))
	assert.True(t, ValidPhone("2348012345678"))
	assert.True(t, ValidPhone("08012345678"))
	// Spaces and hyphens are stripped before matching.
	assert.True(t, ValidPhone("+234 801 234-5678"))
	assert.True(t, ValidPhone("0801-234-5678"))

	// Too few digits after the prefix.
	assert.False(t, ValidPhone("234801234567"))
	assert.False(t, ValidPhone("123"))
	assert.False(t, ValidPhone("+1 555 0100"))
	assert.False(t, ValidPhone(""))
}

func TestValidDateOfBirth(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	assert.True(t, ValidDateOfBirth("1990-01-15", now))
	// Exactly two years old today.
	assert.True(t, ValidDateOfBirth("2023-06-15", now))
	// One year and eleven months: under the minimum age.
	assert.False(t, ValidDateOfBirth("2023-07-15", now))
	// Not a real calendar date.
	assert.False(t, ValidDateOfBirth("2023-02-30", now))
	// Out of the accepted year range.
	assert.False(t, ValidDateOfBirth("1899-12-31", now))
	assert.False(t, ValidDateOfBirth("2026-01-01", now))
	// Wrong shape entirely.
	assert.False(t, ValidDateOfBirth("15/01/1990", now))
	assert.False(t, ValidDateOfBirth("", now))
}

func TestValidFullName(t *testing.T) {
	assert.True(t, ValidFullName("Ada"))
	assert.True(t, ValidFullName("  Ada Obi  "))
	assert.False(t, ValidFullName("Ab"))
	assert.False(t, ValidFullName("   "))
}

func validDraft() models.BookingDraft {
	return models.BookingDraft{
		Provider: models.ProviderSummary{ID: "prov-1", Name: "City Clinic"},
		Service:  models.NamedService("Consultation"),
		Date:     "2025-06-16",
		Time:     "9:00 AM",
	}
}

func validDetails() models.PatientDetails {
	return models.PatientDetails{
		For: models.BookingForSelf,
		Booker: models.Contact{
			FullName:    "Ada Obi",
			Email:       "ada@example.com",
			Phone:       "+2348012345678",
			DateOfBirth: "1990-01-15",
		},
	}
}

func TestValidateBookingFormSelectionBlocksFirst(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	draft := validDraft()
	draft.Service = models.Service{}
	draft.Date = ""
	errs, first := ValidateBookingForm(draft, models.PatientDetails{}, now)
	assert.Equal(t, "service", first)
	assert.Len(t, errs, 1)

	draft = validDraft()
	draft.Date = ""
	_, first = ValidateBookingForm(draft, models.PatientDetails{}, now)
	assert.Equal(t, "date", first)

	draft = validDraft()
	draft.Time = ""
	_, first = ValidateBookingForm(draft, models.PatientDetails{}, now)
	assert.Equal(t, "time", first)
}

func TestValidateBookingFormIdentityOrder(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	// All four identity fields invalid: the first reported field follows
	// declaration order, not map iteration order.
	details := models.PatientDetails{For: models.BookingForSelf}
	errs, first := ValidateBookingForm(validDraft(), details, now)
	assert.Equal(t, "fullName", first)
	assert.Len(t, errs, 4)

	details = validDetails()
	details.Booker.Email = "nope"
	details.Booker.Phone = "123"
	_, first = ValidateBookingForm(validDraft(), details, now)
	assert.Equal(t, "email", first)
}

func TestValidateBookingFormSubjectFollowsFor(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	// Booking for someone else validates the patient contact, so a clean
	// booker record alone does not pass.
	details := validDetails()
	details.For = models.BookingForOther
	errs, _ := ValidateBookingForm(validDraft(), details, now)
	assert.NotEmpty(t, errs)

	details.Patient = models.Contact{
		FullName:    "Chidi Obi",
		Email:       "chidi@example.com",
		Phone:       "08012345678",
		DateOfBirth: "2015-03-02",
	}
	errs, first := ValidateBookingForm(validDraft(), details, now)
	assert.Empty(t, errs)
	assert.Equal(t, "", first)
}

func TestValidateBookingFormClean(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	errs, first := ValidateBookingForm(validDraft(), validDetails(), now)
	assert.Empty(t, errs)
	assert.Equal(t, "", first)
}
