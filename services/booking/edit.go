package booking

import (
	"context"
	"fmt"
	"time"

	"medibook/models"
	"medibook/services/schedule"
)

// EditBooking is the bounded pre-commit edit sub-flow: change the draft's
// service, date and/or time before an appointment exists. The new selection
// is checked against the provider's working hours so a stale client cannot
// write an unbookable slot into the draft. Once the draft is committed the
// edit is refused.
func (s *DefaultBookingFlowService) EditBooking(ctx context.Context, sessionID string, input EditBookingInput, now time.Time) (*models.BookingSession, error) {
	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	if session.Draft.Committed() {
		return nil, ErrAlreadyBooked
	}

	provider, err := s.ProviderRepo.GetByID(session.Draft.Provider.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider %s: %w", session.Draft.Provider.ID, err)
	}

	partial := models.BookingDraft{}

	if input.Service != "" {
		partial.Service = resolveService(models.NamedService(input.Service), *provider)
	}

	date := session.Draft.Date
	if input.Date != "" {
		date = input.Date
		partial.Date = input.Date
	}

	if input.Time != "" {
		day, err := schedule.ParseLocalDate(date)
		if err != nil {
			return nil, newFlowError("invalidDate", "date must be a valid YYYY-MM-DD string")
		}
		idx := schedule.BuildWorkingHoursIndex(provider.WorkingHours)
		slots := schedule.FilterPastForToday(day, schedule.SlotsForDate(day, idx), now)
		if !containsSlot(slots, input.Time) {
			return nil, newFlowError("invalidSlot", "the selected time is not available on that date")
		}
		partial.Time = input.Time
	} else if input.Date != "" {
		// A date change invalidates the previously chosen time; the user
		// must pick again from the new date's slots.
		session.Draft.Time = ""
	}

	session.Draft = MergeDraft(session.Draft, partial)
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

func containsSlot(slots []string, label string) bool {
	for _, s := range slots {
		if s == label {
			return true
		}
	}
	return false
}
