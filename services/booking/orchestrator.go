package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"
)

// StartSession opens (or resumes) a booking session. The provider snapshot
// is denormalized into the draft so catalog edits mid-flow cannot corrupt
// the booking; a bare service name in the navigation payload is upgraded to
// the full catalog record when it resolves.
func (s *DefaultBookingFlowService) StartSession(ctx context.Context, input StartSessionInput) (*models.BookingSession, error) {
	logger := utils.GetLogger()

	if input.ProviderID == "" {
		return nil, newFlowError("providerRequired", "a provider is required to start booking")
	}
	provider, err := s.ProviderRepo.GetByID(input.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider %s: %w", input.ProviderID, err)
	}

	nav := models.BookingDraft{
		Provider: provider.Summary(),
		Service:  resolveService(input.Service, *provider),
		Date:     input.Date,
		Time:     input.Time,
	}

	// Resume path: reconcile the stored draft with the navigation state.
	// Navigation wins only when the stored draft belongs to a different
	// provider; otherwise the store's richer fields survive the reload.
	if input.SessionID != "" {
		if session, found := s.Store.Load(ctx, input.SessionID); found {
			session.Draft = ReconcileDraft(session.Draft, nav)
			if err := s.Store.Save(ctx, session); err != nil {
				return nil, err
			}
			logger.Debug("resumed booking session", zap.String("sessionID", session.SessionID))
			return &session, nil
		}
	}

	session := models.BookingSession{
		SessionID: uuid.New().String(),
		Step:      models.StepAppointment,
		Draft:     nav,
		CreatedAt: time.Now(),
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	logger.Info("initiated booking session",
		zap.String("sessionID", session.SessionID), zap.String("providerID", provider.ID))
	return &session, nil
}

// GetSession returns the current session state.
func (s *DefaultBookingFlowService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// UpdateDraft write-through merges a partial draft into the stored one on
// the same call, so a reload at any point resumes exactly here.
func (s *DefaultBookingFlowService) UpdateDraft(ctx context.Context, sessionID string, partial models.BookingDraft) (*models.BookingSession, error) {
	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	// A bare service name gains its catalog record when it resolves
	// against the draft's provider.
	if !partial.Service.IsZero() && !partial.Service.IsDetailed() && session.Draft.Provider.ID != "" {
		if provider, err := s.ProviderRepo.GetByID(session.Draft.Provider.ID); err == nil {
			partial.Service = resolveService(partial.Service, *provider)
		}
	}

	session.Draft = MergeDraft(session.Draft, partial)
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Availability computes the bookable slot labels for a provider on a date,
// filtering out already-passed times when the date is today. The result is
// recomputed on every call; "now" keeps moving, so nothing here is cached.
func (s *DefaultBookingFlowService) Availability(ctx context.Context, providerID, date string, now time.Time) (*AvailabilityResult, error) {
	provider, err := s.ProviderRepo.GetByID(providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load provider %s: %w", providerID, err)
	}

	day, err := schedule.ParseLocalDate(date)
	if err != nil {
		return nil, newFlowError("invalidDate", "date must be a valid YYYY-MM-DD string")
	}

	idx := schedule.BuildWorkingHoursIndex(provider.WorkingHours)
	slots := schedule.FilterPastForToday(day, schedule.SlotsForDate(day, idx), now)

	result := &AvailabilityResult{Date: day.String(), Slots: slots}
	if len(slots) == 0 {
		if next, ok := schedule.NextAvailableDate(day, idx, schedule.DefaultHorizonDays); ok {
			result.NextAvailable = next.String()
		}
	}
	return result, nil
}

// Advance applies a Continue action. The authenticated path out of
// patient-details goes through SubmitPatientDetails instead, because
// entering payment is gated on a successful appointment creation.
func (s *DefaultBookingFlowService) Advance(ctx context.Context, sessionID string, authenticated bool) (*models.BookingSession, error) {
	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	next := NextStep(session.Step, authenticated)
	if next == session.Step {
		return &session, nil
	}
	session.Step = next
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GoBack applies a Back action. exits is true when back leaves the flow
// entirely (from the first step); the caller decides where that lands.
func (s *DefaultBookingFlowService) GoBack(ctx context.Context, sessionID string, authenticated bool) (*models.BookingSession, bool, error) {
	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, false, ErrSessionNotFound
	}
	prev, ok := PrevStep(session.Step, authenticated)
	if !ok {
		return &session, true, nil
	}
	session.Step = prev
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, false, err
	}
	return &session, false, nil
}

// AttachPatient records that authentication state became true for this
// session (completed OAuth or fresh login). A session waiting on the login
// step snaps back to patient-details the instant this lands.
func (s *DefaultBookingFlowService) AttachPatient(ctx context.Context, sessionID, patientID string) (*models.BookingSession, error) {
	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}
	session.PatientID = patientID
	session.Step = StepAfterAuth(session.Step)
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	return &session, nil
}

// CancelSession ends the draft lifecycle and forgets its guards.
func (s *DefaultBookingFlowService) CancelSession(ctx context.Context, sessionID string) error {
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.guards.drop(sessionID)
	return nil
}

// resolveService upgrades a bare service name to the provider's catalog
// record when one matches; a Detailed value passes through untouched.
func resolveService(svc models.Service, provider models.Provider) models.Service {
	if svc.IsZero() || svc.IsDetailed() {
		return svc
	}
	if detail, ok := provider.FindService(svc.Name); ok {
		return models.DetailedService(detail)
	}
	return svc
}
