package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "medibook/database/repository/appointment"
	"medibook/models"
	"medibook/services/schedule"
	"medibook/utils"
)

// SubmitPatientDetails validates the form and, when clean, creates the
// appointment through the booking guard. Validation failures never reach
// the network and leave the session on patient-details. A duplicate-slot
// conflict from the repository is classified into ErrSlotTaken; the guard
// is released on every path so the user can re-trigger.
func (s *DefaultBookingFlowService) SubmitPatientDetails(ctx context.Context, sessionID string, details models.PatientDetails) (*SubmissionResult, error) {
	logger := utils.GetLogger()

	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	if errs, first := ValidateBookingForm(session.Draft, details, time.Now()); len(errs) > 0 {
		return &SubmissionResult{Session: &session, Errors: errs, FirstInvalid: first}, nil
	}

	guard := &s.guards.forSession(sessionID).Booking
	if !guard.TryAcquire() {
		return nil, ErrSubmissionInFlight
	}
	defer guard.Release()

	// One appointment per draft lifecycle: reloading the session after a
	// successful creation must not produce a second appointment.
	if session.Draft.Committed() {
		return nil, ErrAlreadyBooked
	}

	appt := buildAppointment(session, details)
	if err := s.AppointmentRepo.Create(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			logger.Warn("duplicate slot on appointment creation",
				zap.String("sessionID", sessionID),
				zap.String("date", appt.Date), zap.String("start", appt.StartTime))
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// Write-through the server-confirmed appointment, drop the stale
	// cached appointment list, and only then enter payment.
	session.Draft = MergeDraft(session.Draft, models.BookingDraft{Appointment: appt})
	if CanEnterPayment(session.Step) {
		session.Step = models.StepPayment
	}
	if err := s.Store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.invalidateAppointmentList(ctx, session.PatientID)

	logger.Info("appointment created",
		zap.String("sessionID", sessionID), zap.String("appointmentID", appt.ID))
	return &SubmissionResult{Session: &session, Appointment: appt}, nil
}

// InitializePayment hands off to the payment gateway behind its own guard,
// independent of the booking guard. It requires a previously-confirmed
// appointment, a positive computed amount and a non-empty email (profile
// email preferred); any missing precondition aborts without a network
// call.
func (s *DefaultBookingFlowService) InitializePayment(ctx context.Context, sessionID string, input PaymentInput) (*models.PaymentInit, error) {
	logger := utils.GetLogger()

	session, found := s.Store.Load(ctx, sessionID)
	if !found {
		return nil, ErrSessionNotFound
	}

	guard := &s.guards.forSession(sessionID).Payment
	if !guard.TryAcquire() {
		return nil, ErrSubmissionInFlight
	}
	defer guard.Release()

	if !session.Draft.Committed() {
		return nil, ErrAppointmentRequired
	}

	amount := PaymentAmount(session.Draft.Service.Price(), input.Coupon)
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	email := s.paymentEmail(ctx, session, input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	init, err := s.Gateway.InitializePayment(ctx, models.PaymentInitRequest{
		AppointmentID: session.Draft.Appointment.ID,
		Amount:        amount,
		Email:         email,
		Description:   session.Draft.Service.DisplayName(),
	})
	if err != nil {
		logger.Error("payment initialization failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("failed to initialize payment: %w", err)
	}

	logger.Info("payment initialized",
		zap.String("sessionID", sessionID),
		zap.String("appointmentID", session.Draft.Appointment.ID),
		zap.Float64("amount", amount))
	return init, nil
}

// paymentEmail prefers the authenticated profile's email over the
// form-entered one.
func (s *DefaultBookingFlowService) paymentEmail(ctx context.Context, session models.BookingSession, formEmail string) string {
	if session.PatientID != "" && s.ProfileSvc != nil {
		if prof, err := s.ProfileSvc.GetCurrentPatientProfile(ctx, session.PatientID); err == nil && prof.Email != "" {
			return prof.Email
		}
	}
	return formEmail
}

// invalidateAppointmentList drops the cached appointment list so the next
// read refetches it with the new appointment included.
func (s *DefaultBookingFlowService) invalidateAppointmentList(ctx context.Context, patientID string) {
	if patientID == "" || s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.AppointmentListCacheKey(patientID)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate appointment list cache",
			zap.String("patientID", patientID), zap.Error(err))
	}
}

// buildAppointment assembles the appointment record from the draft and the
// submitted details. The end time is the slot start plus the service
// duration.
func buildAppointment(session models.BookingSession, details models.PatientDetails) *models.Appointment {
	endTime := ""
	if start, err := schedule.ParseTimeOfDay(session.Draft.Time); err == nil {
		endTime = (start + 30).Label()
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		ProviderID: session.Draft.Provider.ID,
		PatientID:  session.PatientID,
		Service:    session.Draft.Service.DisplayName(),
		Date:       session.Draft.Date,
		StartTime:  session.Draft.Time,
		EndTime:    endTime,
		Status:     "pending",
		Notes:      details.Comments,
		FormData:   details,
		CreatedAt:  time.Now(),
	}
	if session.Draft.Service.IsDetailed() {
		appt.ServiceID = session.Draft.Service.Detail.ID
	}
	return appt
}
