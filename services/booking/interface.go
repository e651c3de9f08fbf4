package booking

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	"medibook/models"
	"medibook/services/profile"
)

// StartSessionInput carries the navigation payload the flow is entered
// with, plus an optional session id to resume after a reload.
type StartSessionInput struct {
	SessionID  string         `json:"sessionId,omitempty"`
	ProviderID string         `json:"providerId"`
	Service    models.Service `json:"service,omitzero"`
	Date       string         `json:"date,omitempty"`
	Time       string         `json:"time,omitempty"`
}

// AvailabilityResult is the bookable-slot answer for one date. When the
// date yields nothing, NextAvailable carries the first later date whose
// weekday is flagged open (empty if none within the horizon).
type AvailabilityResult struct {
	Date          string   `json:"date"`
	Slots         []string `json:"slots"`
	NextAvailable string   `json:"nextAvailable,omitempty"`
}

// SubmissionResult is the outcome of a patient-details submission. When
// Errors is non-empty the submission never reached the network and the
// session remains on patient-details; FirstInvalid names the field to
// focus.
type SubmissionResult struct {
	Session      *models.BookingSession `json:"session"`
	Appointment  *models.Appointment    `json:"appointment,omitempty"`
	Errors       ValidationErrors       `json:"errors,omitempty"`
	FirstInvalid string                 `json:"firstInvalid,omitempty"`
}

// PaymentInput is the client's contribution to payment initialization; the
// profile email, when available, takes precedence over Email.
type PaymentInput struct {
	Coupon string `json:"coupon,omitempty"`
	Email  string `json:"email,omitempty"`
}

// EditBookingInput is the bounded pre-commit edit: change service, date
// and/or time. Zero-value fields keep their current draft value.
type EditBookingInput struct {
	Service string `json:"service,omitempty"` // catalog service id or name
	Date    string `json:"date,omitempty"`
	Time    string `json:"time,omitempty"`
}

// BookingFlowService drives the multi-step appointment flow.
type BookingFlowService interface {
	StartSession(ctx context.Context, input StartSessionInput) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, error)
	UpdateDraft(ctx context.Context, sessionID string, partial models.BookingDraft) (*models.BookingSession, error)
	Availability(ctx context.Context, providerID, date string, now time.Time) (*AvailabilityResult, error)
	Advance(ctx context.Context, sessionID string, authenticated bool) (*models.BookingSession, error)
	GoBack(ctx context.Context, sessionID string, authenticated bool) (*models.BookingSession, bool, error)
	AttachPatient(ctx context.Context, sessionID, patientID string) (*models.BookingSession, error)
	SubmitPatientDetails(ctx context.Context, sessionID string, details models.PatientDetails) (*SubmissionResult, error)
	InitializePayment(ctx context.Context, sessionID string, input PaymentInput) (*models.PaymentInit, error)
	EditBooking(ctx context.Context, sessionID string, input EditBookingInput, now time.Time) (*models.BookingSession, error)
	CancelSession(ctx context.Context, sessionID string) error
}

// DefaultBookingFlowService implements BookingFlowService.
type DefaultBookingFlowService struct {
	ProviderRepo    providerRepo.ProviderRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	ProfileSvc      profile.ProfileService
	Gateway         PaymentGateway
	Store           *DraftStore
	Cache           *redis.Client // appointment-list cache, invalidated on booking success
	guards          *guardRegistry
}

// NewBookingFlowService wires the orchestrator with its collaborators.
func NewBookingFlowService(
	providers providerRepo.ProviderRepository,
	appointments appointmentRepo.AppointmentRepository,
	profiles profile.ProfileService,
	gateway PaymentGateway,
	store *DraftStore,
	cache *redis.Client,
) *DefaultBookingFlowService {
	return &DefaultBookingFlowService{
		ProviderRepo:    providers,
		AppointmentRepo: appointments,
		ProfileSvc:      profiles,
		Gateway:         gateway,
		Store:           store,
		Cache:           cache,
		guards:          newGuardRegistry(),
	}
}
