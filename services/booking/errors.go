package booking

import "fmt"

// FlowError is a user-facing booking-flow error with a stable code the
// handlers can map onto HTTP statuses.
type FlowError struct {
	Code    string
	Message string
}

func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newFlowError(code, msg string) *FlowError {
	return &FlowError{Code: code, Message: msg}
}

var (
	// ErrSessionNotFound: the session id is unknown or the draft expired.
	ErrSessionNotFound = newFlowError("sessionNotFound", "booking session not found or expired")

	// ErrSlotTaken: structured duplicate-slot conflict from the
	// appointment collaborator, recoverable by picking another slot.
	ErrSlotTaken = newFlowError("slotConflict", "This time slot is already booked")

	// ErrSubmissionInFlight: a second attempt arrived while the first was
	// still pending; it is dropped, not queued.
	ErrSubmissionInFlight = newFlowError("submissionInFlight", "a submission is already in progress")

	// ErrAlreadyBooked: the draft already carries a server appointment id;
	// one appointment per draft lifecycle.
	ErrAlreadyBooked = newFlowError("alreadyBooked", "an appointment has already been created for this booking")

	// ErrAppointmentRequired: payment was requested before a confirmed
	// appointment exists.
	ErrAppointmentRequired = newFlowError("appointmentRequired", "no confirmed appointment to pay for")

	// ErrEmailRequired: neither the profile nor the form supplied an email
	// for the payment receipt.
	ErrEmailRequired = newFlowError("emailRequired", "an email address is required for payment")

	// ErrInvalidAmount: the computed payment amount was not positive.
	ErrInvalidAmount = newFlowError("invalidAmount", "payment amount must be greater than zero")
)
