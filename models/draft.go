package models

import "time"

// BookingDraft is the recoverable snapshot of in-progress booking
// selections. It is the write-through persisted layer: every mutation of
// provider/service/date/time lands here on the same call, so a reload
// resumes exactly where the user left off. Once Appointment is set, the
// draft is committed and no second appointment may be created for it.
type BookingDraft struct {
	Provider    ProviderSummary `json:"provider,omitzero"`
	Service     Service         `json:"service,omitzero"`
	Date        string          `json:"date,omitempty"` // "YYYY-MM-DD"
	Time        string          `json:"time,omitempty"` // slot label
	Appointment *Appointment    `json:"appointment,omitempty"`
}

// Committed reports whether a server appointment has been created for
// this draft lifecycle.
func (d BookingDraft) Committed() bool {
	return d.Appointment != nil && d.Appointment.ID != ""
}

// Step is one stage of the booking flow.
type Step string

const (
	StepAppointment    Step = "appointment"
	StepPatientDetails Step = "patient-details"
	StepLogin          Step = "login"
	StepPayment        Step = "payment"
)

// Valid reports whether s is one of the four flow steps.
func (s Step) Valid() bool {
	switch s {
	case StepAppointment, StepPatientDetails, StepLogin, StepPayment:
		return true
	}
	return false
}

// BookingSession is the durable per-session flow state kept in the session
// store: the step cursor plus the draft. PatientID is set once the session
// is associated with an authenticated patient.
type BookingSession struct {
	SessionID string       `json:"sessionId"`
	Step      Step         `json:"step"`
	Draft     BookingDraft `json:"draft"`
	PatientID string       `json:"patientId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
