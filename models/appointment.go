package models

import "time"

// Appointment is a confirmed appointment record.
type Appointment struct {
	ID         string         `bson:"id" json:"id"`
	ProviderID string         `bson:"provider_id" json:"provider_id"`
	PatientID  string         `bson:"patient_id,omitempty" json:"patient_id,omitempty"`
	ServiceID  string         `bson:"service_id,omitempty" json:"service_id,omitempty"`
	Service    string         `bson:"service" json:"service"`
	Date       string         `bson:"date" json:"date"`             // "YYYY-MM-DD"
	StartTime  string         `bson:"start_time" json:"start_time"` // slot label, e.g. "9:00 AM"
	EndTime    string         `bson:"end_time" json:"end_time"`
	Status     string         `bson:"status" json:"status"` // "pending", "confirmed", "paid"
	Notes      string         `bson:"notes,omitempty" json:"notes,omitempty"`
	FormData   PatientDetails `bson:"form_data" json:"form_data,omitzero"`
	CreatedAt  time.Time      `bson:"created_at" json:"created_at"`
}

// BookingFor distinguishes booking for oneself from booking for someone else.
type BookingFor string

const (
	BookingForSelf  BookingFor = "Self"
	BookingForOther BookingFor = "Other"
)

// Contact holds the identity fields collected for one person in the flow.
type Contact struct {
	FullName    string `bson:"fullName,omitempty" json:"fullName,omitempty"`
	Email       string `bson:"email,omitempty" json:"email,omitempty"`
	Phone       string `bson:"phone,omitempty" json:"phone,omitempty"`
	DateOfBirth string `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"` // "YYYY-MM-DD"
	Gender      string `bson:"gender,omitempty" json:"gender,omitempty"`
}

// PatientDetails is the patient-details step payload. Booker and Patient are
// parallel contact records; Patient is consulted only when For is "Other".
type PatientDetails struct {
	For            BookingFor `bson:"for,omitempty" json:"for,omitempty"`
	Booker         Contact    `bson:"booker" json:"booker,omitzero"`
	Patient        Contact    `bson:"patient" json:"patient,omitzero"`
	VisitedBefore  bool       `bson:"visitedBefore,omitempty" json:"visitedBefore,omitempty"`
	Identification string     `bson:"identification,omitempty" json:"identification,omitempty"`
	Comments       string     `bson:"comments,omitempty" json:"comments,omitempty"`
}

// Subject returns the contact record the appointment is actually for.
func (d PatientDetails) Subject() Contact {
	if d.For == BookingForOther {
		return d.Patient
	}
	return d.Booker
}
