package appointmentRepo

import (
	"context"
	"errors"

	"medibook/models"
)

// ErrDuplicateSlot is the structured duplicate-key signal raised when an
// appointment insert collides with the unique (provider, date, start_time)
// index. Callers must be able to distinguish it from generic failure.
var ErrDuplicateSlot = errors.New("appointment slot already taken")

// AppointmentRepository persists confirmed appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, id, status string) error
	EnsureIndexes(ctx context.Context) error
}
