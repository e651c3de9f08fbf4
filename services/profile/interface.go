package profile

import (
	"context"

	"medibook/models"
)

// ProfileService resolves the authenticated patient's stored profile. The
// booking flow uses it for two things only: detecting that the caller is a
// known patient and prefilling identity fields when booking for "Self".
type ProfileService interface {
	GetCurrentPatientProfile(ctx context.Context, patientID string) (*models.PatientProfile, error)
}
