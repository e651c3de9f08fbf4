package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medibook/models"
)

func TestNextStep(t *testing.T) {
	cases := []struct {
		name          string
		current       models.Step
		authenticated bool
		want          models.Step
	}{
		{"appointment always advances", models.StepAppointment, false, models.StepPatientDetails},
		{"appointment advances when authenticated too", models.StepAppointment, true, models.StepPatientDetails},
		{"unauthenticated details go to login", models.StepPatientDetails, false, models.StepLogin},
		{"authenticated details stay put", models.StepPatientDetails, true, models.StepPatientDetails},
		{"login continues as guest", models.StepLogin, false, models.StepPatientDetails},
		{"payment has no continue", models.StepPayment, true, models.StepPayment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NextStep(tc.current, tc.authenticated))
		})
	}
}

func TestPrevStep(t *testing.T) {
	cases := []struct {
		name          string
		current       models.Step
		authenticated bool
		want          models.Step
		ok            bool
	}{
		{"details back to appointment", models.StepPatientDetails, false, models.StepAppointment, true},
		{"login back to details", models.StepLogin, false, models.StepPatientDetails, true},
		{"payment back to login unauthenticated", models.StepPayment, false, models.StepLogin, true},
		{"payment back to details authenticated", models.StepPayment, true, models.StepPatientDetails, true},
		{"appointment back exits the flow", models.StepAppointment, false, models.StepAppointment, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := PrevStep(tc.current, tc.authenticated)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStepAfterAuth(t *testing.T) {
	assert.Equal(t, models.StepPatientDetails, StepAfterAuth(models.StepLogin))
	assert.Equal(t, models.StepAppointment, StepAfterAuth(models.StepAppointment))
	assert.Equal(t, models.StepPatientDetails, StepAfterAuth(models.StepPatientDetails))
	assert.Equal(t, models.StepPayment, StepAfterAuth(models.StepPayment))
}

func TestCanEnterPayment(t *testing.T) {
	assert.True(t, CanEnterPayment(models.StepPatientDetails))
	assert.False(t, CanEnterPayment(models.StepAppointment))
	assert.False(t, CanEnterPayment(models.StepLogin))
	assert.False(t, CanEnterPayment(models.StepPayment))
}
