package booking

import "medibook/models"

// The step machine for the four-stage flow. Transitions are pure functions
// of the current step plus authentication state; the one guarded transition
// (patient-details to payment) is applied by the orchestrator only after the
// appointment-creation guard has succeeded, never here.

// NextStep returns the step a Continue action moves to.
//
//	appointment     -> patient-details, unconditionally
//	patient-details -> login, only while unauthenticated (the authenticated
//	                   path enters payment through appointment creation)
//	login           -> patient-details ("continue as guest")
//
// Continue has no meaning on payment; the step is returned unchanged.
func NextStep(current models.Step, authenticated bool) models.Step {
	switch current {
	case models.StepAppointment:
		return models.StepPatientDetails
	case models.StepPatientDetails:
		if !authenticated {
			return models.StepLogin
		}
		return models.StepPatientDetails
	case models.StepLogin:
		return models.StepPatientDetails
	}
	return current
}

// PrevStep returns the step a Back action moves to. The second return is
// false when back exits the flow entirely (only from the first step).
func PrevStep(current models.Step, authenticated bool) (models.Step, bool) {
	switch current {
	case models.StepPatientDetails:
		return models.StepAppointment, true
	case models.StepLogin:
		return models.StepPatientDetails, true
	case models.StepPayment:
		if authenticated {
			return models.StepPatientDetails, true
		}
		return models.StepLogin, true
	}
	return current, false
}

// StepAfterAuth resolves the automatic transition fired the moment
// authentication state becomes true: a session waiting on the login step
// snaps back to patient-details. Every other step is untouched.
func StepAfterAuth(current models.Step) models.Step {
	if current == models.StepLogin {
		return models.StepPatientDetails
	}
	return current
}

// CanEnterPayment reports whether the guarded entry into the payment step
// is allowed from the current step.
func CanEnterPayment(current models.Step) bool {
	return current == models.StepPatientDetails
}
