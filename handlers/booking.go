package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medibook/middleware"
	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"
)

// BookingFlowHandler exposes the booking flow over HTTP.
type BookingFlowHandler struct {
	Flow booking.BookingFlowService
}

func NewBookingFlowHandler(flow booking.BookingFlowService) *BookingFlowHandler {
	return &BookingFlowHandler{Flow: flow}
}

// flowStatus maps flow error codes onto HTTP statuses. Anything unknown is
// a transient collaborator failure and surfaces as a 500 with a generic
// message, leaving the action re-triggerable.
func flowStatus(code string) int {
	switch code {
	case "sessionNotFound":
		return http.StatusNotFound
	case "slotConflict", "alreadyBooked", "submissionInFlight":
		return http.StatusConflict
	case "providerRequired", "invalidDate", "invalidSlot",
		"appointmentRequired", "emailRequired", "invalidAmount":
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondFlowError(c *gin.Context, err error) {
	var fe *booking.FlowError
	if errors.As(err, &fe) {
		c.JSON(flowStatus(fe.Code), gin.H{"error": fe.Message, "code": fe.Code})
		return
	}
	utils.GetLogger().Error("booking flow failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
}

// StartSession opens or resumes a booking session.
func (h *BookingFlowHandler) StartSession(c *gin.Context) {
	var input booking.StartSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Flow.StartSession(c.Request.Context(), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetSession returns the current session state for a reload.
func (h *BookingFlowHandler) GetSession(c *gin.Context) {
	session, err := h.Flow.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateDraft write-through merges selection changes into the stored draft.
func (h *BookingFlowHandler) UpdateDraft(c *gin.Context) {
	var partial models.BookingDraft
	if err := c.ShouldBindJSON(&partial); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Flow.UpdateDraft(c.Request.Context(), c.Param("sessionID"), partial)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Availability returns the bookable slots for a provider on a date.
func (h *BookingFlowHandler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter is required"})
		return
	}

	result, err := h.Flow.Availability(c.Request.Context(), c.Param("providerID"), date, time.Now())
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Continue advances the step machine.
func (h *BookingFlowHandler) Continue(c *gin.Context) {
	authenticated := middleware.PatientID(c) != ""
	session, err := h.Flow.Advance(c.Request.Context(), c.Param("sessionID"), authenticated)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Back walks the step machine backwards; "exited" tells the client the
// flow was left entirely.
func (h *BookingFlowHandler) Back(c *gin.Context) {
	authenticated := middleware.PatientID(c) != ""
	session, exited, err := h.Flow.GoBack(c.Request.Context(), c.Param("sessionID"), authenticated)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "exited": exited})
}

// Authenticated records a completed login for the session; a session
// sitting on the login step snaps back to patient-details.
func (h *BookingFlowHandler) Authenticated(c *gin.Context) {
	patientID := middleware.PatientID(c)
	if patientID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	session, err := h.Flow.AttachPatient(c.Request.Context(), c.Param("sessionID"), patientID)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// SubmitDetails validates the patient-details form and creates the
// appointment. Validation failure is a 422 carrying the field errors.
func (h *BookingFlowHandler) SubmitDetails(c *gin.Context) {
	var details models.PatientDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Flow.SubmitPatientDetails(c.Request.Context(), c.Param("sessionID"), details)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	if len(result.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// InitPayment hands off to the payment gateway and returns the
// authorization URL the browser should follow.
func (h *BookingFlowHandler) InitPayment(c *gin.Context) {
	var input booking.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	init, err := h.Flow.InitializePayment(c.Request.Context(), c.Param("sessionID"), input)
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, init)
}

// EditBooking applies a pre-commit change of service, date or time.
func (h *BookingFlowHandler) EditBooking(c *gin.Context) {
	var input booking.EditBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Flow.EditBooking(c.Request.Context(), c.Param("sessionID"), input, time.Now())
	if err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Cancel ends the session and deletes the draft.
func (h *BookingFlowHandler) Cancel(c *gin.Context) {
	if err := h.Flow.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		respondFlowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
