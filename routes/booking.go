package routes

import (
	"github.com/gin-gonic/gin"

	"medibook/middleware"
)

// RegisterBookingRoutes registers all endpoints for the booking flow.
// Every endpoint runs with optional authentication: the flow works for
// guests, and a valid token only changes which steps it walks through.
func RegisterBookingRoutes(r *gin.Engine, h *Handlers) {
	booking := r.Group("/api/booking")
	booking.Use(middleware.OptionalAuth())
	{
		booking.POST("/session", h.Booking.StartSession)
		booking.GET("/session/:sessionID", h.Booking.GetSession)
		booking.PUT("/session/:sessionID/draft", h.Booking.UpdateDraft)
		booking.POST("/session/:sessionID/continue", h.Booking.Continue)
		booking.POST("/session/:sessionID/back", h.Booking.Back)
		booking.POST("/session/:sessionID/authenticated", h.Booking.Authenticated)
		booking.POST("/session/:sessionID/details", h.Booking.SubmitDetails)
		booking.POST("/session/:sessionID/payment", h.Booking.InitPayment)
		booking.PUT("/session/:sessionID/edit", h.Booking.EditBooking)
		booking.DELETE("/session/:sessionID", h.Booking.Cancel)
	}
}
