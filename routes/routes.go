package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medibook/handlers"
	"medibook/middleware"
	"medibook/utils"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Booking      *handlers.BookingFlowHandler
	Providers    *handlers.ProviderHandler
	Appointments *handlers.AppointmentsHandler
	Profile      *handlers.ProfileHandler
	Auth         *handlers.AuthHandler
}

// RegisterHealthRoute exposes the health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, h)
	RegisterProviderRoutes(r, h)
	RegisterBookingRoutes(r, h)
	RegisterPatientRoutes(r, h)
}

// RegisterAuthRoutes registers the OAuth exchange endpoint.
func RegisterAuthRoutes(r *gin.Engine, h *Handlers) {
	r.POST("/api/auth/oauth", h.Auth.OAuthLogin)
}

// RegisterProviderRoutes registers catalog endpoints.
func RegisterProviderRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/providers")
	{
		api.GET("", h.Providers.List)
		api.GET("/:providerID", h.Providers.Get)
		api.GET("/:providerID/availability", h.Booking.Availability)
	}
}

// RegisterPatientRoutes registers authenticated patient endpoints.
func RegisterPatientRoutes(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/patients")
	api.Use(middleware.RequireAuth())
	{
		api.GET("/me", h.Profile.Me)
		api.GET("/me/appointments", h.Appointments.List)
	}
}
