// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/database"
	appointmentRepo "medibook/database/repository/appointment"
	providerRepo "medibook/database/repository/provider"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/auth"
	"medibook/services/booking"
	"medibook/services/profile"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	provRepo := providerRepo.NewMongoProviderRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := apptRepo.EnsureIndexes(ctx); err != nil {
			cancel()
			logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
		}
		cancel()
	}

	// services.
	profileService := profile.NewMongoProfileService()
	gateway := booking.NewStripeCheckoutGateway(logger)
	draftStore := booking.NewDraftStore(utils.GetSessionCacheClient(), utils.BookingSessionTTL)
	flowService := booking.NewBookingFlowService(
		provRepo,
		apptRepo,
		profileService,
		gateway,
		draftStore,
		utils.GetCacheClient(),
	)
	verifier := &auth.GoogleVerifier{Audience: config.AppConfig.OAuthClientID}

	handlerBundle := &routes.Handlers{
		Booking:      handlers.NewBookingFlowHandler(flowService),
		Providers:    handlers.NewProviderHandler(provRepo),
		Appointments: handlers.NewAppointmentsHandler(apptRepo, utils.GetCacheClient()),
		Profile:      handlers.NewProfileHandler(profileService),
		Auth:         handlers.NewAuthHandler(verifier),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
