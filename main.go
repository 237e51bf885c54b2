package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"clinicore/config"
	"clinicore/cron"
	"clinicore/database"
	appointmentRepo "clinicore/database/repository/appointment"
	clinicRepo "clinicore/database/repository/clinic"
	leaveRepo "clinicore/database/repository/leave"
	patientRepo "clinicore/database/repository/patient"
	scheduleRepo "clinicore/database/repository/schedule"
	"clinicore/handlers"
	"clinicore/routes"
	"clinicore/services/booking"
	"clinicore/services/clinicops"
	"clinicore/utils"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	schedules := scheduleRepo.NewMongoScheduleRepo()
	leaves := leaveRepo.NewMongoLeaveRepo()
	ledger := appointmentRepo.NewMongoLedgerRepo()
	clinics := clinicRepo.NewMongoClinicRepo()
	patients := patientRepo.NewMongoPatientRepo()

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelIndexes()
	for name, ensure := range map[string]func(context.Context) error{
		"schedule":    schedules.EnsureIndexes,
		"leave":       leaves.EnsureIndexes,
		"appointment": ledger.EnsureIndexes,
		"patient":     patients.EnsureIndexes,
	} {
		if err := ensure(indexCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	bookingService := booking.NewDefaultBookingService(
		schedules, leaves, ledger, clinics, patients,
		config.AppConfig.BookingLeadTimeMin,
		config.AppConfig.WalkInSlotMin,
		config.AppConfig.BookingMaxRetries,
	)
	clinicOpsService := clinicops.NewDefaultClinicOpsService(schedules, leaves, clinics)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(bookingService)
	clinicOpsHandler := handlers.NewClinicOpsHandler(clinicOpsService)
	handlerBundle := handlers.NewHandlerBundle(bookingHandler, clinicOpsHandler)

	routes.RegisterRoutes(router, handlerBundle)

	// Background no-show sweep.
	cron.InitSweepWorker(bookingService)

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
