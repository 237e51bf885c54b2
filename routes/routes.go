package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinicore/config"
	"clinicore/handlers"
	"clinicore/middleware"
)

// RegisterBookingRoutes sets up the patient-facing booking surface.
// Availability reads and online bookings are public; lifecycle transitions
// and the queue view belong to clinic staff.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.GET("/availability", hb.GetAvailabilityHandler)
		api.POST("/appointments", hb.BookSlotHandler)
		api.GET("/appointments/:id", hb.GetAppointmentHandler)

		protected := api.Group("")
		protected.Use(middleware.StaffAuthMiddleware())
		protected.GET("/appointments", hb.ListAppointmentsHandler)
		protected.GET("/queue", hb.GetQueueHandler)
		protected.POST("/walkins", hb.RegisterWalkInHandler)
		protected.PATCH("/appointments/:id/status", hb.UpdateStatusHandler)
		protected.POST("/appointments/:id/cancel", hb.CancelHandler)
	}
}

// RegisterClinicOpsRoutes sets up the staff-only schedule and leave
// management endpoints.
func RegisterClinicOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clinic")
	{
		api.Use(middleware.StaffAuthMiddleware())
		api.POST("/schedules", hb.CreateScheduleWindowHandler)
		api.GET("/schedules", hb.ListScheduleWindowsHandler)
		api.DELETE("/schedules/:id", hb.DeactivateScheduleWindowHandler)
		api.POST("/leaves", hb.CreateLeaveHandler)
		api.GET("/leaves", hb.ListLeavesHandler)
		api.DELETE("/leaves/:id", hb.DeleteLeaveHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Clinicore"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterClinicOpsRoutes(r, hb)
}
