package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	// Availability and booking endpoints
	GetAvailabilityHandler  gin.HandlerFunc
	BookSlotHandler         gin.HandlerFunc
	RegisterWalkInHandler   gin.HandlerFunc
	GetAppointmentHandler   gin.HandlerFunc
	ListAppointmentsHandler gin.HandlerFunc
	GetQueueHandler         gin.HandlerFunc
	UpdateStatusHandler     gin.HandlerFunc
	CancelHandler           gin.HandlerFunc

	// Schedule and leave management endpoints
	CreateScheduleWindowHandler     gin.HandlerFunc
	DeactivateScheduleWindowHandler gin.HandlerFunc
	ListScheduleWindowsHandler      gin.HandlerFunc
	CreateLeaveHandler              gin.HandlerFunc
	DeleteLeaveHandler              gin.HandlerFunc
	ListLeavesHandler               gin.HandlerFunc
}

// NewHandlerBundle binds the service-backed handlers into the bundle.
func NewHandlerBundle(bh *BookingHandler, ch *ClinicOpsHandler) *HandlerBundle {
	return &HandlerBundle{
		GetAvailabilityHandler:  bh.GetAvailability,
		BookSlotHandler:         bh.BookSlot,
		RegisterWalkInHandler:   bh.RegisterWalkIn,
		GetAppointmentHandler:   bh.GetAppointment,
		ListAppointmentsHandler: bh.ListAppointments,
		GetQueueHandler:         bh.GetQueue,
		UpdateStatusHandler:     bh.UpdateStatus,
		CancelHandler:           bh.Cancel,

		CreateScheduleWindowHandler:     ch.CreateScheduleWindow,
		DeactivateScheduleWindowHandler: ch.DeactivateScheduleWindow,
		ListScheduleWindowsHandler:      ch.ListScheduleWindows,
		CreateLeaveHandler:              ch.CreateLeave,
		DeleteLeaveHandler:              ch.DeleteLeave,
		ListLeavesHandler:               ch.ListLeaves,
	}
}
