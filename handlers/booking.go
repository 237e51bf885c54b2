package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicore/models"
	"clinicore/services/booking"
	"clinicore/utils"
)

// BookingHandler exposes the appointment engine over HTTP.
type BookingHandler struct {
	Svc booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

// GetAvailability handles GET /availability?clinicId=&doctorId=&date=.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	clinicID := c.Query("clinicId")
	doctorID := c.Query("doctorId")
	date := c.Query("date")

	view, err := h.Svc.GetAvailableSlots(c.Request.Context(), clinicID, doctorID, date)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// BookSlot handles POST /appointments.
func (h *BookingHandler) BookSlot(c *gin.Context) {
	var req booking.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	appt, err := h.Svc.BookSlot(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// RegisterWalkIn handles POST /walkins.
func (h *BookingHandler) RegisterWalkIn(c *gin.Context) {
	var req booking.WalkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	appt, err := h.Svc.RegisterWalkIn(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// GetAppointment handles GET /appointments/:id.
func (h *BookingHandler) GetAppointment(c *gin.Context) {
	appt, err := h.Svc.GetAppointment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// ListAppointments handles GET /appointments?clinicId=&doctorId=&date=.
func (h *BookingHandler) ListAppointments(c *gin.Context) {
	appts, err := h.Svc.ListAppointments(c.Request.Context(), c.Query("clinicId"), c.Query("doctorId"), c.Query("date"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// GetQueue handles GET /queue?clinicId=&date= and returns the day's
// token-ordered walk-in queue.
func (h *BookingHandler) GetQueue(c *gin.Context) {
	queue, err := h.Svc.GetQueue(c.Request.Context(), c.Query("clinicId"), c.Query("date"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, queue)
}

// UpdateStatus handles PATCH /appointments/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		Status models.AppointmentStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	appt, err := h.Svc.TransitionStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Cancel handles POST /appointments/:id/cancel.
func (h *BookingHandler) Cancel(c *gin.Context) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	appt, err := h.Svc.CancelAppointment(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// respondEngineError maps engine error codes to HTTP statuses. Anything
// without a code is an internal failure and is logged, not leaked.
func respondEngineError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	switch code {
	case booking.CodeValidation, booking.CodeInvalidDate:
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{Code: code, Message: err.Error()})
	case booking.CodeInvalidAffiliation:
		c.JSON(http.StatusForbidden, utils.ErrorResponse{Code: code, Message: err.Error()})
	case booking.CodeNotFound:
		c.JSON(http.StatusNotFound, utils.ErrorResponse{Code: code, Message: err.Error()})
	case booking.CodeSlotFull, booking.CodeConcurrencyConflict:
		c.JSON(http.StatusConflict, utils.ErrorResponse{Code: code, Message: err.Error()})
	default:
		utils.GetLogger().Error("unhandled engine error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse{Message: "internal server error"})
	}
}
