package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clinicore/services/clinicops"
	"clinicore/utils"
)

// ClinicOpsHandler exposes schedule and leave management to clinic staff.
type ClinicOpsHandler struct {
	Svc clinicops.ClinicOpsService
}

func NewClinicOpsHandler(svc clinicops.ClinicOpsService) *ClinicOpsHandler {
	return &ClinicOpsHandler{Svc: svc}
}

// CreateScheduleWindow handles POST /schedules.
func (h *ClinicOpsHandler) CreateScheduleWindow(c *gin.Context) {
	var req clinicops.CreateWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	w, err := h.Svc.CreateScheduleWindow(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// DeactivateScheduleWindow handles DELETE /schedules/:id.
func (h *ClinicOpsHandler) DeactivateScheduleWindow(c *gin.Context) {
	if err := h.Svc.DeactivateScheduleWindow(c.Request.Context(), c.Param("id")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// ListScheduleWindows handles GET /schedules?clinicId=&doctorId=.
func (h *ClinicOpsHandler) ListScheduleWindows(c *gin.Context) {
	windows, err := h.Svc.ListScheduleWindows(c.Request.Context(), c.Query("clinicId"), c.Query("doctorId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, windows)
}

// CreateLeave handles POST /leaves.
func (h *ClinicOpsHandler) CreateLeave(c *gin.Context) {
	var req clinicops.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	l, err := h.Svc.CreateLeave(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// DeleteLeave handles DELETE /leaves/:id.
func (h *ClinicOpsHandler) DeleteLeave(c *gin.Context) {
	if err := h.Svc.DeleteLeave(c.Request.Context(), c.Param("id")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListLeaves handles GET /leaves?clinicId=&doctorId=.
func (h *ClinicOpsHandler) ListLeaves(c *gin.Context) {
	leaves, err := h.Svc.ListLeaves(c.Request.Context(), c.Query("clinicId"), c.Query("doctorId"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, leaves)
}
