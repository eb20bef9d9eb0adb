package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

// @Summary List appointments
// @Description Lists the professional's appointments with optional filters
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param service_id query string false "Filter by service"
// @Param status query string false "Filter by status"
// @Param date_from query string false "Start day, YYYY-MM-DD"
// @Param date_to query string false "End day inclusive, YYYY-MM-DD"
// @Param limit query int false "Page size, 20 by default"
// @Param offset query int false "Offset"
// @Success 200 {object} paginatedResponse
// @Failure 401 {object} errorResponseBody
// @Router /appointments [get]
func (h *Handler) listAppointments(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.AppointmentFilter{ProfileID: profileID}

	if serviceID := c.Query("service_id"); serviceID != "" {
		filter.ServiceID = &serviceID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		filter.Status = &status
	}
	if dateFrom := c.Query("date_from"); dateFrom != "" {
		if _, err := time.Parse("2006-01-02", dateFrom); err == nil {
			filter.StartDate = &dateFrom
		}
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		if _, err := time.Parse("2006-01-02", dateTo); err == nil {
			filter.EndDate = &dateTo
		}
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Limit = limit
	filter.Offset = offset

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list appointments", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, appointments, total, page, limit)
}

// @Summary Get an appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	appointment, err := h.services.Appointment.GetByID(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		h.logger.Error("failed to load appointment", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Update an appointment
// @Description Updates status, discount or the amount already paid
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param input body domain.UpdateAppointmentDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), profileID, c.Param("id"), input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to update appointment", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "appointment updated")
}

// @Summary Cancel an appointment
// @Description Marks the appointment as canceled; its slot stays taken
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), profileID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		h.logger.Error("failed to cancel appointment", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
