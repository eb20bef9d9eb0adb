package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
	"marcai/internal/service"
)

// @Summary Public booking page
// @Description Returns the professional's public profile and active services
// @Tags Public
// @Produce json
// @Param slug path string true "Profile slug"
// @Success 200 {object} domain.PublicPage
// @Failure 404 {object} errorResponseBody "Unknown slug"
// @Router /public/{slug} [get]
func (h *Handler) getPublicPage(c *gin.Context) {
	slug := c.Param("slug")

	page, err := h.services.Public.Page(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "page not found")
			return
		}
		h.logger.Error("failed to load public page", zap.String("slug", slug), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, page)
}

// @Summary Available slots
// @Description Lists the free time slots for a service on a given day
// @Tags Public
// @Produce json
// @Param slug path string true "Profile slug"
// @Param service_id query string true "Service ID"
// @Param date query string true "Day in YYYY-MM-DD"
// @Success 200 {object} domain.BookingSession
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Unknown slug"
// @Router /public/{slug}/availability [get]
func (h *Handler) getAvailability(c *gin.Context) {
	page, ok := h.resolveSlug(c)
	if !ok {
		return
	}

	serviceID := c.Query("service_id")
	date := c.Query("date")
	if serviceID == "" || date == "" {
		badRequestResponse(c, "service_id and date are required")
		return
	}

	session, err := h.services.Booking.Availability(c.Request.Context(), page.Profile.ID, serviceID, date)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to compute availability",
			zap.String("profile_id", page.Profile.ID),
			zap.String("service_id", serviceID),
			zap.String("date", date),
			zap.Error(err),
		)
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, session)
}

// @Summary Book a slot
// @Description Books a slot for a client; at most one booking wins per slot
// @Tags Public
// @Accept json
// @Produce json
// @Param slug path string true "Profile slug"
// @Param input body domain.BookingRequest true "Booking data"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 404 {object} errorResponseBody "Unknown slug"
// @Failure 409 {object} conflictResponseBody "Slot was just taken"
// @Failure 500 {object} errorResponseBody "Booking could not be confirmed"
// @Router /public/{slug}/bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	page, ok := h.resolveSlug(c)
	if !ok {
		return
	}

	var input domain.BookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid booking body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	result, err := h.services.Booking.Book(c.Request.Context(), page.Profile.ID, input)
	if err == nil && result.State == service.StateCommitted {
		createdResponse(c, gin.H{
			"appointment": result.Appointment,
			"available":   result.Available,
		})
		return
	}

	switch result.State {
	case service.StateRejectedLocal:
		badRequestResponse(c, err.Error())
	case service.StateRejectedStale, service.StateRejectedConflict:
		conflictResponse(c, "this slot was just taken, pick another one", result.Available)
	default:
		h.logger.Error("booking rejected by infrastructure",
			zap.String("profile_id", page.Profile.ID),
			zap.Error(err),
		)
		errorResponse(c, http.StatusInternalServerError, "could not confirm the booking, please try again")
	}
}

// resolveSlug loads the public page for the :slug param, writing the error
// response itself when the slug is unknown.
func (h *Handler) resolveSlug(c *gin.Context) (*domain.PublicPage, bool) {
	slug := c.Param("slug")

	page, err := h.services.Public.Page(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "page not found")
			return nil, false
		}
		h.logger.Error("failed to resolve slug", zap.String("slug", slug), zap.Error(err))
		internalServerErrorResponse(c)
		return nil, false
	}

	return page, true
}
