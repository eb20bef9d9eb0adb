package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

// @Summary Create a service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateServiceDTO true "Service data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /services [post]
func (h *Handler) createService(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Catalog.Create(c.Request.Context(), profileID, input)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to create service", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary List services
// @Tags Services
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.Service
// @Failure 401 {object} errorResponseBody
// @Router /services [get]
func (h *Handler) listServices(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	services, err := h.services.Catalog.List(c.Request.Context(), profileID)
	if err != nil {
		h.logger.Error("failed to list services", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, services)
}

// @Summary Get a service
// @Tags Services
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service ID"
// @Success 200 {object} domain.Service
// @Failure 404 {object} errorResponseBody
// @Router /services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	svc, err := h.services.Catalog.GetByID(c.Request.Context(), profileID, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "service not found")
			return
		}
		h.logger.Error("failed to load service", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Update a service
// @Tags Services
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Service ID"
// @Param input body domain.UpdateServiceDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Router /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), profileID, c.Param("id"), input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "service not found")
			return
		}
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to update service", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "service updated")
}

// @Summary Delete a service
// @Description Deactivates the service; existing appointments keep their data
// @Tags Services
// @Security BearerAuth
// @Produce json
// @Param id path string true "Service ID"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody
// @Router /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), profileID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "service not found")
			return
		}
		h.logger.Error("failed to delete service", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
