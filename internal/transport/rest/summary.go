package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

// @Summary Monthly financial summary
// @Description Aggregates forecast, received and outstanding amounts plus costs for a month
// @Tags Summary
// @Security BearerAuth
// @Produce json
// @Param month query string false "Month in YYYY-MM, current month by default"
// @Success 200 {object} domain.MonthlySummary
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /summary [get]
func (h *Handler) getMonthlySummary(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	month := c.DefaultQuery("month", time.Now().Format("2006-01"))

	summary, err := h.services.Summary.Monthly(c.Request.Context(), profileID, month)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to build summary",
			zap.String("profile_id", profileID),
			zap.String("month", month),
			zap.Error(err),
		)
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, summary)
}
