package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

// @Summary Record an expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body domain.CreateExpenseDTO true "Expense data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /expenses [post]
func (h *Handler) createExpense(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.CreateExpenseDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Expense.Create(c.Request.Context(), profileID, input)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to create expense", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary List expenses for a month
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param month query string false "Month in YYYY-MM, current month by default"
// @Success 200 {array} domain.Expense
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /expenses [get]
func (h *Handler) listExpenses(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	month := c.DefaultQuery("month", time.Now().Format("2006-01"))

	expenses, err := h.services.Expense.ListByMonth(c.Request.Context(), profileID, month)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to list expenses", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, expenses)
}

// @Summary Update an expense
// @Tags Expenses
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Expense ID"
// @Param input body domain.UpdateExpenseDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Failure 404 {object} errorResponseBody
// @Router /expenses/{id} [put]
func (h *Handler) updateExpense(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateExpenseDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Expense.Update(c.Request.Context(), profileID, c.Param("id"), input); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "expense not found")
			return
		}
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to update expense", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "expense updated")
}

// @Summary Delete an expense
// @Tags Expenses
// @Security BearerAuth
// @Produce json
// @Param id path string true "Expense ID"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody
// @Router /expenses/{id} [delete]
func (h *Handler) deleteExpense(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Expense.Delete(c.Request.Context(), profileID, c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "expense not found")
			return
		}
		h.logger.Error("failed to delete expense", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
