package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

// @Summary Register a new profile
// @Description Creates a professional profile with a public booking page slug
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Registration data"
// @Success 201 {object} successResponseBody
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input domain.RegisterRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	id, err := h.services.Auth.Register(c.Request.Context(), input)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Log in
// @Description Authenticates a profile and returns access and refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.Tokens
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input domain.LoginRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	userAgent := c.Request.UserAgent()
	ip := c.ClientIP()

	tokens, err := h.services.Auth.Login(c.Request.Context(), input, userAgent, ip)
	if err != nil {
		h.logger.Warn("login failed", zap.Error(err))
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Refresh tokens
// @Description Rotates the refresh token and issues a new token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RefreshRequest true "Refresh token"
// @Success 200 {object} domain.Tokens
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 401 {object} errorResponseBody "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var input domain.RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	userAgent := c.Request.UserAgent()
	ip := c.ClientIP()

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), input.RefreshToken, userAgent, ip)
	if err != nil {
		h.logger.Warn("token refresh failed", zap.Error(err))
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Log out
// @Description Invalidates the session bound to the refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RefreshRequest true "Refresh token"
// @Success 204 {object} nil
// @Failure 400 {object} errorResponseBody "Validation error"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var input domain.RefreshRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}

// @Summary Log out everywhere
// @Description Revokes all sessions of the authenticated profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 401 {object} errorResponseBody "Unauthorized"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /auth/logout-all [post]
func (h *Handler) logoutAll(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	if err := h.services.Auth.LogoutAll(c.Request.Context(), profileID); err != nil {
		h.logger.Error("logout-all failed", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
