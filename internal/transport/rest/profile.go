package rest

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"marcai/internal/domain"
)

const maxAvatarSize = 5 << 20

// @Summary Current profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} errorResponseBody
// @Router /profile [get]
func (h *Handler) getProfile(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	profile, err := h.services.Profile.GetByID(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "profile not found")
			return
		}
		h.logger.Error("failed to load profile", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, profile)
}

// @Summary Update profile
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param input body domain.UpdateProfileDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /profile [put]
func (h *Handler) updateProfile(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.UpdateProfileDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid request body", zap.Error(err))
		badRequestResponse(c, "invalid request body")
		return
	}

	if err := h.services.Profile.Update(c.Request.Context(), profileID, input); err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to update profile", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "profile updated")
}

// @Summary Upload avatar
// @Tags Profile
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (jpg, jpeg, png, webp)"
// @Success 200 {object} successResponseBody
// @Failure 400 {object} errorResponseBody
// @Failure 401 {object} errorResponseBody
// @Router /profile/avatar [post]
func (h *Handler) uploadAvatar(c *gin.Context) {
	profileID, err := getProfileID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequestResponse(c, "file is required")
		return
	}

	if fileHeader.Size > maxAvatarSize {
		badRequestResponse(c, "file is too large, 5MB max")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		badRequestResponse(c, "unsupported image format")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarSize+1))
	if err != nil {
		h.logger.Error("failed to read uploaded file", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	url, err := h.services.Profile.UploadAvatar(c.Request.Context(), profileID, data, fileHeader.Filename)
	if err != nil {
		if domain.IsValidationError(err) {
			badRequestResponse(c, err.Error())
			return
		}
		h.logger.Error("failed to upload avatar", zap.String("profile_id", profileID), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"avatar_url": url,
	})
}
