package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkwell/inkwell-backend/internal/common"
	"github.com/inkwell/inkwell-backend/internal/domain"
	"github.com/inkwell/inkwell-backend/internal/service"
)

// SettingsHandler site settings endpoints
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// List godoc
// @Summary List all site settings
// @Tags settings
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.Setting}
// @Router /settings [get]
func (h *SettingsHandler) List(c *gin.Context) {
	settings, err := h.settingsService.GetAll()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load settings", err)
		return
	}

	common.SuccessResponse(c, settings, nil)
}

// Get godoc
// @Summary Get a setting by key
// @Tags settings
// @Produce json
// @Param key path string true "Setting key"
// @Success 200 {object} common.APIResponse{data=domain.Setting}
// @Failure 404 {object} common.APIResponse
// @Router /settings/{key} [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settingsService.Get(c.Param("key"))
	if err != nil {
		if errors.Is(err, common.ErrSettingNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "setting not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load setting", err)
		return
	}

	common.SuccessResponse(c, setting, nil)
}

// Set godoc
// @Summary Create or update a setting
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Param request body domain.UpdateSettingRequest true "Setting value"
// @Success 200 {object} common.APIResponse{data=domain.Setting}
// @Router /settings/{key} [put]
func (h *SettingsHandler) Set(c *gin.Context) {
	var req domain.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	setting, err := h.settingsService.Set(c.Param("key"), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to save setting", err)
		return
	}

	common.SuccessResponse(c, setting, nil)
}

// Delete godoc
// @Summary Delete a setting
// @Tags settings
// @Security BearerAuth
// @Param key path string true "Setting key"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Router /settings/{key} [delete]
func (h *SettingsHandler) Delete(c *gin.Context) {
	if err := h.settingsService.Delete(c.Param("key")); err != nil {
		if errors.Is(err, common.ErrSettingNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "setting not found", nil)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to delete setting", err)
		return
	}

	common.SuccessResponse(c, gin.H{"message": "setting deleted"}, nil)
}
