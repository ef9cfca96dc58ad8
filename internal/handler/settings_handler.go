package handler

import (
	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// SettingsHandler handles the business settings endpoints.
type SettingsHandler struct {
	settingsService service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Get handles GET /api/v1/admin/settings
// @Summary Get business settings
// @Tags settings
// @Produce json
// @Success 200 {object} Response{data=domain.BusinessSettings}
// @Security BearerAuth
// @Router /admin/settings [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, s)
}

// Update handles PUT /api/v1/admin/settings
// @Summary Save business settings
// @Tags settings
// @Accept json
// @Produce json
// @Param request body service.UpdateSettingsInput true "Settings"
// @Success 200 {object} Response{data=domain.BusinessSettings}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /admin/settings [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var input service.UpdateSettingsInput
	if !bindJSON(c, &input) {
		return
	}
	s, err := h.settingsService.Update(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, s)
}
