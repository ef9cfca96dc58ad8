package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Dashboard handles GET /api/v1/admin/dashboard
// @Summary Admin dashboard statistics
// @Description Order counts by status, revenue and tax for the window, plus current catalog and customer counts. days=0 means all time.
// @Tags stats
// @Produce json
// @Param days query int false "Look-back window in days, today included" default(0)
// @Success 200 {object} Response{data=domain.DashboardStats}
// @Failure 400 {object} ErrorResponseBody "Invalid window"
// @Security BearerAuth
// @Router /admin/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "days must be a whole number")
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), days)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, stats)
}
