package handler

import (
	"github.com/gin-gonic/gin"

	"amorlias/internal/domain"
	"amorlias/internal/service"
)

// ReportHandler handles GST report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TaxSummary handles GET /api/v1/admin/reports/tax-summary
// @Summary Output tax by period
// @Description Buckets order tax by period, split into intra-state (CGST+SGST) and inter-state (IGST) supplies. Cancelled orders are excluded unless status=cancelled.
// @Tags reports
// @Produce json
// @Param granularity query string false "daily, weekly, monthly, quarterly or yearly" default(monthly)
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param status query string false "Order status filter" default(all)
// @Success 200 {object} Response{data=[]domain.TaxSummaryRow}
// @Failure 400 {object} ErrorResponseBody "Bad filter"
// @Failure 422 {object} ErrorResponseBody "Business settings incomplete"
// @Security BearerAuth
// @Router /admin/reports/tax-summary [get]
func (h *ReportHandler) TaxSummary(c *gin.Context) {
	filter, ok := parseOrderFilter(c)
	if !ok {
		return
	}
	granularity, err := service.ParseGranularity(c.Query("granularity"))
	if err != nil {
		HandleError(c, err)
		return
	}

	rows, err := h.reportService.TaxSummary(c.Request.Context(), domain.ReportFilter{
		OrderFilter: filter,
		Granularity: granularity,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}

// HSNSummary handles GET /api/v1/admin/reports/hsn-summary
// @Summary HSN-wise summary of sales
// @Tags reports
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, inclusive (YYYY-MM-DD)"
// @Param status query string false "Order status filter" default(all)
// @Success 200 {object} Response{data=[]domain.HSNSummaryRow}
// @Failure 400 {object} ErrorResponseBody "Bad filter"
// @Security BearerAuth
// @Router /admin/reports/hsn-summary [get]
func (h *ReportHandler) HSNSummary(c *gin.Context) {
	filter, ok := parseOrderFilter(c)
	if !ok {
		return
	}

	rows, err := h.reportService.HSNSummary(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rows)
}
