package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"amorlias/internal/csvexport"
	"amorlias/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InventoryHandler serves the inventory report.
type InventoryHandler struct {
	inventoryService service.InventoryService
	now              func() time.Time
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService, now: time.Now}
}

// Report handles GET /api/v1/admin/inventory/report
// @Summary Inventory report
// @Description Stock, reserved and available quantities per active product
// @Tags inventory
// @Produce json
// @Success 200 {object} Response{data=domain.InventoryReport}
// @Security BearerAuth
// @Router /admin/inventory/report [get]
func (h *InventoryHandler) Report(c *gin.Context) {
	report, err := h.inventoryService.Report(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, report)
}

// ReportXLSX handles GET /api/v1/admin/inventory/report.xlsx
// @Summary Inventory report spreadsheet
// @Tags inventory
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "XLSX workbook"
// @Security BearerAuth
// @Router /admin/inventory/report.xlsx [get]
func (h *InventoryHandler) ReportXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.inventoryService.ExportXLSX(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}
	filename := csvexport.BuildFilename("inventory", "xlsx", h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
