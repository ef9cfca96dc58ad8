package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"amorlias/internal/csvexport"
	"amorlias/internal/service"
)

// LabelHandler serves shipping labels.
type LabelHandler struct {
	labelService service.LabelService
}

// NewLabelHandler creates a new LabelHandler.
func NewLabelHandler(labelService service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// Preview handles GET /api/v1/admin/orders/:id/label
// @Summary Shipping label data
// @Description Courier profile, routing codes and per-line GST for an order
// @Tags labels
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} Response{data=label.ShippingLabel}
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Failure 422 {object} ErrorResponseBody "Order or settings incomplete"
// @Security BearerAuth
// @Router /admin/orders/{id}/label [get]
func (h *LabelHandler) Preview(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	l, err := h.labelService.Preview(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, l)
}

// PDF handles GET /api/v1/admin/orders/:id/label.pdf
// @Summary Printable 4x6 shipping label
// @Tags labels
// @Produce application/pdf
// @Param id path string true "Order ID (UUID)"
// @Success 200 {file} file "PDF label"
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Failure 422 {object} ErrorResponseBody "Order or settings incomplete"
// @Security BearerAuth
// @Router /admin/orders/{id}/label.pdf [get]
func (h *LabelHandler) PDF(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	pdf, l, err := h.labelService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	filename := csvexport.SanitizeFilename("label_"+l.OrderNumber) + ".pdf"
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Archive handles POST /api/v1/admin/orders/:id/label/archive
// @Summary Archive the label PDF to object storage
// @Tags labels
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} Response{data=service.ArchivedLabel}
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Failure 501 {object} ErrorResponseBody "Archiving disabled"
// @Failure 502 {object} ErrorResponseBody "Upload failed"
// @Security BearerAuth
// @Router /admin/orders/{id}/label/archive [post]
func (h *LabelHandler) Archive(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	archived, err := h.labelService.Archive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, archived)
}
