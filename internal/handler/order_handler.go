package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"amorlias/internal/csvexport"
	"amorlias/internal/domain"
	"amorlias/internal/service"
)

const dateLayout = "2006-01-02"

// OrderHandler handles customer and admin order endpoints.
type OrderHandler struct {
	orderService service.OrderService
	now          func() time.Time
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService, now: time.Now}
}

// ListMine handles GET /api/v1/orders
// @Summary List my orders
// @Tags orders
// @Produce json
// @Param status query string false "Status filter (all, pending, processing, shipped, delivered, cancelled)" default(all)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Order,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Unknown status"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	orders, total, err := h.orderService.ListByUser(c.Request.Context(), userID, c.Query("status"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetMine handles GET /api/v1/orders/:id
// @Summary Get one of my orders
// @Tags orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} Response{data=domain.Order}
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) GetMine(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "order")
	if !ok {
		return
	}

	order, err := h.orderService.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// List handles GET /api/v1/admin/orders
// @Summary List all orders
// @Tags admin-orders
// @Produce json
// @Param status query string false "Status filter" default(all)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Order,meta=PagMeta}
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /admin/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	orders, total, err := h.orderService.List(c.Request.Context(), c.Query("status"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, orders, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/admin/orders/:id
// @Summary Get any order
// @Tags admin-orders
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Success 200 {object} Response{data=domain.Order}
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Security BearerAuth
// @Router /admin/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// UpdateShipment handles PUT /api/v1/admin/orders/:id/shipment
// @Summary Record courier and tracking number
// @Description Marks a pending or processing order as shipped and notifies the customer
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param request body service.UpdateShipmentInput true "Courier and tracking number"
// @Success 200 {object} Response{data=domain.Order}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Order not found"
// @Failure 409 {object} ErrorResponseBody "Order cannot be shipped"
// @Security BearerAuth
// @Router /admin/orders/{id}/shipment [put]
func (h *OrderHandler) UpdateShipment(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	var input service.UpdateShipmentInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.orderService.UpdateShipment(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// UpdateStatus handles PUT /api/v1/admin/orders/:id/status
// @Summary Move an order along its lifecycle
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID (UUID)"
// @Param request body service.UpdateStatusInput true "Target status"
// @Success 200 {object} Response{data=domain.Order}
// @Failure 400 {object} ErrorResponseBody "Unknown status"
// @Failure 409 {object} ErrorResponseBody "Transition not allowed"
// @Security BearerAuth
// @Router /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "order")
	if !ok {
		return
	}
	var input service.UpdateStatusInput
	if !bindJSON(c, &input) {
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// ExportGSTRegister handles GET /api/v1/admin/orders/export
// @Summary Download the GST sales register
// @Description One CSV row per order line with taxable value and CGST/SGST/IGST
// @Tags admin-orders
// @Produce text/csv
// @Param status query string false "Status filter" default(all)
// @Param from query string false "From date (YYYY-MM-DD)"
// @Param to query string false "To date (YYYY-MM-DD), inclusive"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /admin/orders/export [get]
func (h *OrderHandler) ExportGSTRegister(c *gin.Context) {
	filter, ok := parseOrderFilter(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.orderService.ExportGSTRegister(c.Request.Context(), filter, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("gst_register", "csv", h.now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func parseOrderFilter(c *gin.Context) (domain.OrderFilter, bool) {
	var filter domain.OrderFilter
	status, err := service.ParseStatusFilter(c.Query("status"))
	if err != nil {
		HandleError(c, err)
		return filter, false
	}
	filter.Status = status

	if v := c.Query("from"); v != "" {
		from, err := time.Parse(dateLayout, v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "from must be YYYY-MM-DD")
			return filter, false
		}
		filter.From = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(dateLayout, v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_DATE", "to must be YYYY-MM-DD")
			return filter, false
		}
		end := to.AddDate(0, 0, 1)
		filter.To = &end
	}
	return filter, true
}
