package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// POSHandler handles counter sales.
type POSHandler struct {
	posService service.POSService
}

// NewPOSHandler creates a new POSHandler.
func NewPOSHandler(posService service.POSService) *POSHandler {
	return &POSHandler{posService: posService}
}

// CreateSale handles POST /api/v1/admin/pos/sales
// @Summary Record a counter sale
// @Description Decrements stock and records a paid, delivered offline order. GST is added on top at the default rate.
// @Tags pos
// @Accept json
// @Produce json
// @Param request body service.CreateSaleInput true "Cart and payment"
// @Success 201 {object} Response{data=domain.Order}
// @Failure 400 {object} ErrorResponseBody "Empty cart or invalid phone"
// @Failure 409 {object} ErrorResponseBody "Insufficient stock"
// @Security BearerAuth
// @Router /admin/pos/sales [post]
func (h *POSHandler) CreateSale(c *gin.Context) {
	var input service.CreateSaleInput
	if !bindJSON(c, &input) {
		return
	}
	order, err := h.posService.CreateSale(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, order)
}

// SearchCustomer handles GET /api/v1/admin/pos/customers?phone=
// @Summary Find a returning customer by phone
// @Tags pos
// @Produce json
// @Param phone query string true "Phone number"
// @Success 200 {object} Response{data=service.CustomerLookup}
// @Failure 400 {object} ErrorResponseBody "Invalid phone"
// @Security BearerAuth
// @Router /admin/pos/customers [get]
func (h *POSHandler) SearchCustomer(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "phone is required")
		return
	}
	res, err := h.posService.SearchCustomer(c.Request.Context(), phone)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}
