package handler

import (
	"github.com/gin-gonic/gin"

	"amorlias/internal/service"
)

// ProductHandler handles catalog management endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create handles POST /api/v1/admin/products
// @Summary Create a product
// @Description SKU is upper-cased. Warnings flag GST rates that disagree with the HSN master.
// @Tags products
// @Accept json
// @Produce json
// @Param request body service.ProductInput true "Product"
// @Success 201 {object} Response{data=service.ProductResult}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Duplicate SKU"
// @Security BearerAuth
// @Router /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.productService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, res)
}

// List handles GET /api/v1/admin/products
// @Summary List products
// @Tags products
// @Produce json
// @Param search query string false "Name or SKU substring"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Product,meta=PagMeta}
// @Security BearerAuth
// @Router /admin/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)
	products, total, err := h.productService.List(c.Request.Context(), c.Query("search"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/admin/products/:id
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} Response{data=domain.Product}
// @Failure 404 {object} ErrorResponseBody "Product not found"
// @Security BearerAuth
// @Router /admin/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	p, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, p)
}

// Update handles PUT /api/v1/admin/products/:id
// @Summary Replace a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param request body service.ProductInput true "Product"
// @Success 200 {object} Response{data=service.ProductResult}
// @Failure 404 {object} ErrorResponseBody "Product not found"
// @Failure 409 {object} ErrorResponseBody "Duplicate SKU"
// @Security BearerAuth
// @Router /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	var input service.ProductInput
	if !bindJSON(c, &input) {
		return
	}
	res, err := h.productService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, res)
}

// Delete handles DELETE /api/v1/admin/products/:id
// @Summary Deactivate a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} Response{data=MessageData}
// @Failure 404 {object} ErrorResponseBody "Product not found"
// @Security BearerAuth
// @Router /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "product")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, MessageData{Message: "product deactivated"})
}
