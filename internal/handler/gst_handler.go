package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"amorlias/internal/gst"
)

// GSTHandler exposes the tax calculator.
type GSTHandler struct{}

// NewGSTHandler creates a new GSTHandler.
func NewGSTHandler() *GSTHandler {
	return &GSTHandler{}
}

// BreakupRequest is the body of POST /gst/breakup.
type BreakupRequest struct {
	TaxableValue decimal.Decimal `json:"taxable_value" binding:"money" example:"1000"`
	RatePercent  decimal.Decimal `json:"rate_percent" binding:"gst_rate" example:"18"`
	IntraState   bool            `json:"intra_state" example:"true"`
}

// TaxableValueRequest is the body of POST /gst/taxable-value.
type TaxableValueRequest struct {
	PriceInclusive decimal.Decimal `json:"price_inclusive" binding:"money" example:"1180"`
	RatePercent    decimal.Decimal `json:"rate_percent" binding:"gst_rate" example:"18"`
}

// TaxableValueResponse is the result of POST /gst/taxable-value.
type TaxableValueResponse struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	Tax          decimal.Decimal `json:"tax"`
}

// Breakup handles POST /api/v1/gst/breakup
// @Summary Split tax on a taxable value
// @Description Returns CGST and SGST for intra-state supply, IGST otherwise
// @Tags gst
// @Accept json
// @Produce json
// @Param request body BreakupRequest true "Taxable value and rate"
// @Success 200 {object} Response{data=gst.TaxBreakup}
// @Failure 400 {object} ErrorResponseBody "Negative amount or rate"
// @Router /gst/breakup [post]
func (h *GSTHandler) Breakup(c *gin.Context) {
	var req BreakupRequest
	if !bindJSON(c, &req) {
		return
	}
	b, err := gst.Breakup(req.TaxableValue, req.RatePercent, req.IntraState)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, b)
}

// TaxableValue handles POST /api/v1/gst/taxable-value
// @Summary Extract taxable value from an inclusive price
// @Tags gst
// @Accept json
// @Produce json
// @Param request body TaxableValueRequest true "Inclusive price and rate"
// @Success 200 {object} Response{data=TaxableValueResponse}
// @Failure 400 {object} ErrorResponseBody "Negative amount or rate"
// @Router /gst/taxable-value [post]
func (h *GSTHandler) TaxableValue(c *gin.Context) {
	var req TaxableValueRequest
	if !bindJSON(c, &req) {
		return
	}
	taxable, err := gst.TaxableValue(req.PriceInclusive, req.RatePercent)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, TaxableValueResponse{
		TaxableValue: taxable,
		Tax:          gst.Round2(req.PriceInclusive.Sub(taxable)),
	})
}
