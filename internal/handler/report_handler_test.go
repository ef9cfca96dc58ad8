package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"amorlias/internal/domain"
	"amorlias/internal/handler"
	"amorlias/mocks"
)

func TestReportHandler_TaxSummary(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)

	svc.On("TaxSummary", mock.Anything, mock.MatchedBy(func(f domain.ReportFilter) bool {
		return f.Granularity == domain.GranularityQuarterly &&
			f.From != nil && f.From.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) &&
			f.To != nil && f.To.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) &&
			f.Status == ""
	})).Return([]domain.TaxSummaryRow{
		{Period: "2026-Q1", OrderCount: 3, IGST: decimal.RequireFromString("120")},
	}, nil)

	c, w := newContext(t, http.MethodGet,
		"/api/v1/admin/reports/tax-summary?granularity=quarterly&from=2026-01-01&to=2026-03-31", nil)
	h.TaxSummary(c)

	require.Equal(t, http.StatusOK, w.Code)
	var rows []domain.TaxSummaryRow
	decodeData(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-Q1", rows[0].Period)
	assert.Equal(t, 3, rows[0].OrderCount)
}

func TestReportHandler_TaxSummary_DefaultsToMonthly(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	svc.On("TaxSummary", mock.Anything, domain.ReportFilter{Granularity: domain.GranularityMonthly}).
		Return([]domain.TaxSummaryRow{}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/reports/tax-summary", nil)
	h.TaxSummary(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestReportHandler_TaxSummary_BadGranularity(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/reports/tax-summary?granularity=hourly", nil)
	h.TaxSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ARGUMENT", decode(t, w).Error.Code)
	svc.AssertNotCalled(t, "TaxSummary", mock.Anything, mock.Anything)
}

func TestReportHandler_TaxSummary_BadDate(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/reports/tax-summary?from=01-01-2026", nil)
	h.TaxSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE", decode(t, w).Error.Code)
}

func TestReportHandler_TaxSummary_MissingSettings(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	svc.On("TaxSummary", mock.Anything, mock.Anything).Return(nil, domain.ErrMissingSettings)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/reports/tax-summary", nil)
	h.TaxSummary(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestReportHandler_HSNSummary(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)
	svc.On("HSNSummary", mock.Anything, domain.OrderFilter{Status: domain.OrderStatusDelivered}).
		Return([]domain.HSNSummaryRow{{HSNCode: "6104", Quantity: 3}}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/reports/hsn-summary?status=delivered", nil)
	h.HSNSummary(c)

	require.Equal(t, http.StatusOK, w.Code)
	var rows []domain.HSNSummaryRow
	decodeData(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "6104", rows[0].HSNCode)
}

func TestReportHandler_HSNSummary_BadStatus(t *testing.T) {
	svc := new(mocks.MockReportService)
	h := handler.NewReportHandler(svc)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/reports/hsn-summary?status=lost", nil)
	h.HSNSummary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "HSNSummary", mock.Anything, mock.Anything)
}
