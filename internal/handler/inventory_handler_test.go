package handler_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"amorlias/internal/domain"
	"amorlias/internal/handler"
	"amorlias/mocks"
)

func TestInventoryHandler_Report(t *testing.T) {
	svc := new(mocks.MockInventoryService)
	h := handler.NewInventoryHandler(svc)
	svc.On("Report", mock.Anything).Return(&domain.InventoryReport{
		Items:   []domain.InventoryRow{{SKU: "KURTA-01", StockQty: 5, BlockedQty: 2, AvailableQty: 3}},
		Summary: domain.InventorySummary{TotalProducts: 1},
	}, nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/inventory/report", nil)
	h.Report(c)

	require.Equal(t, http.StatusOK, w.Code)
	var got domain.InventoryReport
	decodeData(t, w, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].AvailableQty)
}

func TestInventoryHandler_ReportXLSX(t *testing.T) {
	svc := new(mocks.MockInventoryService)
	h := handler.NewInventoryHandler(svc)
	svc.On("ExportXLSX", mock.Anything, mock.Anything).Return([]byte("PK\x03\x04"), nil)

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/inventory/report.xlsx", nil)
	h.ReportXLSX(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.True(t, strings.HasPrefix(disposition, `attachment; filename="inventory_`))
	assert.True(t, strings.HasSuffix(disposition, `.xlsx"`))
	assert.Equal(t, "PK\x03\x04", w.Body.String())
}

func TestInventoryHandler_ReportXLSX_Error(t *testing.T) {
	svc := new(mocks.MockInventoryService)
	h := handler.NewInventoryHandler(svc)
	svc.On("ExportXLSX", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	c, w := newContext(t, http.MethodGet, "/api/v1/admin/inventory/report.xlsx", nil)
	h.ReportXLSX(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
}
