package service_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"amorlias/internal/domain"
	"amorlias/internal/service"
	"amorlias/mocks"
)

func TestStockStatusOf(t *testing.T) {
	tests := []struct {
		name                        string
		stock, available, threshold int
		want                        domain.StockStatus
	}{
		{"no stock", 0, 0, 5, domain.StockOutOfStock},
		{"negative stock", -2, 0, 5, domain.StockOutOfStock},
		{"at threshold", 5, 5, 5, domain.StockLow},
		{"reservations push below", 10, 4, 5, domain.StockReservedLow},
		{"healthy", 10, 8, 5, domain.StockInStock},
		{"zero threshold", 1, 1, 0, domain.StockInStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.StockStatusOf(tt.stock, tt.available, tt.threshold))
		})
	}
}

func TestBuildInventoryReport(t *testing.T) {
	saree := domain.Product{ID: uuid.New(), Name: "Saree", StockQty: 10, LowStockThreshold: 3, CostPrice: d("800")}
	anklet := domain.Product{ID: uuid.New(), Name: "Anklet", StockQty: 2, LowStockThreshold: 5, CostPrice: d("40.5")}
	bag := domain.Product{ID: uuid.New(), Name: "Bag", StockQty: 0, LowStockThreshold: 1, CostPrice: d("300")}
	at := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	report := service.BuildInventoryReport(
		[]domain.Product{saree, anklet, bag},
		map[uuid.UUID]int{saree.ID: 8, anklet.ID: 5},
		at,
	)

	require.Len(t, report.Items, 3)
	s := report.Items[0]
	assert.Equal(t, 8, s.BlockedQty)
	assert.Equal(t, 2, s.AvailableQty)
	assert.Equal(t, domain.StockReservedLow, s.Status)
	assert.True(t, s.StockValue.Equal(d("8000")))
	assert.True(t, s.AvailableValue.Equal(d("1600")))

	a := report.Items[1]
	assert.Equal(t, 0, a.AvailableQty, "available never goes negative")
	assert.Equal(t, domain.StockLow, a.Status)
	assert.Equal(t, domain.StockOutOfStock, report.Items[2].Status)

	sum := report.Summary
	assert.Equal(t, 3, sum.TotalProducts)
	assert.Equal(t, 12, sum.TotalStock)
	assert.Equal(t, 13, sum.TotalBlocked)
	assert.Equal(t, 2, sum.TotalAvailable)
	assert.True(t, sum.TotalStockValue.Equal(d("8081")))
	assert.Equal(t, 1, sum.OutOfStock)
	assert.Equal(t, 1, sum.LowStock)
	assert.Equal(t, 1, sum.ReservedLow)
	assert.Equal(t, at, report.GeneratedAt)
}

func TestInventoryService_Report(t *testing.T) {
	products := new(mocks.MockProductRepo)
	orders := new(mocks.MockOrderRepo)
	svc := service.NewInventoryService(products, orders)

	p := domain.Product{ID: uuid.New(), Name: "Kurti", StockQty: 4, CostPrice: d("100")}
	products.On("ListActive", anyCtx).Return([]domain.Product{p}, nil)
	orders.On("BlockedQuantities", anyCtx).Return(map[uuid.UUID]int{p.ID: 1}, nil)

	report, err := svc.Report(context.Background())

	require.NoError(t, err)
	require.Len(t, report.Items, 1)
	assert.Equal(t, 3, report.Items[0].AvailableQty)
}

func TestInventoryService_Report_RepoError(t *testing.T) {
	products := new(mocks.MockProductRepo)
	orders := new(mocks.MockOrderRepo)
	svc := service.NewInventoryService(products, orders)

	products.On("ListActive", anyCtx).Return([]domain.Product{}, nil)
	orders.On("BlockedQuantities", anyCtx).Return(nil, errors.New("db down"))

	_, err := svc.Report(context.Background())
	assert.Error(t, err)
}

func TestInventoryService_ExportXLSX(t *testing.T) {
	products := new(mocks.MockProductRepo)
	orders := new(mocks.MockOrderRepo)
	svc := service.NewInventoryService(products, orders)

	products.On("ListActive", anyCtx).Return([]domain.Product{{ID: uuid.New(), Name: "Kurti", SKU: "K1", StockQty: 4}}, nil)
	orders.On("BlockedQuantities", anyCtx).Return(map[uuid.UUID]int{}, nil)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportXLSX(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	sku, err := f.GetCellValue("Inventory", "B2")
	require.NoError(t, err)
	assert.Equal(t, "K1", sku)
}
