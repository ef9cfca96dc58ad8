package xlsxexport_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"amorlias/internal/domain"
	"amorlias/internal/xlsxexport"
)

func TestWriteInventory(t *testing.T) {
	report := &domain.InventoryReport{
		GeneratedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Items: []domain.InventoryRow{
			{
				ProductID:      uuid.New(),
				Name:           "Silk Saree",
				SKU:            "SAR-001",
				StockQty:       10,
				BlockedQty:     3,
				AvailableQty:   7,
				CostPrice:      decimal.NewFromInt(800),
				StockValue:     decimal.NewFromInt(8000),
				AvailableValue: decimal.NewFromInt(5600),
				Status:         domain.StockInStock,
			},
		},
		Summary: domain.InventorySummary{
			TotalProducts:       1,
			TotalStock:          10,
			TotalStockValue:     decimal.NewFromInt(8000),
			TotalAvailableValue: decimal.NewFromInt(5600),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteInventory(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Inventory", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Product", rows[0][0])
	assert.Equal(t, "Silk Saree", rows[1][0])
	assert.Equal(t, "SAR-001", rows[1][1])
	assert.Equal(t, "3", rows[1][3])
	assert.Equal(t, "in_stock", rows[1][9])

	products, err := f.GetCellValue("Summary", "B3")
	require.NoError(t, err)
	assert.Equal(t, "1", products)
	generated, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01 10:00:00", generated)
}

func TestWriteInventory_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, xlsxexport.WriteInventory(&buf, &domain.InventoryReport{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inventory")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
