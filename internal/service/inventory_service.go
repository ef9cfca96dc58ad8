package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
	"amorlias/internal/port"
	"amorlias/internal/xlsxexport"
)

// InventoryService reports stock levels net of open orders.
type InventoryService interface {
	Report(ctx context.Context) (*domain.InventoryReport, error)
	// ExportXLSX writes the report as a spreadsheet.
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type inventoryService struct {
	products port.ProductRepository
	orders   port.OrderRepository
	now      func() time.Time
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(products port.ProductRepository, orders port.OrderRepository) InventoryService {
	return &inventoryService{products: products, orders: orders, now: time.Now}
}

func (s *inventoryService) Report(ctx context.Context) (*domain.InventoryReport, error) {
	products, err := s.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	blocked, err := s.orders.BlockedQuantities(ctx)
	if err != nil {
		return nil, err
	}
	return BuildInventoryReport(products, blocked, s.now()), nil
}

func (s *inventoryService) ExportXLSX(ctx context.Context, w io.Writer) error {
	report, err := s.Report(ctx)
	if err != nil {
		return err
	}
	return xlsxexport.WriteInventory(w, report)
}

// BuildInventoryReport classifies each product and totals the report.
func BuildInventoryReport(products []domain.Product, blocked map[uuid.UUID]int, at time.Time) *domain.InventoryReport {
	report := &domain.InventoryReport{
		Items:       make([]domain.InventoryRow, 0, len(products)),
		GeneratedAt: at,
		Summary: domain.InventorySummary{
			TotalStockValue:     decimal.Zero,
			TotalAvailableValue: decimal.Zero,
		},
	}
	sum := &report.Summary

	for i := range products {
		p := &products[i]
		held := blocked[p.ID]
		available := p.StockQty - held
		if available < 0 {
			available = 0
		}
		row := domain.InventoryRow{
			ProductID:         p.ID,
			Name:              p.Name,
			SKU:               p.SKU,
			StockQty:          p.StockQty,
			BlockedQty:        held,
			AvailableQty:      available,
			LowStockThreshold: p.LowStockThreshold,
			CostPrice:         p.CostPrice,
			StockValue:        p.CostPrice.Mul(decimal.NewFromInt(int64(p.StockQty))),
			AvailableValue:    p.CostPrice.Mul(decimal.NewFromInt(int64(available))),
			Status:            StockStatusOf(p.StockQty, available, p.LowStockThreshold),
		}
		report.Items = append(report.Items, row)

		sum.TotalProducts++
		sum.TotalStock += row.StockQty
		sum.TotalBlocked += row.BlockedQty
		sum.TotalAvailable += row.AvailableQty
		sum.TotalStockValue = sum.TotalStockValue.Add(row.StockValue)
		sum.TotalAvailableValue = sum.TotalAvailableValue.Add(row.AvailableValue)
		switch row.Status {
		case domain.StockOutOfStock:
			sum.OutOfStock++
		case domain.StockLow:
			sum.LowStock++
		case domain.StockReservedLow:
			sum.ReservedLow++
		}
	}
	return report
}

// StockStatusOf classifies a product. Physical stock is checked before
// stock left after reservations.
func StockStatusOf(stock, available, threshold int) domain.StockStatus {
	switch {
	case stock <= 0:
		return domain.StockOutOfStock
	case stock <= threshold:
		return domain.StockLow
	case available <= threshold:
		return domain.StockReservedLow
	default:
		return domain.StockInStock
	}
}
