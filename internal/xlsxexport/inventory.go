// Package xlsxexport writes reports as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"amorlias/internal/domain"
)

const (
	inventorySheet = "Inventory"
	summarySheet   = "Summary"
)

var inventoryColumns = []string{
	"Product",
	"SKU",
	"Stock",
	"Blocked",
	"Available",
	"Low Stock Threshold",
	"Cost Price",
	"Stock Value",
	"Available Value",
	"Status",
}

// WriteInventory renders the report as a two-sheet workbook.
func WriteInventory(w io.Writer, report *domain.InventoryReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", inventorySheet); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	if err := writeRow(f, inventorySheet, 1, toCells(inventoryColumns)); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(inventoryColumns), 1)
	if err := f.SetCellStyle(inventorySheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	for i, item := range report.Items {
		row := i + 2
		cost, _ := item.CostPrice.Float64()
		stockValue, _ := item.StockValue.Float64()
		availableValue, _ := item.AvailableValue.Float64()
		err := writeRow(f, inventorySheet, row, []interface{}{
			item.Name,
			item.SKU,
			item.StockQty,
			item.BlockedQty,
			item.AvailableQty,
			item.LowStockThreshold,
			cost,
			stockValue,
			availableValue,
			string(item.Status),
		})
		if err != nil {
			return err
		}
	}
	if n := len(report.Items); n > 0 {
		if err := f.SetCellStyle(inventorySheet, "G2", fmt.Sprintf("I%d", n+1), moneyStyle); err != nil {
			return fmt.Errorf("xlsxexport: %w", err)
		}
	}
	if err := f.SetColWidth(inventorySheet, "A", "A", 36); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	if err := f.SetPanes(inventorySheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}

	if err := writeSummary(f, report, headerStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("xlsxexport: writing workbook: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, report *domain.InventoryReport, headerStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	s := report.Summary
	stockValue, _ := s.TotalStockValue.Float64()
	availableValue, _ := s.TotalAvailableValue.Float64()
	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Generated At", report.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Products", s.TotalProducts},
		{"Total Stock", s.TotalStock},
		{"Blocked", s.TotalBlocked},
		{"Available", s.TotalAvailable},
		{"Stock Value", stockValue},
		{"Available Value", availableValue},
		{"Out Of Stock", s.OutOfStock},
		{"Low Stock", s.LowStock},
		{"Reserved Low", s.ReservedLow},
	}
	for i, r := range rows {
		if err := writeRow(f, summarySheet, i+1, r); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	return f.SetColWidth(summarySheet, "A", "A", 20)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("xlsxexport: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("xlsxexport: row %d: %w", row, err)
	}
	return nil
}

func toCells(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
