package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
	"amorlias/internal/gst"
	"amorlias/internal/port"
)

// ReportService provides GST reporting over recorded orders.
type ReportService interface {
	// TaxSummary buckets output tax by period, split into intra-state
	// (CGST+SGST) and inter-state (IGST) supplies.
	TaxSummary(ctx context.Context, filter domain.ReportFilter) ([]domain.TaxSummaryRow, error)
	// HSNSummary totals sold lines per HSN code and rate, ordered by code.
	HSNSummary(ctx context.Context, filter domain.OrderFilter) ([]domain.HSNSummaryRow, error)
}

type reportService struct {
	orders   port.OrderRepository
	settings SettingsService
}

// NewReportService creates a new ReportService.
func NewReportService(orders port.OrderRepository, settings SettingsService) ReportService {
	return &reportService{orders: orders, settings: settings}
}

// taxedOrder is an order with its lines already run through the calculator.
type taxedOrder struct {
	order *domain.Order
	intra bool
	lines []gst.LineTax
}

func (s *reportService) load(ctx context.Context, filter domain.OrderFilter) ([]taxedOrder, error) {
	seller, err := s.settings.Seller(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]taxedOrder, 0, len(orders))
	for i := range orders {
		o := &orders[i]
		if filter.Status == "" && o.Status == domain.OrderStatusCancelled {
			continue
		}
		t := taxedOrder{order: o, intra: gst.IsIntraState(o.ShippingAddress.State, seller.State)}
		for _, item := range o.Items {
			line, err := gst.ComputeLine(gst.LineItem{
				ProductName:         item.ProductName,
				HSNCode:             item.HSNCode,
				Quantity:            item.Quantity,
				PriceInclusiveOfTax: item.LineTotal,
				TaxRatePercent:      item.TaxRate,
			}, t.intra)
			if err != nil {
				return nil, fmt.Errorf("reportService: order %s: %w", o.OrderNumber, err)
			}
			t.lines = append(t.lines, line)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *reportService) TaxSummary(ctx context.Context, filter domain.ReportFilter) ([]domain.TaxSummaryRow, error) {
	g := filter.Granularity
	if g == "" {
		g = domain.GranularityMonthly
	}
	if !domain.ValidGranularities[g] {
		return nil, fmt.Errorf("granularity %q: %w", g, domain.ErrInvalidArgument)
	}

	orders, err := s.load(ctx, filter.OrderFilter)
	if err != nil {
		return nil, err
	}

	// ListAll orders by created_at, so periods arrive in order.
	var rows []domain.TaxSummaryRow
	for _, t := range orders {
		start := periodStart(t.order.CreatedAt, g)
		if len(rows) == 0 || !rows[len(rows)-1].PeriodStart.Equal(start) {
			rows = append(rows, domain.TaxSummaryRow{
				Period:      formatPeriod(start, g),
				PeriodStart: start,
				PeriodEnd:   periodEnd(start, g),
			})
		}
		row := &rows[len(rows)-1]
		row.OrderCount++
		if t.intra {
			row.IntraStateOrders++
		} else {
			row.InterStateOrders++
		}
		for _, line := range t.lines {
			if t.intra {
				row.IntraStateTaxable = row.IntraStateTaxable.Add(line.TaxableValue)
				row.CGST = row.CGST.Add(nullZero(line.Breakup.CGST))
				row.SGST = row.SGST.Add(nullZero(line.Breakup.SGST))
			} else {
				row.InterStateTaxable = row.InterStateTaxable.Add(line.TaxableValue)
				row.IGST = row.IGST.Add(nullZero(line.Breakup.IGST))
			}
			row.TotalTax = row.TotalTax.Add(line.Breakup.TotalTax)
			row.GrandTotal = row.GrandTotal.Add(line.LineTotal)
		}
	}
	if rows == nil {
		rows = []domain.TaxSummaryRow{}
	}
	return rows, nil
}

func (s *reportService) HSNSummary(ctx context.Context, filter domain.OrderFilter) ([]domain.HSNSummaryRow, error) {
	orders, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}

	type key struct {
		code string
		rate string
	}
	byKey := make(map[key]*domain.HSNSummaryRow)
	for _, t := range orders {
		for _, line := range t.lines {
			k := key{code: line.Item.HSNCode, rate: line.Item.TaxRatePercent.String()}
			row, ok := byKey[k]
			if !ok {
				row = &domain.HSNSummaryRow{HSNCode: k.code, TaxRate: line.Item.TaxRatePercent}
				byKey[k] = row
			}
			row.Quantity += line.Item.Quantity
			row.LineCount++
			row.TaxableValue = row.TaxableValue.Add(line.TaxableValue)
			row.CGST = row.CGST.Add(nullZero(line.Breakup.CGST))
			row.SGST = row.SGST.Add(nullZero(line.Breakup.SGST))
			row.IGST = row.IGST.Add(nullZero(line.Breakup.IGST))
			row.TotalTax = row.TotalTax.Add(line.Breakup.TotalTax)
			row.TotalValue = row.TotalValue.Add(line.LineTotal)
		}
	}

	rows := make([]domain.HSNSummaryRow, 0, len(byKey))
	for _, row := range byKey {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].HSNCode != rows[j].HSNCode {
			return rows[i].HSNCode < rows[j].HSNCode
		}
		return rows[i].TaxRate.LessThan(rows[j].TaxRate)
	})
	return rows, nil
}

func nullZero(v decimal.NullDecimal) decimal.Decimal {
	if !v.Valid {
		return decimal.Zero
	}
	return v.Decimal
}
