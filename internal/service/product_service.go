package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
	"amorlias/internal/gst"
	"amorlias/internal/port"
)

// ProductInput is the payload for creating or replacing a product.
type ProductInput struct {
	Name              string              `json:"name" binding:"required,max=200"`
	Description       string              `json:"description"`
	CategoryID        *uuid.UUID          `json:"category_id"`
	SKU               string              `json:"sku" binding:"required,max=64"`
	MRP               decimal.Decimal     `json:"mrp" binding:"money"`
	SellingPrice      decimal.Decimal     `json:"selling_price" binding:"money"`
	WholesalePrice    decimal.NullDecimal `json:"wholesale_price"`
	WholesaleMinQty   int                 `json:"wholesale_min_qty" binding:"gte=0"`
	CostPrice         decimal.Decimal     `json:"cost_price" binding:"money"`
	StockQty          int                 `json:"stock_qty" binding:"gte=0"`
	LowStockThreshold int                 `json:"low_stock_threshold" binding:"gte=0"`
	GSTRate           decimal.Decimal     `json:"gst_rate" binding:"gst_rate"`
	HSNCode           string              `json:"hsn_code" binding:"omitempty,numeric,min=4,max=8"`
	Images            []string            `json:"images"`
	IsActive          *bool               `json:"is_active"`
}

// ProductResult carries a saved product with advisory warnings.
type ProductResult struct {
	Product  *domain.Product `json:"product"`
	Warnings []string        `json:"warnings,omitempty"`
}

// ProductService manages the catalog.
type ProductService interface {
	Create(ctx context.Context, input ProductInput) (*ProductResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Product, int, error)
	Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo port.ProductRepository
	hsn  *gst.HSNLookup
}

// NewProductService creates a new ProductService. hsn may be empty, in which
// case no HSN warnings are produced.
func NewProductService(repo port.ProductRepository, hsn *gst.HSNLookup) ProductService {
	return &productService{repo: repo, hsn: hsn}
}

func (s *productService) Create(ctx context.Context, input ProductInput) (*ProductResult, error) {
	p := &domain.Product{IsActive: true}
	if err := applyProductInput(p, input); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return &ProductResult{Product: p, Warnings: s.hsnWarnings(p)}, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *productService) List(ctx context.Context, search string, offset, limit int) ([]domain.Product, int, error) {
	return s.repo.List(ctx, strings.TrimSpace(search), offset, limit)
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*ProductResult, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(p, input); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return &ProductResult{Product: p, Warnings: s.hsnWarnings(p)}, nil
}

func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Deactivate(ctx, id)
}

func applyProductInput(p *domain.Product, in ProductInput) error {
	if in.SellingPrice.IsNegative() || in.MRP.IsNegative() || in.CostPrice.IsNegative() {
		return fmt.Errorf("prices must not be negative: %w", domain.ErrInvalidArgument)
	}
	if in.GSTRate.IsNegative() || in.GSTRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("gst rate %s: %w", in.GSTRate, domain.ErrInvalidTaxRate)
	}
	if in.WholesalePrice.Valid && in.WholesalePrice.Decimal.IsNegative() {
		return fmt.Errorf("wholesale price must not be negative: %w", domain.ErrInvalidArgument)
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.CategoryID = in.CategoryID
	p.SKU = strings.ToUpper(strings.TrimSpace(in.SKU))
	p.MRP = in.MRP
	p.SellingPrice = in.SellingPrice
	p.WholesalePrice = in.WholesalePrice
	p.WholesaleMinQty = in.WholesaleMinQty
	p.CostPrice = in.CostPrice
	p.StockQty = in.StockQty
	p.LowStockThreshold = in.LowStockThreshold
	p.GSTRate = in.GSTRate
	p.HSNCode = strings.TrimSpace(in.HSNCode)
	p.Images = domain.StringList(in.Images)
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}

func (s *productService) hsnWarnings(p *domain.Product) []string {
	if p.HSNCode == "" || s.hsn.Len() == 0 {
		return nil
	}
	matched, valid := s.hsn.RateMatches(p.HSNCode, p.GSTRate)
	if len(valid) == 0 {
		return []string{fmt.Sprintf("HSN code %s is not in the HSN master", p.HSNCode)}
	}
	if matched {
		return nil
	}
	rates := make([]string, 0, len(valid))
	for _, r := range valid {
		rates = append(rates, r.Rate.String()+"%")
	}
	return []string{fmt.Sprintf("GST rate %s%% does not match HSN %s (expected %s)",
		p.GSTRate, p.HSNCode, strings.Join(rates, " or "))}
}
