package label

import (
	"fmt"
	"strings"

	"amorlias/internal/domain"
)

// SellerSettings is the part of the business settings printed as the
// sender and return address.
type SellerSettings struct {
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

// Validate checks that an order and seller settings carry everything a label
// needs. It stops at the first problem.
func Validate(order *domain.Order, seller SellerSettings) error {
	if order == nil {
		return fmt.Errorf("label: nil order: %w", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(seller.CompanyName) == "" || strings.TrimSpace(seller.State) == "" {
		return fmt.Errorf("label: company name and state are required: %w", domain.ErrMissingSettings)
	}

	addr := order.ShippingAddress
	if addr.IsZero() {
		return fmt.Errorf("label: order %s: %w", order.OrderNumber, domain.ErrMissingAddress)
	}
	if strings.TrimSpace(addr.City) == "" || strings.TrimSpace(addr.State) == "" {
		return fmt.Errorf("label: order %s: city and state are required: %w", order.OrderNumber, domain.ErrMissingAddress)
	}
	if strings.TrimSpace(addr.Pincode) == "" && strings.TrimSpace(seller.Pincode) == "" {
		return fmt.Errorf("label: order %s: no pincode for return code: %w", order.OrderNumber, domain.ErrMissingAddress)
	}

	if len(order.Items) == 0 {
		return fmt.Errorf("label: order %s: %w", order.OrderNumber, domain.ErrMissingItems)
	}
	for i := range order.Items {
		item := &order.Items[i]
		if item.Quantity < 1 {
			return fmt.Errorf("label: item %d (%s): %w", i, item.ProductName, domain.ErrInvalidQuantity)
		}
		if item.TaxRate.IsNegative() || item.TaxRate.GreaterThan(maxRate) {
			return fmt.Errorf("label: item %d (%s) rate %s: %w", i, item.ProductName, item.TaxRate, domain.ErrInvalidTaxRate)
		}
		if item.LineTotal.IsNegative() {
			return fmt.Errorf("label: item %d (%s) total %s: %w", i, item.ProductName, item.LineTotal, domain.ErrInvalidArgument)
		}
	}
	return nil
}
