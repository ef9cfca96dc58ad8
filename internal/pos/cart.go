// Package pos holds the counter-sale cart. GST is charged on top of the
// selling prices at the business's default rate.
package pos

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
	"amorlias/internal/gst"
)

// Line is one product in the cart.
type Line struct {
	Product  domain.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
}

// Totals is the priced cart.
type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	GSTRate  decimal.Decimal `json:"gst_rate"`
	GST      decimal.Decimal `json:"gst"`
	Total    decimal.Decimal `json:"total"`
}

// Cart is not safe for concurrent use; each sale builds its own.
type Cart struct {
	lines []Line
	index map[uuid.UUID]int
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{index: make(map[uuid.UUID]int)}
}

// Add puts one unit of the product in the cart, or bumps its quantity.
func (c *Cart) Add(p domain.Product) error {
	return c.AddQuantity(p, 1)
}

// AddQuantity adds qty units of the product, checking stock first.
func (c *Cart) AddQuantity(p domain.Product, qty int) error {
	if qty < 1 {
		return fmt.Errorf("pos: quantity %d: %w", qty, domain.ErrInvalidQuantity)
	}
	if !p.IsActive {
		return fmt.Errorf("pos: %s: %w", p.Name, domain.ErrProductInactive)
	}
	if p.StockQty <= 0 {
		return fmt.Errorf("pos: %s: %w", p.Name, domain.ErrOutOfStock)
	}

	if i, ok := c.index[p.ID]; ok {
		next := c.lines[i].Quantity + qty
		if next > p.StockQty {
			return fmt.Errorf("pos: %s: only %d in stock: %w", p.Name, p.StockQty, domain.ErrInsufficientStock)
		}
		c.lines[i].Product = p
		c.lines[i].Quantity = next
		return nil
	}

	if qty > p.StockQty {
		return fmt.Errorf("pos: %s: only %d in stock: %w", p.Name, p.StockQty, domain.ErrInsufficientStock)
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{Product: p, Quantity: qty})
	return nil
}

// SetQuantity changes a line's quantity. Zero or less removes the line.
func (c *Cart) SetQuantity(productID uuid.UUID, qty int) error {
	i, ok := c.index[productID]
	if !ok {
		return domain.ErrNotFound
	}
	if qty <= 0 {
		c.Remove(productID)
		return nil
	}
	if qty > c.lines[i].Product.StockQty {
		return fmt.Errorf("pos: %s: only %d in stock: %w",
			c.lines[i].Product.Name, c.lines[i].Product.StockQty, domain.ErrInsufficientStock)
	}
	c.lines[i].Quantity = qty
	return nil
}

// Remove drops a product from the cart. Unknown ids are ignored.
func (c *Cart) Remove(productID uuid.UUID) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.lines); j++ {
		c.index[c.lines[j].Product.ID] = j
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[uuid.UUID]int)
}

// Len returns the number of distinct products.
func (c *Cart) Len() int { return len(c.lines) }

// Lines returns the priced lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, ln := range c.lines {
		ln.Amount = ln.Product.SellingPrice.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		out[i] = ln
	}
	return out
}

// Totals prices the cart with GST added on top at rate.
func (c *Cart) Totals(rate decimal.Decimal) (Totals, error) {
	subtotal := decimal.Zero
	for _, ln := range c.Lines() {
		subtotal = subtotal.Add(ln.Amount)
	}
	subtotal = gst.Round2(subtotal)
	tax, total, err := gst.AddOnTop(subtotal, rate)
	if err != nil {
		return Totals{}, fmt.Errorf("pos: rate %s: %w", rate, domain.ErrInvalidTaxRate)
	}
	return Totals{Subtotal: subtotal, GSTRate: rate, GST: tax, Total: total}, nil
}
