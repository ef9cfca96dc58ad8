package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Address is a postal address stored as JSONB on orders and settings.
type Address struct {
	Name    string `json:"name"`
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone,omitempty"`
}

// IsZero reports whether no part of the address has been filled in.
func (a Address) IsZero() bool {
	return a.Line1 == "" && a.City == "" && a.State == "" && a.Pincode == ""
}

func (a Address) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *Address) Scan(src interface{}) error {
	return scanJSON(src, a)
}

// OrderItem is one line of an order. LineTotal is the amount charged for the
// whole line and already includes GST.
type OrderItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku,omitempty"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"price"`
	LineTotal   decimal.Decimal `json:"line_total"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

// OrderItems is the JSONB representation of an order's lines.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(items)
}

func (items *OrderItems) Scan(src interface{}) error {
	return scanJSON(src, items)
}

// StringList is a JSONB array of strings.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// JSONB is a raw JSON document column.
type JSONB json.RawMessage

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSONB) UnmarshalJSON(b []byte) error {
	*j = append((*j)[:0], b...)
	return nil
}

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return []byte("{}"), nil
	}
	return []byte(j), nil
}

func (j *JSONB) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append(JSONB(nil), v...)
	case string:
		*j = JSONB(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
	return nil
}

// Decode unmarshals the document into v. An empty document leaves v untouched.
func (j JSONB) Decode(v interface{}) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, v)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", src)
	}
}

// Order is a customer or counter order.
type Order struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	OrderNumber     string          `db:"order_number" json:"order_number"`
	UserID          *uuid.UUID      `db:"user_id" json:"user_id,omitempty"`
	Items           OrderItems      `db:"items" json:"items"`
	ShippingAddress Address         `db:"shipping_address" json:"shipping_address"`
	Courier         string          `db:"courier" json:"courier"`
	TrackingNumber  string          `db:"tracking_number" json:"tracking_number"`
	IsCOD           bool            `db:"is_cod" json:"is_cod"`
	PaymentMethod   PaymentMethod   `db:"payment_method" json:"payment_method"`
	PaymentStatus   PaymentStatus   `db:"payment_status" json:"payment_status"`
	Status          OrderStatus     `db:"status" json:"status"`
	IsOffline       bool            `db:"is_offline" json:"is_offline"`
	CustomerPhone   string          `db:"customer_phone" json:"customer_phone,omitempty"`
	Subtotal        decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxTotal        decimal.Decimal `db:"tax_total" json:"tax_total"`
	GrandTotal      decimal.Decimal `db:"grand_total" json:"grand_total"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// OrderFilter narrows order listings. An empty Status means all statuses.
type OrderFilter struct {
	UserID *uuid.UUID
	Status OrderStatus
	From   *time.Time
	To     *time.Time
}

// Product is a catalog entry.
type Product struct {
	ID                uuid.UUID           `db:"id" json:"id"`
	Name              string              `db:"name" json:"name"`
	Description       string              `db:"description" json:"description"`
	CategoryID        *uuid.UUID          `db:"category_id" json:"category_id,omitempty"`
	SKU               string              `db:"sku" json:"sku"`
	MRP               decimal.Decimal     `db:"mrp" json:"mrp"`
	SellingPrice      decimal.Decimal     `db:"selling_price" json:"selling_price"`
	WholesalePrice    decimal.NullDecimal `db:"wholesale_price" json:"wholesale_price"`
	WholesaleMinQty   int                 `db:"wholesale_min_qty" json:"wholesale_min_qty"`
	CostPrice         decimal.Decimal     `db:"cost_price" json:"cost_price"`
	StockQty          int                 `db:"stock_qty" json:"stock_qty"`
	LowStockThreshold int                 `db:"low_stock_threshold" json:"low_stock_threshold"`
	GSTRate           decimal.Decimal     `db:"gst_rate" json:"gst_rate"`
	HSNCode           string              `db:"hsn_code" json:"hsn_code"`
	Images            StringList          `db:"images" json:"images"`
	IsActive          bool                `db:"is_active" json:"is_active"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at" json:"updated_at"`
}

// BusinessSettings is the singleton seller configuration.
type BusinessSettings struct {
	BusinessName     string          `db:"business_name" json:"business_name"`
	CompanyName      string          `db:"company_name" json:"company_name"`
	GSTNumber        string          `db:"gst_number" json:"gst_number"`
	Phone            string          `db:"phone" json:"phone"`
	Email            string          `db:"email" json:"email"`
	Address          Address         `db:"address" json:"address"`
	EnableGSTBilling bool            `db:"enable_gst_billing" json:"enable_gst_billing"`
	DefaultGSTRate   decimal.Decimal `db:"default_gst_rate" json:"default_gst_rate"`
	InvoicePrefix    string          `db:"invoice_prefix" json:"invoice_prefix"`
	OrderPrefix      string          `db:"order_prefix" json:"order_prefix"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// DefaultBusinessSettings returns the settings used before an admin saves any.
func DefaultBusinessSettings() *BusinessSettings {
	return &BusinessSettings{
		EnableGSTBilling: true,
		DefaultGSTRate:   decimal.NewFromInt(18),
		InvoicePrefix:    "INV",
		OrderPrefix:      "ORD",
	}
}

// Notification is a message addressed to a single user.
type Notification struct {
	ID        uuid.UUID        `db:"id" json:"id"`
	UserID    uuid.UUID        `db:"user_id" json:"user_id"`
	Type      NotificationType `db:"type" json:"type"`
	Title     string           `db:"title" json:"title"`
	Message   string           `db:"message" json:"message"`
	Data      JSONB            `db:"data" json:"data,omitempty"`
	Read      bool             `db:"read" json:"read"`
	EmailedAt *time.Time       `db:"emailed_at" json:"emailed_at,omitempty"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
}

// PendingEmail is a notification claimed for delivery, joined with its recipient.
type PendingEmail struct {
	Notification
	Email    string `db:"email" json:"email"`
	FullName string `db:"full_name" json:"full_name"`
}

// InventoryRow is one product line of the inventory report.
type InventoryRow struct {
	ProductID         uuid.UUID       `db:"product_id" json:"product_id"`
	Name              string          `db:"name" json:"name"`
	SKU               string          `db:"sku" json:"sku"`
	StockQty          int             `db:"stock_qty" json:"stock_qty"`
	BlockedQty        int             `db:"blocked_qty" json:"blocked_qty"`
	AvailableQty      int             `db:"-" json:"available_qty"`
	LowStockThreshold int             `db:"low_stock_threshold" json:"low_stock_threshold"`
	CostPrice         decimal.Decimal `db:"cost_price" json:"cost_price"`
	StockValue        decimal.Decimal `db:"-" json:"stock_value"`
	AvailableValue    decimal.Decimal `db:"-" json:"available_value"`
	Status            StockStatus     `db:"-" json:"status"`
}

// InventorySummary aggregates an inventory report.
type InventorySummary struct {
	TotalProducts       int             `json:"total_products"`
	TotalStock          int             `json:"total_stock"`
	TotalBlocked        int             `json:"total_blocked"`
	TotalAvailable      int             `json:"total_available"`
	TotalStockValue     decimal.Decimal `json:"total_stock_value"`
	TotalAvailableValue decimal.Decimal `json:"total_available_value"`
	OutOfStock          int             `json:"out_of_stock"`
	LowStock            int             `json:"low_stock"`
	ReservedLow         int             `json:"reserved_low"`
}

// InventoryReport is the full inventory snapshot.
type InventoryReport struct {
	Items       []InventoryRow   `json:"items"`
	Summary     InventorySummary `json:"summary"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// DashboardStats aggregates order and catalog counts for the admin dashboard.
// Since is nil for all-time figures.
type DashboardStats struct {
	Since              *time.Time      `db:"-" json:"since,omitempty"`
	TotalOrders        int             `db:"total_orders" json:"total_orders"`
	PendingOrders      int             `db:"pending_orders" json:"pending_orders"`
	ProcessingOrders   int             `db:"processing_orders" json:"processing_orders"`
	ShippedOrders      int             `db:"shipped_orders" json:"shipped_orders"`
	DeliveredOrders    int             `db:"delivered_orders" json:"delivered_orders"`
	CancelledOrders    int             `db:"cancelled_orders" json:"cancelled_orders"`
	OfflineSales       int             `db:"offline_sales" json:"offline_sales"`
	Revenue            decimal.Decimal `db:"revenue" json:"revenue"`
	TaxCollected       decimal.Decimal `db:"tax_collected" json:"tax_collected"`
	TotalProducts      int             `db:"total_products" json:"total_products"`
	ActiveProducts     int             `db:"active_products" json:"active_products"`
	LowStockProducts   int             `db:"low_stock_products" json:"low_stock_products"`
	OutOfStockProducts int             `db:"out_of_stock_products" json:"out_of_stock_products"`
	TotalCustomers     int             `db:"total_customers" json:"total_customers"`
}

// Granularity is the bucket size of a periodic report.
type Granularity string

const (
	GranularityDaily     Granularity = "daily"
	GranularityWeekly    Granularity = "weekly"
	GranularityMonthly   Granularity = "monthly"
	GranularityQuarterly Granularity = "quarterly"
	GranularityYearly    Granularity = "yearly"
)

// ValidGranularities lists the accepted report granularities.
var ValidGranularities = map[Granularity]bool{
	GranularityDaily:     true,
	GranularityWeekly:    true,
	GranularityMonthly:   true,
	GranularityQuarterly: true,
	GranularityYearly:    true,
}

// ReportFilter selects the orders a report covers. Cancelled orders are
// left out unless Status asks for them.
type ReportFilter struct {
	OrderFilter
	Granularity Granularity
}

// TaxSummaryRow is one period of output tax, split by supply type.
type TaxSummaryRow struct {
	Period            string          `json:"period"`
	PeriodStart       time.Time       `json:"period_start"`
	PeriodEnd         time.Time       `json:"period_end"`
	OrderCount        int             `json:"order_count"`
	IntraStateOrders  int             `json:"intrastate_count"`
	IntraStateTaxable decimal.Decimal `json:"intrastate_taxable"`
	CGST              decimal.Decimal `json:"cgst"`
	SGST              decimal.Decimal `json:"sgst"`
	InterStateOrders  int             `json:"interstate_count"`
	InterStateTaxable decimal.Decimal `json:"interstate_taxable"`
	IGST              decimal.Decimal `json:"igst"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
}

// HSNSummaryRow aggregates sold lines per HSN code and rate.
type HSNSummaryRow struct {
	HSNCode      string          `json:"hsn_code"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Quantity     int             `json:"quantity"`
	LineCount    int             `json:"line_count"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// User is a storefront account. Credentials live with the identity provider.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Role      UserRole  `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
