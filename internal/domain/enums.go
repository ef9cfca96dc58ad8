package domain

// UserRole is the role carried in access tokens.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

// ValidUserRoles lists the roles an account can hold.
var ValidUserRoles = map[UserRole]bool{
	RoleAdmin:    true,
	RoleCustomer: true,
}

// OrderStatus represents the lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidOrderStatuses lists every known order status.
var ValidOrderStatuses = map[OrderStatus]bool{
	OrderStatusPending:    true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransition reports whether an order may move from one status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// BlocksStock reports whether items of an order in this status are reserved.
func (s OrderStatus) BlocksStock() bool {
	return s == OrderStatusPending || s == OrderStatusProcessing
}

// PaymentMethod is how an order was paid for.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodUPI    PaymentMethod = "upi"
	PaymentMethodCard   PaymentMethod = "card"
)

// POSPaymentMethods are the methods accepted at the counter.
var POSPaymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash: true,
	PaymentMethodUPI:  true,
	PaymentMethodCard: true,
}

// PaymentStatus tracks settlement of an order.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// NotificationType classifies user notifications.
type NotificationType string

const (
	NotificationOrderShipped   NotificationType = "order_shipped"
	NotificationOrderDelivered NotificationType = "order_delivered"
	NotificationRoleChange     NotificationType = "role_change"
	NotificationGeneral        NotificationType = "general"
)

// StockStatus is the inventory classification of a product.
type StockStatus string

const (
	StockOutOfStock  StockStatus = "out_of_stock"
	StockLow         StockStatus = "low_stock"
	StockReservedLow StockStatus = "reserved_low"
	StockInStock     StockStatus = "in_stock"
)
