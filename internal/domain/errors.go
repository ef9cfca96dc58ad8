package domain

import "errors"

var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrMissingAddress    = errors.New("order has no shipping address")
	ErrMissingItems      = errors.New("order has no items")
	ErrInvalidQuantity   = errors.New("item quantity must be at least 1")
	ErrInvalidTaxRate    = errors.New("invalid tax rate")
	ErrMissingSettings   = errors.New("seller settings are incomplete")
	ErrUnknownCourier    = errors.New("unknown courier")
	ErrDuplicateSKU      = errors.New("sku already exists")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrProductInactive   = errors.New("product is not active")
	ErrArchiveDisabled   = errors.New("label archiving is disabled")
	ErrUploadFailed      = errors.New("file upload to storage failed")
	ErrUploadsDisabled   = errors.New("image uploads are disabled")
	ErrUnsupportedFile   = errors.New("unsupported file type")
	ErrFileTooLarge      = errors.New("file too large")
)
