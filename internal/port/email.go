package port

import "context"

// ShipmentEmail is the content of an "order shipped" mail.
type ShipmentEmail struct {
	OrderNumber    string
	Courier        string
	TrackingNumber string
	Message        string
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendOrderShippedEmail(ctx context.Context, toEmail, toName string, msg ShipmentEmail) error
}
