package port

import "amorlias/internal/label"

// LabelRenderer turns an assembled label into a printable document.
type LabelRenderer interface {
	Render(l *label.ShippingLabel) ([]byte, error)
}
