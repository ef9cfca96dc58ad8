// Package email builds the bodies of transactional mails. Delivery lives in
// the ses and noop subpackages.
package email

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"amorlias/internal/port"
)

// Message is a rendered email.
type Message struct {
	Subject string
	HTML    string
	Text    string
}

// TrackingURL links to the customer's order page in the storefront.
func TrackingURL(frontendURL, orderNumber string) string {
	return fmt.Sprintf("%s/orders?number=%s", strings.TrimRight(frontendURL, "/"), url.QueryEscape(orderNumber))
}

// ShipmentMessage renders the "order shipped" mail.
func ShipmentMessage(toName, frontendURL string, msg port.ShipmentEmail) Message {
	if toName == "" {
		toName = "there"
	}
	link := TrackingURL(frontendURL, msg.OrderNumber)
	subject := fmt.Sprintf("Your Amorlias order %s has shipped", msg.OrderNumber)

	var text strings.Builder
	fmt.Fprintf(&text, "Hi %s,\n\n", toName)
	if msg.Message != "" {
		fmt.Fprintf(&text, "%s\n\n", msg.Message)
	}
	fmt.Fprintf(&text, "Order: %s\nCourier: %s\nTracking number: %s\n\n", msg.OrderNumber, msg.Courier, msg.TrackingNumber)
	fmt.Fprintf(&text, "Track your order: %s\n\nTeam Amorlias", link)

	return Message{
		Subject: subject,
		HTML:    buildShipmentHTML(toName, link, msg),
		Text:    text.String(),
	}
}

func buildShipmentHTML(name, link string, msg port.ShipmentEmail) string {
	e := html.EscapeString
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your order is on its way</h2>
  <p>Hi %s,</p>
  <p>%s</p>
  <table style="border-collapse: collapse; margin: 20px 0;">
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Order</td><td><strong>%s</strong></td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Courier</td><td>%s</td></tr>
    <tr><td style="padding: 4px 12px 4px 0; color: #666;">Tracking number</td><td>%s</td></tr>
  </table>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #B4236B; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Track Order</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Amorlias</p>
</body>
</html>`, e(name), e(msg.Message), e(msg.OrderNumber), e(msg.Courier), e(msg.TrackingNumber), e(link))
}
