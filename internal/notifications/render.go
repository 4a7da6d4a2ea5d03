package notifications

import (
	"encoding/json"
	"fmt"

	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

const (
	PendingEmailSubject      = "New Order Received"
	ConfirmationEmailSubject = "Order Payment Confirmed"
)

// OrderDigest is the slice of an order that notification messages are
// rendered from.
type OrderDigest struct {
	OrderID       string
	CustomerName  string
	CustomerPhone string
	TotalAmount   float64
	PaymentMethod string
	ItemCount     int
}

func DigestFromOrder(order repository.Order) OrderDigest {
	total, _ := order.TotalAmount.Float64Value()

	itemCount := 0
	var lines []struct {
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal(order.Items, &lines); err == nil {
		for _, l := range lines {
			itemCount += l.Quantity
		}
	}

	return OrderDigest{
		OrderID:       order.ID.String(),
		CustomerName:  order.UserName,
		CustomerPhone: order.UserPhone,
		TotalAmount:   total.Float64,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     itemCount,
	}
}

func CustomerPendingMessage(d OrderDigest) string {
	return fmt.Sprintf(
		"Hi %s, we received your Krishpa Foods order %s for Rs.%.2f. We will confirm it as soon as your payment is verified.",
		d.CustomerName, d.OrderID, d.TotalAmount,
	)
}

func StorePendingMessage(d OrderDigest) string {
	return fmt.Sprintf(
		"New order %s from %s (%s): %d jars, Rs.%.2f, payment via %s.",
		d.OrderID, d.CustomerName, d.CustomerPhone, d.ItemCount, d.TotalAmount, d.PaymentMethod,
	)
}

func CustomerConfirmationMessage(d OrderDigest) string {
	return fmt.Sprintf(
		"Hi %s, payment for your Krishpa Foods order %s (Rs.%.2f) is confirmed. Your pickles are on the way!",
		d.CustomerName, d.OrderID, d.TotalAmount,
	)
}

func StoreConfirmationMessage(d OrderDigest) string {
	return fmt.Sprintf(
		"Payment confirmed for order %s from %s (%s): Rs.%.2f via %s. Prepare %d jars for dispatch.",
		d.OrderID, d.CustomerName, d.CustomerPhone, d.TotalAmount, d.PaymentMethod, d.ItemCount,
	)
}

func PendingEmailHTML(d OrderDigest) string {
	return emailEnvelope("New Order Received", fmt.Sprintf(
		"<p>Order <strong>%s</strong> was placed by %s (%s).</p>"+
			"<p>Items: %d jars<br>Total: Rs.%.2f<br>Payment method: %s</p>"+
			"<p>The order is awaiting payment confirmation.</p>",
		d.OrderID, d.CustomerName, d.CustomerPhone, d.ItemCount, d.TotalAmount, d.PaymentMethod,
	))
}

func ConfirmationEmailHTML(d OrderDigest) string {
	return emailEnvelope("Order Payment Confirmed", fmt.Sprintf(
		"<p>Payment for order <strong>%s</strong> from %s (%s) is confirmed.</p>"+
			"<p>Items: %d jars<br>Total: Rs.%.2f<br>Payment method: %s</p>"+
			"<p>Please prepare the order for dispatch.</p>",
		d.OrderID, d.CustomerName, d.CustomerPhone, d.ItemCount, d.TotalAmount, d.PaymentMethod,
	))
}

func emailEnvelope(heading, body string) string {
	return fmt.Sprintf(
		"<html><body><h2>%s</h2>%s<p>Krishpa Foods</p></body></html>",
		heading, body,
	)
}
