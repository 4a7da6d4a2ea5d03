package payments

import (
	"context"
	"errors"
	"sync"
)

var ErrConfirmationClosed = errors.New("confirmation source closed")

type Confirmation struct {
	OrderID        string
	PaymentID      string
	GatewayOrderID string
	Signature      string
	Source         string
}

// ConfirmationSource produces the single "payment completed" signal for a
// checkout attempt. Implementations differ in how trustworthy the signal
// is: a manual acknowledgment is the customer's word, a gateway callback is
// signature verified before it resolves.
type ConfirmationSource interface {
	// Await blocks until the payer confirms, the source is closed, or ctx
	// is cancelled.
	Await(ctx context.Context) (Confirmation, error)
	// Close discards the pending confirmation. Safe to call more than once.
	Close()
}

// ManualAcknowledgment resolves when the customer clicks "I've completed
// the payment". Used for the UPI and bank-transfer paths, where no gateway
// callback exists.
type ManualAcknowledgment struct {
	orderID string
	ch      chan Confirmation
	once    sync.Once
	done    chan struct{}
}

func NewManualAcknowledgment(orderID string) *ManualAcknowledgment {
	return &ManualAcknowledgment{
		orderID: orderID,
		ch:      make(chan Confirmation, 1),
		done:    make(chan struct{}),
	}
}

func (m *ManualAcknowledgment) Acknowledge() {
	select {
	case m.ch <- Confirmation{OrderID: m.orderID, Source: "manual"}:
	default:
	}
}

func (m *ManualAcknowledgment) Await(ctx context.Context) (Confirmation, error) {
	select {
	case <-ctx.Done():
		return Confirmation{}, ctx.Err()
	case <-m.done:
		return Confirmation{}, ErrConfirmationClosed
	case c := <-m.ch:
		return c, nil
	}
}

func (m *ManualAcknowledgment) Close() {
	m.once.Do(func() { close(m.done) })
}

// GatewayCallback resolves when the hosted checkout invokes its success
// callback with a valid signature. Unverifiable callbacks are dropped.
type GatewayCallback struct {
	verifier interface {
		VerifyCallback(gatewayOrderID, paymentID, signature string) bool
	}
	ch   chan Confirmation
	once sync.Once
	done chan struct{}
}

func NewGatewayCallback(verifier interface {
	VerifyCallback(gatewayOrderID, paymentID, signature string) bool
}) *GatewayCallback {
	return &GatewayCallback{
		verifier: verifier,
		ch:       make(chan Confirmation, 1),
		done:     make(chan struct{}),
	}
}

// Resolve reports whether the callback was accepted.
func (g *GatewayCallback) Resolve(c Confirmation) bool {
	if !g.verifier.VerifyCallback(c.GatewayOrderID, c.PaymentID, c.Signature) {
		return false
	}
	c.Source = "gateway"
	select {
	case g.ch <- c:
		return true
	default:
		return false
	}
}

func (g *GatewayCallback) Await(ctx context.Context) (Confirmation, error) {
	select {
	case <-ctx.Done():
		return Confirmation{}, ctx.Err()
	case <-g.done:
		return Confirmation{}, ErrConfirmationClosed
	case c := <-g.ch:
		return c, nil
	}
}

func (g *GatewayCallback) Close() {
	g.once.Do(func() { close(g.done) })
}
