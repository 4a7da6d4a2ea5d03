package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sonuarjun3120/krishpafoods/internal/events"
	"github.com/sonuarjun3120/krishpafoods/internal/notifications"
	"github.com/sonuarjun3120/krishpafoods/internal/payments"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

type VerifyPaymentParams struct {
	OrderID        string
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// VerifyPayment completes the hosted-checkout path. The callback is run
// through a GatewayCallback confirmation source, so only a signature that
// checks out against the shared secret can resolve it; a failed check leaves
// the order pending with no rows written.
func (s *Service) VerifyPayment(ctx context.Context, params VerifyPaymentParams) error {
	order, err := s.loadPendingOrder(ctx, params.OrderID)
	if err != nil || order.Status == "confirmed" {
		return err
	}

	source := payments.NewGatewayCallback(s.verifier)
	defer source.Close()

	accepted := source.Resolve(payments.Confirmation{
		OrderID:        params.OrderID,
		GatewayOrderID: params.GatewayOrderID,
		PaymentID:      params.PaymentID,
		Signature:      params.Signature,
	})
	if !accepted {
		s.logger.Warn("payment signature rejected",
			"orderId", params.OrderID,
			"gatewayOrderId", params.GatewayOrderID,
			"paymentId", params.PaymentID,
		)
		return ErrInvalidSignature
	}

	confirmation, err := source.Await(ctx)
	if err != nil {
		return fmt.Errorf("failed to receive gateway confirmation: %w", err)
	}

	return s.confirm(ctx, order, confirmation)
}

// AcknowledgePayment completes the UPI and bank-transfer paths, where no
// gateway callback exists. The customer's "I've completed the payment" click
// drives a ManualAcknowledgment source; the resulting confirmation is
// recorded as unverified, and the store owner reconciles it against the bank
// statement before dispatch.
func (s *Service) AcknowledgePayment(ctx context.Context, orderID string) error {
	order, err := s.loadPendingOrder(ctx, orderID)
	if err != nil || order.Status == "confirmed" {
		return err
	}

	if order.PaymentMethod == string(payments.MethodRazorpay) {
		return ErrGatewayOrder
	}

	source := payments.NewManualAcknowledgment(orderID)
	defer source.Close()

	source.Acknowledge()
	confirmation, err := source.Await(ctx)
	if err != nil {
		return fmt.Errorf("failed to receive manual confirmation: %w", err)
	}

	return s.confirm(ctx, order, confirmation)
}

func (s *Service) loadPendingOrder(ctx context.Context, rawOrderID string) (repository.Order, error) {
	var orderID pgtype.UUID
	if err := orderID.Scan(rawOrderID); err != nil {
		return repository.Order{}, ErrOrderNotFound
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repository.Order{}, ErrOrderNotFound
		}
		return repository.Order{}, fmt.Errorf("failed to load order: %w", err)
	}

	// A replayed confirmation for an already confirmed order is a no-op.
	if order.Status == "confirmed" {
		s.logger.Info("payment confirmation replay ignored", "orderId", rawOrderID)
	}
	return order, nil
}

// confirm transitions the order and enqueues the rendered notification rows
// in one transaction, regardless of which source produced the confirmation.
func (s *Service) confirm(ctx context.Context, order repository.Order, confirmation payments.Confirmation) error {
	confirmed, err := s.repo.ConfirmOrderWithNotifications(ctx, repository.ConfirmOrderPaymentParams{
		ID:                order.ID,
		RazorpayOrderID:   pgtype.Text{String: confirmation.GatewayOrderID, Valid: confirmation.GatewayOrderID != ""},
		RazorpayPaymentID: pgtype.Text{String: confirmation.PaymentID, Valid: confirmation.PaymentID != ""},
	}, s.confirmationSeeds(order))
	if err != nil {
		return fmt.Errorf("failed to confirm order: %w", err)
	}

	s.logger.Info("payment confirmed",
		"orderId", confirmation.OrderID,
		"paymentId", confirmation.PaymentID,
		"source", confirmation.Source,
		"status", confirmed.Status,
	)

	s.publishPaymentConfirmed(ctx, confirmed)

	return nil
}

// confirmationSeeds carries fully rendered messages so the dispatcher can
// send them without another order lookup.
func (s *Service) confirmationSeeds(order repository.Order) []repository.NotificationSeed {
	digest := notifications.DigestFromOrder(order)

	customerMsg := pgtype.Text{String: notifications.CustomerConfirmationMessage(digest), Valid: true}
	storeMsg := pgtype.Text{String: notifications.StoreConfirmationMessage(digest), Valid: true}
	emailMsg := pgtype.Text{String: notifications.ConfirmationEmailHTML(digest), Valid: true}

	return []repository.NotificationSeed{
		{Type: "whatsapp", Recipient: order.UserPhone, Message: customerMsg},
		{Type: "whatsapp", Recipient: s.contacts.OwnerPhone, Message: storeMsg},
		{Type: "sms", Recipient: s.contacts.OwnerPhone, Message: storeMsg},
		{Type: "email", Recipient: s.contacts.OwnerEmail, Message: emailMsg},
	}
}

func (s *Service) publishPaymentConfirmed(ctx context.Context, order repository.Order) {
	total, _ := order.TotalAmount.Float64Value()

	event := events.PaymentConfirmedEvent{
		OrderID:           order.ID.String(),
		RazorpayOrderID:   order.RazorpayOrderID.String,
		RazorpayPaymentID: order.RazorpayPaymentID.String,
		TotalAmount:       total.Float64,
	}

	encoded, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal PaymentConfirmedEvent", "orderId", event.OrderID, "error", err)
		return
	}

	if err := s.publisher.Publish(ctx, events.PaymentConfirmedExchange, encoded); err != nil {
		s.logger.Error("failed to publish PaymentConfirmedEvent", "orderId", event.OrderID, "error", err)
	}
}
