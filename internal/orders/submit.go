package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sonuarjun3120/krishpafoods/internal/cart"
	"github.com/sonuarjun3120/krishpafoods/internal/delivery"
	"github.com/sonuarjun3120/krishpafoods/internal/events"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

// Client totals are recomputed from the catalog; anything beyond a paisa of
// rounding drift is rejected.
const totalTolerance = 0.01

type SubmitParams struct {
	Details       delivery.Details
	Lines         []cart.Line
	PaymentMethod string
	UserEmail     string
	ClientTotal   float64
}

type OrderRef struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Submit runs the checkout preconditions, recomputes the total from the
// catalog, and persists the order with its pending notification rows in one
// transaction. Message rendering is deferred to the dispatcher for these
// rows, so messages stay NULL here.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (OrderRef, error) {
	if len(params.Lines) == 0 {
		return OrderRef{}, ErrEmptyCart
	}
	if params.Details.Phone == "" {
		return OrderRef{}, ErrMissingPhone
	}

	total, err := s.recomputeTotal(ctx, params.Lines)
	if err != nil {
		return OrderRef{}, err
	}
	if math.Abs(total-params.ClientTotal) > totalTolerance {
		s.logger.Warn("order total mismatch",
			"clientTotal", params.ClientTotal,
			"catalogTotal", total,
			"phone", params.Details.Phone,
		)
		return OrderRef{}, ErrTotalMismatch
	}

	arg, err := buildCreateOrderParams(params, total)
	if err != nil {
		return OrderRef{}, err
	}

	order, err := s.repo.CreateOrderWithNotifications(ctx, arg, s.submissionSeeds(params.Details.Phone))
	if err != nil {
		return OrderRef{}, fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	s.logger.Info("order created",
		"orderId", order.ID.String(),
		"phone", order.UserPhone,
		"paymentMethod", order.PaymentMethod,
		"total", total,
	)

	s.publishOrderCreated(ctx, order, params.Lines)

	return OrderRef{ID: order.ID.String(), Status: order.Status}, nil
}

// recomputeTotal prices every line against product_variants and adds the
// flat shipping model, so a tampered client total can never be persisted.
func (s *Service) recomputeTotal(ctx context.Context, lines []cart.Line) (float64, error) {
	priced := cart.Cart{Lines: make([]cart.Line, 0, len(lines))}

	for _, line := range lines {
		var productUUID pgtype.UUID
		if err := productUUID.Scan(line.ProductID); err != nil {
			return 0, fmt.Errorf("%w: bad product id %q", ErrUnknownProduct, line.ProductID)
		}

		variant, err := s.repo.GetProductVariant(ctx, repository.GetProductVariantParams{
			ProductID:   productUUID,
			WeightLabel: line.Weight,
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return 0, fmt.Errorf("%w: %s %s", ErrUnknownProduct, line.ProductID, line.Weight)
			}
			return 0, fmt.Errorf("failed to price cart line: %w", err)
		}

		price, err := variant.Price.Float64Value()
		if err != nil {
			return 0, fmt.Errorf("failed to read variant price: %w", err)
		}

		line.UnitPrice = price.Float64
		priced.Lines = append(priced.Lines, line)
	}

	return priced.Total(), nil
}

func buildCreateOrderParams(params SubmitParams, total float64) (repository.CreateOrderParams, error) {
	items, err := json.Marshal(params.Lines)
	if err != nil {
		return repository.CreateOrderParams{}, fmt.Errorf("failed to encode cart lines: %w", err)
	}

	address, err := json.Marshal(params.Details)
	if err != nil {
		return repository.CreateOrderParams{}, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	var totalAmount pgtype.Numeric
	if err := totalAmount.Scan(fmt.Sprintf("%.2f", total)); err != nil {
		return repository.CreateOrderParams{}, fmt.Errorf("failed to parse total amount: %w", err)
	}

	userEmail := pgtype.Text{String: params.UserEmail, Valid: params.UserEmail != ""}

	return repository.CreateOrderParams{
		UserName:        params.Details.RecipientName,
		UserPhone:       params.Details.Phone,
		UserEmail:       userEmail,
		TotalAmount:     totalAmount,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   params.PaymentMethod,
	}, nil
}

// submissionSeeds enqueues the four channel/recipient pairs with NULL
// messages: customer WhatsApp plus the store owner's WhatsApp, SMS and
// email.
func (s *Service) submissionSeeds(customerPhone string) []repository.NotificationSeed {
	return []repository.NotificationSeed{
		{Type: "whatsapp", Recipient: customerPhone},
		{Type: "whatsapp", Recipient: s.contacts.OwnerPhone},
		{Type: "sms", Recipient: s.contacts.OwnerPhone},
		{Type: "email", Recipient: s.contacts.OwnerEmail},
	}
}

func (s *Service) publishOrderCreated(ctx context.Context, order repository.Order, lines []cart.Line) {
	total, err := order.TotalAmount.Float64Value()
	if err != nil {
		s.logger.Error("failed to read order total for event", "orderId", order.ID.String(), "error", err)
		return
	}

	eventItems := make([]events.OrderItem, len(lines))
	for i, l := range lines {
		eventItems[i] = events.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Weight:    l.Weight,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
		}
	}

	event := events.OrderCreatedEvent{
		OrderID:       order.ID.String(),
		UserName:      order.UserName,
		UserPhone:     order.UserPhone,
		UserEmail:     order.UserEmail.String,
		TotalAmount:   total.Float64,
		PaymentMethod: order.PaymentMethod,
		Items:         eventItems,
	}

	encoded, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("failed to marshal OrderCreatedEvent", "orderId", event.OrderID, "error", err)
		return
	}

	// Fire and forget: the order is already committed, a lost event only
	// delays notification dispatch until the next poll.
	if err := s.publisher.Publish(ctx, events.OrderCreatedExchange, encoded); err != nil {
		s.logger.Error("failed to publish OrderCreatedEvent", "orderId", event.OrderID, "error", err)
	}
}
