package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

var ErrGatewayOrderCreation = errors.New("failed to create gateway order")

type GatewayOrder struct {
	ID       string  `json:"id"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId"`
}

// Gateway wraps the Razorpay client. The key secret is also used to verify
// checkout callback signatures.
type Gateway struct {
	client *razorpay.Client
	keyID  string
	secret string
	logger logs.Logger
}

func NewGateway(keyID, secret string, logger logs.Logger) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, secret),
		keyID:  keyID,
		secret: secret,
		logger: logger,
	}
}

// CreateOrder registers the internal order with the gateway. The receipt is
// the internal order id, so a gateway order can always be traced back.
func (g *Gateway) CreateOrder(ctx context.Context, internalOrderID string, amount float64) (GatewayOrder, error) {
	if err := ctx.Err(); err != nil {
		return GatewayOrder{}, err
	}

	// Razorpay amounts are integer paise.
	paise := int64(math.Round(amount * 100))
	data := map[string]interface{}{
		"amount":   paise,
		"currency": "INR",
		"receipt":  internalOrderID,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Error("razorpay order creation failed", "orderId", internalOrderID, "error", err)
		return GatewayOrder{}, fmt.Errorf("%w: %v", ErrGatewayOrderCreation, err)
	}

	gatewayOrderID, ok := body["id"].(string)
	if !ok || gatewayOrderID == "" {
		return GatewayOrder{}, fmt.Errorf("%w: response missing order id", ErrGatewayOrderCreation)
	}

	g.logger.Debug("razorpay order created", "orderId", internalOrderID, "razorpayOrderId", gatewayOrderID)

	return GatewayOrder{
		ID:       gatewayOrderID,
		Amount:   amount,
		Currency: "INR",
		KeyID:    g.keyID,
	}, nil
}

// VerifyCallback validates the signature returned by the hosted checkout.
func (g *Gateway) VerifyCallback(gatewayOrderID, paymentID, signature string) bool {
	return VerifySignature(gatewayOrderID, paymentID, signature, g.secret)
}
