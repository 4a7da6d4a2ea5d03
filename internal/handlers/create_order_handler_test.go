package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"github.com/sonuarjun3120/krishpafoods/internal/cart"
	"github.com/sonuarjun3120/krishpafoods/internal/delivery"
	"github.com/sonuarjun3120/krishpafoods/internal/handlers"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/payments"
	"github.com/sonuarjun3120/krishpafoods/internal/repository"
)

type stubCheckout struct {
	submitRef   orders.OrderRef
	submitErr   error
	submitCalls int
	verifyErr   error
	ackErr      error
	history     []repository.Order
	historyErr  error
	lastSubmit  orders.SubmitParams
	lastVerify  orders.VerifyPaymentParams
	lastAckID   string
}

func (s *stubCheckout) Submit(ctx context.Context, params orders.SubmitParams) (orders.OrderRef, error) {
	s.submitCalls++
	s.lastSubmit = params
	return s.submitRef, s.submitErr
}

func (s *stubCheckout) VerifyPayment(ctx context.Context, params orders.VerifyPaymentParams) error {
	s.lastVerify = params
	return s.verifyErr
}

func (s *stubCheckout) AcknowledgePayment(ctx context.Context, orderID string) error {
	s.lastAckID = orderID
	return s.ackErr
}

func (s *stubCheckout) History(ctx context.Context, phone, otpCode string) ([]repository.Order, error) {
	return s.history, s.historyErr
}

func validCreateOrderRequest() handlers.CreateOrderRequest {
	return handlers.CreateOrderRequest{
		Delivery: delivery.Input{
			RecipientName: "Lakshmi",
			Street:        "12 Temple Street",
			City:          "Vijayawada",
			State:         "Andhra Pradesh",
			PostalCode:    "520001",
			Phone:         "9876543210",
		},
		Items: []cart.Line{
			{ProductID: "8c2b5d1f-7e3a-4f69-b0c4-9d8e7a6f5c3b", Name: "Avakaya Mango Pickle", Weight: "500g", Quantity: 2},
		},
		PaymentMethod: "upi",
		Total:         708,
	}
}

func postCreateOrder(t *testing.T, handler *handlers.Handler, body any, sessionID string) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(encoded))
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	rec := httptest.NewRecorder()
	handler.CreateOrderHandler(rec, req)
	return rec
}

func TestCreateOrderHandler(t *testing.T) {
	logger := logs.NewSlogLogger()

	t.Run("Success With UPI Instructions", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()
		redisMock.ExpectDel("cart:session-1").SetVal(1)

		checkout := &stubCheckout{submitRef: orders.OrderRef{ID: "order-1", Status: "pending"}}
		handler := handlers.NewHandler(handlers.Config{
			Checkout: checkout,
			Carts:    cart.NewStore(rdb, logger),
			UPI:      payments.UPIDetails{VPA: "krishpa@upi", MerchantName: "Krishpa Foods"},
			Logger:   logger,
		})

		rec := postCreateOrder(t, handler, validCreateOrderRequest(), "session-1")

		assert.Equal(t, http.StatusCreated, rec.Code)

		var response handlers.CreateOrderResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "order-1", response.Order.ID)
		assert.Equal(t, "upi", response.Payment.Method)
		assert.Contains(t, response.Payment.UPILink, "upi://pay?")
		assert.Contains(t, response.Payment.UPILink, "am=708.00")
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("Unknown Payment Method", func(t *testing.T) {
		checkout := &stubCheckout{}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		body := validCreateOrderRequest()
		body.PaymentMethod = "cheque"
		rec := postCreateOrder(t, handler, body, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Zero(t, checkout.submitCalls)
	})

	t.Run("Delivery Validation Errors", func(t *testing.T) {
		checkout := &stubCheckout{}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		body := validCreateOrderRequest()
		body.Delivery.Phone = "12345"
		rec := postCreateOrder(t, handler, body, "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Zero(t, checkout.submitCalls)

		var response struct {
			Errors map[string]string `json:"errors"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Contains(t, response.Errors, "phone")
	})

	t.Run("Empty Cart", func(t *testing.T) {
		checkout := &stubCheckout{submitErr: orders.ErrEmptyCart}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		body := validCreateOrderRequest()
		body.Items = nil
		rec := postCreateOrder(t, handler, body, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Total Mismatch", func(t *testing.T) {
		checkout := &stubCheckout{submitErr: orders.ErrTotalMismatch}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		rec := postCreateOrder(t, handler, validCreateOrderRequest(), "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
