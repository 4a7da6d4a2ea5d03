package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonuarjun3120/krishpafoods/internal/handlers"
	"github.com/sonuarjun3120/krishpafoods/internal/logs"
	"github.com/sonuarjun3120/krishpafoods/internal/orders"
)

func postAcknowledgePayment(t *testing.T, handler *handlers.Handler, body handlers.AcknowledgePaymentRequest) *httptest.ResponseRecorder {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/payments/acknowledge", bytes.NewReader(encoded))
	rec := httptest.NewRecorder()
	handler.AcknowledgePaymentHandler(rec, req)
	return rec
}

func TestAcknowledgePaymentHandler(t *testing.T) {
	logger := logs.NewSlogLogger()

	request := handlers.AcknowledgePaymentRequest{OrderID: "3f1a9c7e-42d5-4c0a-9b8f-6a2d1e0c5b4a"}

	t.Run("Success", func(t *testing.T) {
		checkout := &stubCheckout{}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		rec := postAcknowledgePayment(t, handler, request)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, request.OrderID, checkout.lastAckID)
	})

	t.Run("Gateway Order Rejected", func(t *testing.T) {
		checkout := &stubCheckout{ackErr: orders.ErrGatewayOrder}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		rec := postAcknowledgePayment(t, handler, request)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Unknown Order", func(t *testing.T) {
		checkout := &stubCheckout{ackErr: orders.ErrOrderNotFound}
		handler := handlers.NewHandler(handlers.Config{Checkout: checkout, Logger: logger})

		rec := postAcknowledgePayment(t, handler, request)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
