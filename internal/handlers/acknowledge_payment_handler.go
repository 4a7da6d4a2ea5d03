package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type AcknowledgePaymentRequest struct {
	OrderID string `json:"orderId"`
}

// AcknowledgePaymentHandler is the "I've completed the payment" click for
// the UPI and bank-transfer paths. Gateway orders are rejected here; they
// are only confirmed through the signed callback.
func (h *Handler) AcknowledgePaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var ackReq AcknowledgePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&ackReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	if err := h.checkout.AcknowledgePayment(ctx, ackReq.OrderID); err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			web.RespondWithError(w, h.logger, r, http.StatusNotFound, "Order Not Found", "order not found")
		case errors.Is(err, orders.ErrGatewayOrder):
			web.RespondWithError(w, h.logger, r, http.StatusConflict, "Gateway Order", "this order is confirmed through payment gateway verification")
		default:
			h.logger.Error("failed to acknowledge payment", "error", err)
			web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to acknowledge payment")
		}
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, map[string]string{"status": "confirmed"})
}
