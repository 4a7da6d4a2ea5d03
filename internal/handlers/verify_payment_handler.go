package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId"`
	RazorpayOrderID   string `json:"razorpayOrderId"`
	RazorpayPaymentID string `json:"razorpayPaymentId"`
	RazorpaySignature string `json:"razorpaySignature"`
}

func (h *Handler) VerifyPaymentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var verifyReq VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&verifyReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	err := h.checkout.VerifyPayment(ctx, orders.VerifyPaymentParams{
		OrderID:        verifyReq.OrderID,
		GatewayOrderID: verifyReq.RazorpayOrderID,
		PaymentID:      verifyReq.RazorpayPaymentID,
		Signature:      verifyReq.RazorpaySignature,
	})
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderNotFound):
			web.RespondWithError(w, h.logger, r, http.StatusNotFound, "Order Not Found", "order not found")
		case errors.Is(err, orders.ErrInvalidSignature):
			web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Verification Failed", "payment signature verification failed")
		default:
			h.logger.Error("failed to verify payment", "error", err)
			web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to verify payment")
		}
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, map[string]string{"status": "confirmed"})
}
