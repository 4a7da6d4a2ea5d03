package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuarjun3120/krishpafoods/internal/cart"
	"github.com/sonuarjun3120/krishpafoods/internal/delivery"
	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/payments"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type CreateOrderRequest struct {
	Delivery      delivery.Input `json:"delivery"`
	Items         []cart.Line    `json:"items"`
	PaymentMethod string         `json:"paymentMethod"`
	Email         string         `json:"email"`
	Total         float64        `json:"total"`
}

type PaymentInstructions struct {
	Method  string                        `json:"method"`
	UPILink string                        `json:"upiLink,omitempty"`
	Bank    *payments.BankTransferDetails `json:"bank,omitempty"`
}

type CreateOrderResponse struct {
	Order   orders.OrderRef     `json:"order"`
	Payment PaymentInstructions `json:"payment"`
}

func (h *Handler) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var orderReq CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&orderReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	method, err := payments.ParseMethod(orderReq.PaymentMethod)
	if err != nil {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Payment Method", err.Error())
		return
	}

	details, fieldErrors := delivery.Validate(orderReq.Delivery)
	if len(fieldErrors) > 0 {
		web.RespondWithJSON(w, h.logger, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrors})
		return
	}

	ref, err := h.checkout.Submit(ctx, orders.SubmitParams{
		Details:       details,
		Lines:         orderReq.Items,
		PaymentMethod: string(method),
		UserEmail:     orderReq.Email,
		ClientTotal:   orderReq.Total,
	})
	if err != nil {
		h.respondSubmitError(w, r, err)
		return
	}

	// The server-side cart is spent once the order exists.
	if sessionID := r.Header.Get(sessionHeader); sessionID != "" {
		if err := h.carts.Clear(ctx, sessionID); err != nil {
			h.logger.Warn("failed to clear cart after checkout", "sessionId", sessionID, "error", err)
		}
	}

	web.RespondWithJSON(w, h.logger, http.StatusCreated, CreateOrderResponse{
		Order:   ref,
		Payment: h.paymentInstructions(method, orderReq.Total),
	})
}

func (h *Handler) respondSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, orders.ErrEmptyCart):
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Empty Cart", "cannot place an order with an empty cart")
	case errors.Is(err, orders.ErrMissingPhone):
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Missing Phone", "a contact phone number is required")
	case errors.Is(err, orders.ErrUnknownProduct):
		web.RespondWithError(w, h.logger, r, http.StatusUnprocessableEntity, "Unknown Product", err.Error())
	case errors.Is(err, orders.ErrTotalMismatch):
		web.RespondWithError(w, h.logger, r, http.StatusUnprocessableEntity, "Total Mismatch", "order total does not match current catalog prices")
	default:
		h.logger.Error("failed to submit order", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to submit order")
	}
}

func (h *Handler) paymentInstructions(method payments.Method, total float64) PaymentInstructions {
	instructions := PaymentInstructions{Method: string(method)}

	switch method {
	case payments.MethodUPI:
		link := h.upi
		link.Amount = total
		instructions.UPILink = link.Link()
	case payments.MethodBankTransfer:
		bank := h.bank
		instructions.Bank = &bank
	}

	return instructions
}
