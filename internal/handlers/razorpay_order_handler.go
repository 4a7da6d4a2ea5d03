package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type RazorpayOrderRequest struct {
	OrderID string `json:"orderId"`
}

// RazorpayOrderHandler registers a pending order with the gateway and hands
// the hosted checkout parameters back to the storefront. The amount always
// comes from the stored order, never from the request.
func (h *Handler) RazorpayOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var gatewayReq RazorpayOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&gatewayReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	var orderID pgtype.UUID
	if err := orderID.Scan(gatewayReq.OrderID); err != nil {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Order ID", "invalid order id")
		return
	}

	order, err := h.queries.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			web.RespondWithError(w, h.logger, r, http.StatusNotFound, "Order Not Found", "order not found")
			return
		}
		h.logger.Error("failed to load order", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to load order")
		return
	}

	if order.Status != "pending" {
		web.RespondWithError(w, h.logger, r, http.StatusConflict, "Order Not Payable", "order is not awaiting payment")
		return
	}

	total, err := order.TotalAmount.Float64Value()
	if err != nil {
		h.logger.Error("failed to read order total", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to read order total")
		return
	}

	gatewayOrder, err := h.gateway.CreateOrder(ctx, gatewayReq.OrderID, total.Float64)
	if err != nil {
		h.logger.Error("failed to create gateway order", "orderId", gatewayReq.OrderID, "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadGateway, "Gateway Error", "failed to create gateway order")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusCreated, gatewayOrder)
}
