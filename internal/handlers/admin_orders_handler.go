package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/sonuarjun3120/krishpafoods/internal/repository"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

const defaultAdminOrdersLimit = 100

var allowedOrderStatuses = map[string]bool{
	"pending":   true,
	"confirmed": true,
	"cancelled": true,
}

func (h *Handler) AdminListOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	limit := int32(defaultAdminOrdersLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 1 {
			web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Limit", "limit must be a positive integer")
			return
		}
		limit = int32(parsed)
	}

	orderRows, err := h.queries.ListOrders(ctx, limit)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to list orders")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, map[string]any{"orders": orderRows})
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) AdminUpdateOrderStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	var orderID pgtype.UUID
	if err := orderID.Scan(id); err != nil {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Order ID", "invalid order id")
		return
	}

	var statusReq UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	if !allowedOrderStatuses[statusReq.Status] {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Status", "unknown order status: "+statusReq.Status)
		return
	}

	order, err := h.queries.UpdateOrderStatus(ctx, repository.UpdateOrderStatusParams{
		ID:     orderID,
		Status: statusReq.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			web.RespondWithError(w, h.logger, r, http.StatusNotFound, "Order Not Found", "order not found")
			return
		}
		h.logger.Error("failed to update order status", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to update order status")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, order)
}
