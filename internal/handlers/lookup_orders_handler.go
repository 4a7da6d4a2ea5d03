package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sonuarjun3120/krishpafoods/internal/orders"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type LookupOrdersRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// LookupOrdersHandler is the customer-facing order history lookup, keyed by
// phone number and gated by a one-time code so one customer cannot browse
// another's orders.
func (h *Handler) LookupOrdersHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var lookupReq LookupOrdersRequest
	if err := json.NewDecoder(r.Body).Decode(&lookupReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	lookupReq.Phone = strings.TrimSpace(lookupReq.Phone)
	lookupReq.OTP = strings.TrimSpace(lookupReq.OTP)

	history, err := h.checkout.History(ctx, lookupReq.Phone, lookupReq.OTP)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrMissingPhone):
			web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Missing Phone", "a phone number is required")
		case errors.Is(err, orders.ErrOTPRequired):
			web.RespondWithError(w, h.logger, r, http.StatusUnauthorized, "OTP Required", "request a one-time code for this phone number first")
		case errors.Is(err, orders.ErrInvalidOTP):
			web.RespondWithError(w, h.logger, r, http.StatusUnauthorized, "Invalid OTP", "the one-time code is invalid or expired")
		default:
			h.logger.Error("failed to load order history", "error", err)
			web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to load order history")
		}
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, map[string]any{"orders": history})
}
