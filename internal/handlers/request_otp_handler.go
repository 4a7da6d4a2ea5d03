package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sonuarjun3120/krishpafoods/internal/otp"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type RequestOTPRequest struct {
	Phone string `json:"phone"`
}

func (h *Handler) RequestOTPHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var otpReq RequestOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&otpReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	otpReq.Phone = strings.TrimSpace(otpReq.Phone)
	if otpReq.Phone == "" {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Missing Phone", "a phone number is required")
		return
	}

	if err := h.otp.Issue(ctx, otpReq.Phone); err != nil {
		if errors.Is(err, otp.ErrRateLimited) {
			web.RespondWithError(w, h.logger, r, http.StatusTooManyRequests, "Too Many Requests", "too many code requests for this phone number, try again later")
			return
		}
		h.logger.Error("failed to issue otp", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to issue one-time code")
		return
	}

	// 202: the code travels over SMS, not in this response.
	web.RespondWithJSON(w, h.logger, http.StatusAccepted, map[string]string{"status": "sent"})
}
