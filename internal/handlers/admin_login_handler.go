package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/alexedwards/argon2id"

	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var loginReq AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	loginReq.Email = strings.TrimSpace(loginReq.Email)
	loginReq.Password = strings.TrimSpace(loginReq.Password)

	admin, err := h.queries.GetAdminUserByEmail(ctx, loginReq.Email)
	if err != nil {
		h.logger.Warn("admin login failed", "email", loginReq.Email, "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusUnauthorized, "Authorization Failed", "invalid email or password")
		return
	}

	match, err := argon2id.ComparePasswordAndHash(loginReq.Password, admin.Password)
	if err != nil || !match {
		h.logger.Warn("admin password mismatch", "email", loginReq.Email, "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusUnauthorized, "Authorization Failed", "invalid email or password")
		return
	}

	token, err := h.jwt.GenerateToken(admin.ID.String(), admin.Email)
	if err != nil {
		h.logger.Error("failed to generate admin token", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "failed to generate token")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, AdminLoginResponse{Token: token})
}
