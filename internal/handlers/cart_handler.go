package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sonuarjun3120/krishpafoods/internal/cart"
	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

type CartResponse struct {
	Lines    []cart.Line `json:"lines"`
	Subtotal float64     `json:"subtotal"`
	Shipping float64     `json:"shipping"`
	Total    float64     `json:"total"`
}

type CartItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Weight    string  `json:"weight"`
	Quantity  int32   `json:"quantity"`
	ImageURL  string  `json:"imageUrl"`
}

func (h *Handler) GetCartHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	c, err := h.carts.Get(ctx, r.Header.Get(sessionHeader))
	if err != nil {
		h.respondCartError(w, r, err)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, cartResponse(c))
}

func (h *Handler) AddCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var itemReq CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&itemReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	if itemReq.ProductID == "" || itemReq.Weight == "" {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Cart Item", "productId and weight are required")
		return
	}

	c, err := h.carts.AddItem(ctx, r.Header.Get(sessionHeader), cart.Line{
		ProductID: itemReq.ProductID,
		Name:      itemReq.Name,
		UnitPrice: itemReq.UnitPrice,
		Weight:    itemReq.Weight,
		Quantity:  itemReq.Quantity,
		ImageURL:  itemReq.ImageURL,
	})
	if err != nil {
		h.respondCartError(w, r, err)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, cartResponse(c))
}

func (h *Handler) UpdateCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	var itemReq CartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&itemReq); err != nil {
		h.logger.Error("failed to decode request body", "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, invalidRequestBodyMsg, err.Error())
		return
	}

	c, err := h.carts.UpdateQuantity(ctx, r.Header.Get(sessionHeader), itemReq.ProductID, itemReq.Weight, itemReq.Quantity)
	if err != nil {
		h.respondCartError(w, r, err)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, cartResponse(c))
}

func (h *Handler) RemoveCartItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	productID := r.URL.Query().Get("productId")
	weight := r.URL.Query().Get("weight")
	if productID == "" || weight == "" {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Cart Item", "productId and weight are required")
		return
	}

	c, err := h.carts.RemoveItem(ctx, r.Header.Get(sessionHeader), productID, weight)
	if err != nil {
		h.respondCartError(w, r, err)
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, cartResponse(c))
}

func (h *Handler) respondCartError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, cart.ErrEmptySessionID) {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Missing Session", "the "+sessionHeader+" header is required")
		return
	}
	h.logger.Error("cart operation failed", "error", err)
	web.RespondWithError(w, h.logger, r, http.StatusInternalServerError, internalServerErrorMsg, "cart operation failed")
}

func cartResponse(c cart.Cart) CartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return CartResponse{
		Lines:    lines,
		Subtotal: c.Subtotal(),
		Shipping: c.Shipping(),
		Total:    c.Total(),
	}
}
