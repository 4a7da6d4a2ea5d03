package handlers

import (
	"net/http"
	"strconv"

	"github.com/sonuarjun3120/krishpafoods/internal/web"
)

// GeocodeHandler prefills the delivery form from browser coordinates. Errors
// come back as 404 so the storefront silently falls back to manual entry.
func (h *Handler) GeocodeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !web.CheckContext(ctx, h.logger) {
		web.RespondWithError(w, h.logger, r, http.StatusRequestTimeout, requestTimeoutMsg, web.ReqCancelledMsg)
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		web.RespondWithError(w, h.logger, r, http.StatusBadRequest, "Invalid Coordinates", "lat and lng must be decimal degrees")
		return
	}

	address, err := h.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		h.logger.Warn("reverse geocode failed", "lat", lat, "lng", lng, "error", err)
		web.RespondWithError(w, h.logger, r, http.StatusNotFound, "Address Not Found", "could not resolve an address for these coordinates")
		return
	}

	web.RespondWithJSON(w, h.logger, http.StatusOK, address)
}
