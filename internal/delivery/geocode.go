package delivery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sonuarjun3120/krishpafoods/internal/logs"
)

const geocodeTimeout = 5 * time.Second

// GeocodedAddress is a best-effort form prefill. Any failure here must
// degrade to manual entry, never block checkout.
type GeocodedAddress struct {
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postcode"`
	Country    string `json:"country"`
}

type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (GeocodedAddress, error)
}

// HTTPReverseGeocoder calls a Nominatim-compatible reverse endpoint.
type HTTPReverseGeocoder struct {
	baseURL string
	client  *http.Client
	logger  logs.Logger
}

func NewHTTPReverseGeocoder(baseURL string, logger logs.Logger) *HTTPReverseGeocoder {
	return &HTTPReverseGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: geocodeTimeout},
		logger:  logger,
	}
}

func (g *HTTPReverseGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (GeocodedAddress, error) {
	query := url.Values{}
	query.Set("lat", fmt.Sprintf("%f", lat))
	query.Set("lon", fmt.Sprintf("%f", lng))
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return GeocodedAddress{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return GeocodedAddress{}, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GeocodedAddress{}, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var payload struct {
		Address struct {
			City     string `json:"city"`
			Town     string `json:"town"`
			Village  string `json:"village"`
			State    string `json:"state"`
			Postcode string `json:"postcode"`
			Country  string `json:"country"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return GeocodedAddress{}, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	city := payload.Address.City
	if city == "" {
		city = payload.Address.Town
	}
	if city == "" {
		city = payload.Address.Village
	}

	return GeocodedAddress{
		City:       city,
		State:      payload.Address.State,
		PostalCode: payload.Address.Postcode,
		Country:    payload.Address.Country,
	}, nil
}
