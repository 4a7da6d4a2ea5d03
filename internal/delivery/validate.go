package delivery

import (
	"regexp"
	"strings"
)

// Details is the shipping snapshot attached to an order once validated.
type Details struct {
	RecipientName string `json:"recipientName"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	Phone         string `json:"phone"`
	Landmark      string `json:"landmark,omitempty"`
	International bool   `json:"international"`
}

type Input struct {
	RecipientName string `json:"recipientName"`
	Street        string `json:"street"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
	CountryName   string `json:"countryName"`
	Phone         string `json:"phone"`
	Landmark      string `json:"landmark"`
	International bool   `json:"international"`
}

// FieldErrors maps a field name to a user-facing message. Validation never
// fails with an error value; an empty map means the input passed.
type FieldErrors map[string]string

var (
	// Indian mobile numbers are ten digits with a 6-9 carrier prefix.
	domesticPhonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	// E.164: leading +, country code, 7-15 digits total.
	internationalPhonePattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

	domesticPostalPattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)
)

// shippingCountries is the enumerated list offered at checkout. "Other"
// requires a free-text country name.
var shippingCountries = []string{
	"United States",
	"United Kingdom",
	"Canada",
	"Australia",
	"Singapore",
	"United Arab Emirates",
	"Germany",
	"New Zealand",
	"Other",
}

// Validate checks raw form input and returns the shipping snapshot or
// per-field messages.
func Validate(raw Input) (Details, FieldErrors) {
	fieldErrors := FieldErrors{}

	name := strings.TrimSpace(raw.RecipientName)
	if name == "" {
		fieldErrors["recipientName"] = "recipient name is required"
	}

	street := strings.TrimSpace(raw.Street)
	if street == "" {
		fieldErrors["street"] = "street address is required"
	}

	city := strings.TrimSpace(raw.City)
	if city == "" {
		fieldErrors["city"] = "city is required"
	}

	state := strings.TrimSpace(raw.State)
	if state == "" {
		fieldErrors["state"] = "state is required"
	}

	postalCode := strings.TrimSpace(raw.PostalCode)
	phone := strings.TrimSpace(raw.Phone)
	country := "India"

	if raw.International {
		country = validateCountry(raw, fieldErrors)

		if postalCode == "" {
			fieldErrors["postalCode"] = "postal code is required"
		}
		if !internationalPhonePattern.MatchString(phone) {
			fieldErrors["phone"] = "enter the phone number in international format, e.g. +14155552671"
		}
	} else {
		if !domesticPostalPattern.MatchString(postalCode) {
			fieldErrors["postalCode"] = "enter a valid 6-digit PIN code"
		}
		if !domesticPhonePattern.MatchString(phone) {
			fieldErrors["phone"] = "enter a valid 10-digit mobile number"
		}
	}

	if len(fieldErrors) > 0 {
		return Details{}, fieldErrors
	}

	return Details{
		RecipientName: name,
		Street:        street,
		City:          city,
		State:         state,
		PostalCode:    postalCode,
		Country:       country,
		Phone:         phone,
		Landmark:      strings.TrimSpace(raw.Landmark),
		International: raw.International,
	}, nil
}

func validateCountry(raw Input, fieldErrors FieldErrors) string {
	country := strings.TrimSpace(raw.Country)
	if country == "" {
		fieldErrors["country"] = "country is required"
		return ""
	}

	found := false
	for _, c := range shippingCountries {
		if strings.EqualFold(c, country) {
			country = c
			found = true
			break
		}
	}
	if !found {
		fieldErrors["country"] = "select a country from the list, or choose Other"
		return ""
	}

	if country == "Other" {
		countryName := strings.TrimSpace(raw.CountryName)
		if countryName == "" {
			fieldErrors["countryName"] = "country name is required when Other is selected"
			return ""
		}
		return countryName
	}

	return country
}
