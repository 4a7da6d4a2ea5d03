package delivery_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sonuarjun3120/krishpafoods/internal/delivery"
)

func domesticInput() delivery.Input {
	return delivery.Input{
		RecipientName: "Lakshmi Devi",
		Street:        "12-4-56 Brahmin Street",
		City:          "Vijayawada",
		State:         "Andhra Pradesh",
		PostalCode:    "520001",
		Phone:         "9876543210",
	}
}

func internationalInput() delivery.Input {
	return delivery.Input{
		RecipientName: "Priya Raman",
		Street:        "221 Mission St",
		City:          "San Francisco",
		State:         "CA",
		PostalCode:    "94105",
		Country:       "United States",
		Phone:         "+14155552671",
		International: true,
	}
}

func TestValidateDomestic(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		details, fieldErrors := delivery.Validate(domesticInput())

		assert.Empty(t, fieldErrors)
		assert.Equal(t, "India", details.Country)
		assert.Equal(t, "9876543210", details.Phone)
	})

	t.Run("Invalid Leading Digit", func(t *testing.T) {
		input := domesticInput()
		input.Phone = "1876543210"

		_, fieldErrors := delivery.Validate(input)

		assert.Contains(t, fieldErrors, "phone")
	})

	t.Run("Too Short", func(t *testing.T) {
		input := domesticInput()
		input.Phone = "987654321"

		_, fieldErrors := delivery.Validate(input)

		assert.Contains(t, fieldErrors, "phone")
	})

	t.Run("Bad PIN Code", func(t *testing.T) {
		input := domesticInput()
		input.PostalCode = "02001"

		_, fieldErrors := delivery.Validate(input)

		assert.Contains(t, fieldErrors, "postalCode")
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		_, fieldErrors := delivery.Validate(delivery.Input{})

		assert.Contains(t, fieldErrors, "recipientName")
		assert.Contains(t, fieldErrors, "street")
		assert.Contains(t, fieldErrors, "city")
		assert.Contains(t, fieldErrors, "state")
		assert.Contains(t, fieldErrors, "phone")
	})
}

func TestValidateInternational(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		details, fieldErrors := delivery.Validate(internationalInput())

		assert.Empty(t, fieldErrors)
		assert.Equal(t, "United States", details.Country)
		assert.True(t, details.International)
	})

	t.Run("Missing Country Code", func(t *testing.T) {
		input := internationalInput()
		input.Phone = "4155552671"

		_, fieldErrors := delivery.Validate(input)

		assert.Contains(t, fieldErrors, "phone")
	})

	t.Run("Country Not In List", func(t *testing.T) {
		input := internationalInput()
		input.Country = "Atlantis"

		_, fieldErrors := delivery.Validate(input)

		assert.Contains(t, fieldErrors, "country")
	})

	t.Run("Other Requires Free Text Name", func(t *testing.T) {
		input := internationalInput()
		input.Country = "Other"

		_, fieldErrors := delivery.Validate(input)

		assert.Contains(t, fieldErrors, "countryName")
	})

	t.Run("Other With Free Text Name", func(t *testing.T) {
		input := internationalInput()
		input.Country = "Other"
		input.CountryName = "Malaysia"

		details, fieldErrors := delivery.Validate(input)

		assert.Empty(t, fieldErrors)
		assert.Equal(t, "Malaysia", details.Country)
	})
}
