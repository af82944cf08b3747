package share

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisma-backend-go/internal/models"
)

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+54 9 11 1234 5678", "hello there")

	require.True(t, strings.HasPrefix(link, "https://api.whatsapp.com/send?"))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "5491112345678", parsed.Query().Get("phone"))
	assert.Equal(t, "hello there", parsed.Query().Get("text"))
}

func TestWhatsAppLinkWithoutPhone(t *testing.T) {
	link := WhatsAppLink("", "summary")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Empty(t, parsed.Query().Get("phone"))
	assert.Equal(t, "summary", parsed.Query().Get("text"))
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("customer@example.com", "Your service", "Details inside")

	require.True(t, strings.HasPrefix(link, "mailto:customer@example.com?"))
	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Your service", parsed.Query().Get("subject"))
	assert.Equal(t, "Details inside", parsed.Query().Get("body"))
}

func TestServiceMessage(t *testing.T) {
	record := &models.OilChangeRecord{
		CustomerName: "Maria Lopez",
		VehicleBrand: "Toyota",
		VehicleModel: "Corolla",
		VehiclePlate: "AB123CD",
		CurrentKm:    85000,
		NextChangeKm: 95000,
		OilBrand:     "Shell",
		OilType:      "Synthetic",
		OilViscosity: "5W30",
		OilQuantity:  4.5,
		OilFilter:    true,
	}

	msg := ServiceMessage(record)

	assert.Contains(t, msg, "*OIL CHANGE COMPLETED*")
	assert.Contains(t, msg, "Maria Lopez")
	assert.Contains(t, msg, "Toyota Corolla (AB123CD)")
	assert.Contains(t, msg, "85000 km")
	assert.Contains(t, msg, "Next change: 95000 km")
	assert.Contains(t, msg, "5W30 Synthetic Shell (4.5L)")
	assert.Contains(t, msg, "Oil filter replaced")
}

func TestServiceMessageOmitsNextChangeWhenUnset(t *testing.T) {
	record := &models.OilChangeRecord{
		CustomerName: "Juan",
		VehiclePlate: "ABC123",
		CurrentKm:    40000,
	}

	msg := ServiceMessage(record)

	assert.NotContains(t, msg, "Next change")
	assert.Contains(t, msg, "No filter change")
}
