package pdf

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hisma-backend-go/internal/models"
)

func sampleTicket() Ticket {
	return Ticket{
		Lubricenter: &models.Lubricenter{
			FantasyName: "Lubricentro Norte",
			Address:     "Av. Siempreviva 742",
			Phone:       "+54 11 4000 0000",
			CUIT:        "30-12345678-9",
		},
		Record: &models.OilChangeRecord{
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
			Coolant:      true,
			CoolantNotes: "topped up",
			Observations: "Customer asked for a reminder call.",
		},
		TicketID:    "LN4F7K2P9QX",
		Operator:    "Juan Perez",
		ServiceDate: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestBuildProducesPDF(t *testing.T) {
	data, err := Build(sampleTicket())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"), "output should start with the PDF magic bytes")
}

func TestBuildIsDeterministic(t *testing.T) {
	ticket := sampleTicket()

	first, err := Build(ticket)
	require.NoError(t, err)
	second, err := Build(ticket)
	require.NoError(t, err)

	assert.Equal(t, first, second, "same ticket input must render byte-identical output")
}

func TestBuildWithoutExtrasOrObservations(t *testing.T) {
	ticket := sampleTicket()
	ticket.Record.Coolant = false
	ticket.Record.CoolantNotes = ""
	ticket.Record.Observations = ""

	data, err := Build(ticket)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestNewTicketID(t *testing.T) {
	pattern := regexp.MustCompile(`^LN[A-Z0-9]{10}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := NewTicketID("LN")
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	// Collisions over 50 draws from a 36^10 space would indicate a broken generator.
	assert.Greater(t, len(seen), 45)
}

func TestNewTicketIDEmptyPrefix(t *testing.T) {
	id := NewTicketID("")
	assert.Len(t, id, 10)
}
