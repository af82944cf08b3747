// Package share builds deep links for handing a service summary off to
// external messaging apps. Pure construction, no I/O.
package share

import (
	"fmt"
	"net/url"
	"strings"

	"hisma-backend-go/internal/models"
)

const whatsAppBaseURL = "https://api.whatsapp.com/send"

// sanitizePhone strips spaces and the leading '+' the way the chat app's
// deep-link scheme expects.
func sanitizePhone(phone string) string {
	s := strings.ReplaceAll(phone, " ", "")
	return strings.ReplaceAll(s, "+", "")
}

// WhatsAppLink builds a deep link that opens a chat with the customer and a
// pre-filled service summary. An empty phone yields a link that lets the
// sender pick the recipient.
func WhatsAppLink(phone, message string) string {
	params := url.Values{}
	if p := sanitizePhone(phone); p != "" {
		params.Set("phone", p)
	}
	params.Set("text", message)
	return whatsAppBaseURL + "?" + params.Encode()
}

// MailtoLink builds a mail-compose link with subject and body pre-filled.
func MailtoLink(to, subject, body string) string {
	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)
	return "mailto:" + to + "?" + params.Encode()
}

// ServiceMessage renders the WhatsApp summary for a completed oil change.
func ServiceMessage(record *models.OilChangeRecord) string {
	var b strings.Builder
	b.WriteString("*OIL CHANGE COMPLETED*\n\n")
	fmt.Fprintf(&b, "Customer: %s\n", record.CustomerName)
	fmt.Fprintf(&b, "Vehicle: %s %s (%s)\n\n", record.VehicleBrand, record.VehicleModel, record.VehiclePlate)
	fmt.Fprintf(&b, "Current mileage: %d km\n", record.CurrentKm)
	if record.NextChangeKm > 0 {
		fmt.Fprintf(&b, "Next change: %d km\n", record.NextChangeKm)
	}
	fmt.Fprintf(&b, "\nOil: %s %s %s (%.1fL)\n", record.OilViscosity, record.OilType, record.OilBrand, record.OilQuantity)
	if record.OilFilter {
		b.WriteString("Oil filter replaced\n")
	} else {
		b.WriteString("No filter change\n")
	}
	b.WriteString("\nThank you for trusting us!")
	return b.String()
}
