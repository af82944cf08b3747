// Package pdf renders the printable service ticket for an oil change.
// Layout only, no business logic: the document is deterministic for identical
// inputs given an injected service date and ticket ID.
package pdf

import (
	"bytes"
	"fmt"
	"math/rand"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hisma-backend-go/internal/models"
)

const ticketIDChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewTicketID generates a short identifier stamped on the printed document:
// the shop's ticket prefix followed by ten random characters.
func NewTicketID(prefix string) string {
	b := make([]byte, 10)
	for i := range b {
		b[i] = ticketIDChars[rand.Intn(len(ticketIDChars))]
	}
	return prefix + string(b)
}

// Ticket carries everything the layout needs beyond the record itself.
type Ticket struct {
	Lubricenter *models.Lubricenter
	Record      *models.OilChangeRecord
	TicketID    string
	Operator    string
	ServiceDate time.Time
}

// Build renders the ticket as a single-page A4 PDF and returns its bytes.
func Build(t Ticket) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.SetCreationDate(t.ServiceDate) // Fixed metadata keeps output reproducible
	doc.AddPage()

	addHeader(doc, t.Lubricenter)
	addServiceInfo(doc, t)
	addCustomerVehicle(doc, t.Record)
	addOilAndFilters(doc, t.Record)
	if t.Record.HasExtras() {
		addExtras(doc, t.Record)
	}
	if t.Record.Observations != "" {
		addObservations(doc, t.Record.Observations)
	}
	addFooter(doc)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render service ticket: %w", err)
	}
	return buf.Bytes(), nil
}

func addHeader(doc *gofpdf.Fpdf, lub *models.Lubricenter) {
	doc.SetFont("Helvetica", "B", 16)
	doc.SetTextColor(0, 92, 170)
	doc.CellFormat(0, 9, lub.FantasyName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.SetTextColor(0, 0, 0)
	line := lub.Address
	if lub.Phone != "" {
		line += "  -  " + lub.Phone
	}
	doc.CellFormat(0, 5, line, "", 1, "C", false, 0, "")
	doc.CellFormat(0, 5, "CUIT: "+lub.CUIT, "", 1, "C", false, 0, "")
	doc.Ln(3)
	doc.SetDrawColor(0, 92, 170)
	doc.SetLineWidth(0.5)
	x, y := doc.GetXY()
	doc.Line(x, y, 195, y)
	doc.Ln(3)
}

func addServiceInfo(doc *gofpdf.Fpdf, t Ticket) {
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(60, 7, "Ticket: "+t.TicketID, "1", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(60, 7, "Operator: "+t.Operator, "1", 0, "L", false, 0, "")
	doc.CellFormat(60, 7, "Date: "+t.ServiceDate.Format("02/01/2006"), "1", 1, "L", false, 0, "")
	doc.Ln(3)
}

func addCustomerVehicle(doc *gofpdf.Fpdf, r *models.OilChangeRecord) {
	sectionTitle(doc, "CUSTOMER AND VEHICLE")

	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(90, 6, "Customer: "+r.CustomerName, "", 0, "L", false, 0, "")
	doc.CellFormat(90, 6, "Phone: "+r.CustomerPhone, "", 1, "L", false, 0, "")
	vehicle := fmt.Sprintf("%s %s %s", r.VehicleBrand, r.VehicleModel, r.VehicleYear)
	doc.CellFormat(90, 6, "Vehicle: "+vehicle, "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(90, 6, "Plate: "+r.VehiclePlate, "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(90, 6, fmt.Sprintf("Current mileage: %d km", r.CurrentKm), "", 0, "L", false, 0, "")
	doc.CellFormat(90, 6, fmt.Sprintf("Next change: %d km", r.NextChangeKm), "", 1, "L", false, 0, "")
	doc.Ln(3)
}

func addOilAndFilters(doc *gofpdf.Fpdf, r *models.OilChangeRecord) {
	sectionTitle(doc, "OIL AND FILTERS")

	doc.SetFont("Helvetica", "", 10)
	oil := fmt.Sprintf("%s %s %s (%.1fL)", r.OilViscosity, r.OilType, r.OilBrand, r.OilQuantity)
	doc.CellFormat(90, 6, "Oil: "+oil, "", 1, "L", false, 0, "")

	filterRow(doc, "Oil filter", r.OilFilter, r.OilFilterNotes)
	filterRow(doc, "Air filter", r.AirFilter, r.AirFilterNotes)
	filterRow(doc, "Cabin filter", r.CabinFilter, r.CabinFilterNotes)
	filterRow(doc, "Fuel filter", r.FuelFilter, r.FuelFilterNotes)
	doc.Ln(3)
}

func addExtras(doc *gofpdf.Fpdf, r *models.OilChangeRecord) {
	sectionTitle(doc, "EXTRAS")

	filterRow(doc, "Coolant", r.Coolant, r.CoolantNotes)
	filterRow(doc, "Grease", r.Grease, r.GreaseNotes)
	additiveNotes := r.AdditiveNotes
	if r.AdditiveType != "" {
		additiveNotes = r.AdditiveType + " " + additiveNotes
	}
	filterRow(doc, "Additive", r.Additive, additiveNotes)
	filterRow(doc, "Gearbox", r.Gearbox, r.GearboxNotes)
	filterRow(doc, "Differential", r.Differential, r.DifferentialNotes)
	doc.Ln(3)
}

func addObservations(doc *gofpdf.Fpdf, observations string) {
	sectionTitle(doc, "OBSERVATIONS")
	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, observations, "", "L", false)
	doc.Ln(3)
}

func addFooter(doc *gofpdf.Fpdf) {
	doc.Ln(5)
	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(128, 128, 128)
	doc.CellFormat(0, 5, "HISMA SERVICIOS - hisma.com.ar", "", 1, "C", false, 0, "")
}

func sectionTitle(doc *gofpdf.Fpdf, title string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(0, 7, title, "", 1, "L", true, 0, "")
	doc.Ln(1)
}

func filterRow(doc *gofpdf.Fpdf, label string, done bool, notes string) {
	mark := "No"
	if done {
		mark = "Yes"
	}
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(50, 6, label+": "+mark, "", 0, "L", false, 0, "")
	doc.CellFormat(130, 6, notes, "", 1, "L", false, 0, "")
}
