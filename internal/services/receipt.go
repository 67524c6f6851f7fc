package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/chachabrian/pawcare-backend/internal/models"
)

const receiptBottomMargin = 25

// RenderReceiptPDF creates the appointment slip for a booking.
func RenderReceiptPDF(b *models.VaccinationBooking, issuedAt time.Time) ([]byte, error) {
	pdf, err := buildReceipt(b, issuedAt)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildReceipt lays the slip out. Long vaccine lists continue on further pages.
func buildReceipt(b *models.VaccinationBooking, issuedAt time.Time) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	line := func(format string, args ...interface{}) {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf(format, args...)), "", "L", false)
	}

	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, receiptBottomMargin)
	pdf.SetFooterFunc(func() {
		pdf.SetDrawColor(200, 200, 200)
		pdf.Line(15, 297-receiptBottomMargin+5, 195, 297-receiptBottomMargin+5)
		pdf.SetY(-17)
		pdf.SetFont("Helvetica", "I", 10)
		footer := fmt.Sprintf("Issued %s by PawCare - page %d/{nb}", issuedAt.UTC().Format("2006-01-02 15:04 MST"), pdf.PageNo())
		pdf.CellFormat(0, 8, footer, "", 0, "C", false, 0, "")
	})
	pdf.AliasNbPages("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.Cell(0, 15, "PAWCARE VACCINATION APPOINTMENT")
	pdf.Ln(18)

	pdf.SetDrawColor(220, 220, 220)
	pdf.Line(15, pdf.GetY(), 195, pdf.GetY())
	pdf.Ln(8)

	// Summary box with the QR code on its right
	yStart := pdf.GetY()
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(15, yStart, 120, 60, "F")

	pdf.SetXY(20, yStart+7)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "APPOINTMENT")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 12)
	for _, l := range []string{
		"Booking ID: " + b.ID,
		"Date: " + b.AppointmentDate.Format(models.DateLayout),
		"Time: " + b.AppointmentTime,
		"Center: " + b.VaccinationCenter,
		"Status: " + string(b.Status),
	} {
		pdf.SetX(20)
		pdf.CellFormat(110, 6, tr(l), "", 2, "L", false, 0, "")
	}
	if center, ok := models.FindVaccinationCenter(b.VaccinationCenter); ok {
		pdf.SetX(20)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(110, 6, tr(center.Address+" | "+center.Phone), "", 2, "L", false, 0, "")
		pdf.SetX(20)
		pdf.CellFormat(110, 6, tr("Open "+center.Hours), "", 2, "L", false, 0, "")
	}

	qr, err := qrcode.Encode("pawcare:vaccination:"+b.ID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encode receipt qr: %w", err)
	}
	pdf.RegisterImageOptionsReader("qr", gofpdf.ImageOptions{ImageType: "png"}, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 145, yStart+5, 45, 0, false, gofpdf.ImageOptions{ImageType: "png"}, 0, "")

	pdf.SetY(yStart + 68)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.Cell(0, 6, "Show this code at the front desk when you arrive.")
	pdf.Ln(10)

	sectionTitle(pdf, "OWNER")
	pdf.SetFont("Helvetica", "", 12)
	line("Name: %s", b.Patient.Name)
	line("Phone: %s", b.Patient.PhoneNumber)
	line("Address: %s, %s", b.Patient.Address, b.Patient.City)
	line("Email: %s", b.UserEmail)
	if b.Patient.SpecialInstructions != "" {
		line("Instructions: %s", b.Patient.SpecialInstructions)
	}
	pdf.Ln(4)

	sectionTitle(pdf, "DOG")
	pdf.SetFont("Helvetica", "", 12)
	line("Name: %s", b.Dog.Name)
	line("Breed: %s", b.Dog.Breed)
	line("Behaviour: %s", b.Dog.Behaviour)
	pdf.Ln(4)

	sectionTitle(pdf, "VACCINES")
	pdf.SetFont("Helvetica", "", 12)
	for i, v := range b.Vaccines {
		line("%d. %s (dose %d)", i+1, v.Name, v.DoseNumber)
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	line("Total: %.2f", b.TotalAmount)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return pdf, nil
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}
