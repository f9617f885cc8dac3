package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/utils"

	"github.com/phpdave11/gofpdf"
)

const studioName = "CineCraft Media"

// DocsService renders booking confirmations and quotes as PDF.
type DocsService struct {
	Bookings  BookingService
	Catalog   CatalogService
	RequestID string
	Loader    func(ctx context.Context, bookingID int64) (bookingDocData, error)
	Now       func() time.Time
}

type bookingDocData struct {
	Booking  models.Booking
	Service  *models.Service
	IssuedAt time.Time
}

func (s DocsService) GenerateConfirmation(ctx context.Context, bookingID int64) ([]byte, string, error) {
	data, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_confirmation", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConfirmationPDF(data)
}

func (s DocsService) GenerateQuote(ctx context.Context, bookingID int64) ([]byte, string, error) {
	data, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_quote", fmt.Sprintf("booking_id=%d", bookingID))
	return buildQuotePDF(data)
}

func (s DocsService) load(ctx context.Context, bookingID int64) (bookingDocData, error) {
	if s.Loader != nil {
		return s.Loader(ctx, bookingID)
	}
	b, err := s.Bookings.Get(ctx, bookingID)
	if err != nil {
		return bookingDocData{}, err
	}
	out := bookingDocData{Booking: b, IssuedAt: time.Now()}
	if s.Now != nil {
		out.IssuedAt = s.Now()
	}
	if b.ServiceID != nil {
		if svc, err := s.Catalog.Get(ctx, *b.ServiceID); err == nil {
			out.Service = &svc
		}
	}
	return out, nil
}

func newDoc(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.SetAuthor(studioName, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, strings.ToUpper(title))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, studioName)
	pdf.Ln(10)
	return pdf
}

func serviceTitle(d bookingDocData) string {
	if d.Service != nil && d.Service.Title != "" {
		return d.Service.Title
	}
	return safe(d.Booking.ServiceTitle, "-")
}

func buildConfirmationPDF(d bookingDocData) ([]byte, string, error) {
	b := d.Booking
	pdf := newDoc("Booking Confirmation")

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking Ref : CC-%06d", b.ID),
		fmt.Sprintf("Status      : %s", strings.ToUpper(safe(b.Status, "-"))),
		fmt.Sprintf("Client      : %s", safe(b.Name, "-")),
		fmt.Sprintf("Email       : %s", safe(b.Email, "-")),
		fmt.Sprintf("Phone       : %s", safe(b.Phone, "-")),
		fmt.Sprintf("Service     : %s", serviceTitle(d)),
		fmt.Sprintf("Date / Time : %s %s", safe(utils.DateOnly(b.Date), "-"), safe(utils.TimeHM(b.Time), "-")),
	}
	if d.Service != nil && d.Service.Duration != "" {
		lines = append(lines, fmt.Sprintf("Duration    : %s", d.Service.Duration))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	if msg := strings.TrimSpace(b.Message); msg != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, "Project details")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, msg, "", "", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	note := "We will contact you within 24 hours to confirm the final details of your session."
	if b.Status == models.BookingConfirmed {
		note = "Your session is confirmed. Please contact us at least 48 hours ahead for any changes."
	}
	pdf.MultiCell(0, 6, note, "", "", false)
	pdf.Ln(2)
	pdf.Cell(0, 6, "Issued: "+utils.FormatDateTime(d.IssuedAt))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("BOOKING_%d_%s.pdf", b.ID, safeFilenamePart(b.Name))
	return buf.Bytes(), filename, nil
}

func buildQuotePDF(d bookingDocData) ([]byte, string, error) {
	b := d.Booking
	pdf := newDoc("Quote")

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Quote No : Q-%06d", b.ID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date     : "+d.IssuedAt.Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Prepared for:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, safe(b.Name, "-")+"  <"+safe(b.Email, "-")+">")
	pdf.Ln(10)

	var price float64
	duration := "-"
	if d.Service != nil {
		price = d.Service.Price
		duration = safe(d.Service.Duration, "-")
	}
	desc := fmt.Sprintf("%s on %s %s (%s)", serviceTitle(d),
		safe(utils.DateOnly(b.Date), "-"), safe(utils.TimeHM(b.Time), "-"), duration)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "1) "+desc, "", "", false)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Estimated total: "+utils.FormatPrice(price))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Estimate based on the listed service price. Travel, extra shooting days and licensing are quoted separately.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("QUOTE_%d_%s.pdf", b.ID, safeFilenamePart(b.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
