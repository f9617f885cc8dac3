package handlers

import (
	"net/http"
	"strings"

	"cinecraft/internal/domain/models"
	"cinecraft/internal/http/middleware"
	"cinecraft/internal/services"

	"github.com/gin-gonic/gin"
)

// bookingPayload is the form body; service_id arrives as a number, a numeric
// string from a <select>, or one of the legacy service slugs.
type bookingPayload struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	ServiceID Stringish `json:"service_id"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Message   string    `json:"message"`
	Image     string    `json:"image"`
}

func (p bookingPayload) input() models.BookingInput {
	in := models.BookingInput{
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		ServiceID: p.ServiceID.Int64Ptr(),
		Service:   strings.TrimSpace(p.Service),
		Date:      p.Date,
		Time:      p.Time,
		Message:   p.Message,
		Image:     p.Image,
	}
	if in.ServiceID == nil && in.Service == "" {
		in.Service = strings.TrimSpace(p.ServiceID.String())
	}
	return in
}

type statusPayload struct {
	Status string `json:"status"`
}

func CreateBooking(c *gin.Context) {
	var p bookingPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	in := p.input()
	if uid := middleware.UserID(c); uid > 0 {
		in.UserID = &uid
	}
	b, err := bookingService(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusCreated, b, "Booking submitted successfully")
}

func ListBookings(c *gin.Context) {
	list, err := bookingService(c).List(c.Request.Context(), listFilter(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func BookingsByStatus(c *gin.Context) {
	list, err := bookingService(c).ByStatus(c.Request.Context(), strings.ToLower(c.Param("status")))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func BookingStats(c *gin.Context) {
	st, err := bookingService(c).Stats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, gin.H{
		"total":       st.Total,
		"pending":     st.Pending,
		"confirmed":   st.Confirmed,
		"completed":   st.Completed,
		"cancelled":   st.Cancelled,
		"with_image":  st.WithImage,
		"upload_rate": st.UploadRate(),
	}, "")
}

func UserBookings(c *gin.Context) {
	list, err := bookingService(c).UserBookings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, list, "")
}

func GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := bookingService(c).Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, b, "")
}

func UpdateBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var p bookingPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	b, err := bookingService(c).Update(c.Request.Context(), id, p.input())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, b, "Booking updated successfully")
}

func UpdateBookingStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var p statusPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	b, err := bookingService(c).UpdateStatus(c.Request.Context(), id, strings.ToLower(strings.TrimSpace(p.Status)))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, b, "Booking status updated successfully")
}

func ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	b, err := bookingService(c).Confirm(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, b, "Booking confirmed successfully")
}

func DeleteBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := bookingService(c).Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, http.StatusOK, nil, "Booking deleted successfully")
}

// ExportBookings streams the bookings spreadsheet, optionally for one status.
func ExportBookings(c *gin.Context) {
	svc := services.ExportService{Bookings: bookingService(c), RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.BookingsXLSX(c.Request.Context(), strings.ToLower(strings.TrimSpace(c.Query("status"))))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "attachment", filename, data)
}

func docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		Bookings:  bookingService(c),
		Catalog:   catalogService(c),
		RequestID: middleware.GetRequestID(c),
	}
}

// BookingConfirmationPDF renders the confirmation inline in the browser.
func BookingConfirmationPDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateConfirmation(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, "application/pdf", "inline", filename, pdfBytes)
}

func BookingQuotePDF(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	pdfBytes, filename, err := docsService(c).GenerateQuote(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	attachment(c, "application/pdf", "inline", filename, pdfBytes)
}
